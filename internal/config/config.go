package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application
type Config struct {
	Server
	PostgreSQL
	Redis
	Gateway
	Poller
}

// Server is the configuration for the server
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// PostgreSQL is the configuration for the database
type PostgreSQL struct {
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Database        string `env:"DB_DATABASE" envDefault:"checkout_recon"`
	Username        string `env:"DB_USERNAME" envDefault:"checkout_recon"`
	Password        string `env:"DB_PASSWORD" envDefault:"checkout_recon"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConnAttempts string `env:"DB_MAX_CONN_ATTEMPTS" envDefault:"5"`
}

// DSN returns the DSN for the database
func (c PostgreSQL) DSN() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		c.Driver,
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// Redis is the configuration for the pending-transaction registry
type Redis struct {
	URL        string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	PendingTTL string `env:"REDIS_PENDING_TTL_MINUTES" envDefault:"120"`
}

// Gateway is the configuration for the payment gateway status API
type Gateway struct {
	BaseURL        string `env:"GATEWAY_BASE_URL" envDefault:"http://localhost:9090"`
	TimeoutSeconds string `env:"GATEWAY_TIMEOUT_SECONDS" envDefault:"5"`
}

// Poller is the configuration for the pending-status poller
type Poller struct {
	IntervalSeconds     string `env:"POLLER_INTERVAL_SECONDS" envDefault:"30"`
	CheckTimeoutSeconds string `env:"POLLER_CHECK_TIMEOUT_SECONDS" envDefault:"3"`
}

// Load loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		cfg = &Config{}
		cfgType := reflect.TypeOf(*cfg)
		cfgValue := reflect.ValueOf(cfg).Elem()

		for i := 0; i < cfgType.NumField(); i++ {
			field := cfgType.Field(i)
			fieldValue := cfgValue.Field(i)
			for j := 0; j < field.Type.NumField(); j++ {
				subField := field.Type.Field(j)
				envVar := subField.Tag.Get("env")
				envDefault := subField.Tag.Get("envDefault")
				value := getEnv(envVar, envDefault)

				fieldValue.Field(j).SetString(value)
			}
		}
	})

	return cfg
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}
