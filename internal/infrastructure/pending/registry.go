package pending

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lernhub/checkout-recon/internal/config"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	"github.com/redis/go-redis/v9"
)

const registryKey = "checkout_recon:pending_transactions"

// Registry tracks pending transaction ids in a redis sorted set scored by
// tracking time. Entries older than the TTL are pruned on every List, so
// a transaction nobody resolved again eventually stops being polled.
type Registry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRegistry(cfg config.Redis) (repositories.PendingRegistry, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	ttlMinutes, err := strconv.Atoi(cfg.PendingTTL)
	if err != nil {
		return nil, fmt.Errorf("strconv.Atoi: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Registry{
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func (r *Registry) Track(ctx context.Context, transactionID string) error {
	return r.client.ZAdd(ctx, registryKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: transactionID,
	}).Err()
}

func (r *Registry) Remove(ctx context.Context, transactionID string) error {
	return r.client.ZRem(ctx, registryKey, transactionID).Err()
}

func (r *Registry) List(ctx context.Context) ([]string, error) {
	cutoff := time.Now().Add(-r.ttl).Unix()
	if err := r.client.ZRemRangeByScore(ctx, registryKey, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return nil, err
	}
	return r.client.ZRange(ctx, registryKey, 0, -1).Result()
}
