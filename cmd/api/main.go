package main

import (
	"context"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lernhub/checkout-recon/internal/app"
	"github.com/lernhub/checkout-recon/internal/config"
	"github.com/lernhub/checkout-recon/internal/di"
	"github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/infrastructure/api/routers"
	"github.com/lernhub/checkout-recon/internal/infrastructure/database/db_client"
	"github.com/lernhub/checkout-recon/internal/infrastructure/gateway"
	"github.com/lernhub/checkout-recon/internal/infrastructure/pending"
	"github.com/lernhub/checkout-recon/pkg/log"
)

const (
	appName = "checkout-recon"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log.Init(appName, log.WithConsoleLogger())
	logger := log.GetLogger()

	pgClient := db_client.NewPGClient(cfg.PostgreSQL)
	db, err := pgClient.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
	}

	registry, err := pending.NewRegistry(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToRedis)
	}

	gatewayClient, err := gateway.NewClient(cfg.Gateway)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build gateway client")
	}

	checkTimeout, err := strconv.Atoi(cfg.Poller.CheckTimeoutSeconds)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid poller check timeout")
	}

	container := di.NewContainer(db, gatewayClient, registry, time.Duration(checkTimeout)*time.Second)

	poller := app.NewPendingPollProcess(container.PendingPollerInteractor, cfg.Poller)
	go poller.Run(ctx)

	router := routers.NewRouter(container)
	service := app.NewService(cfg)
	service.Run(ctx, router)
}
