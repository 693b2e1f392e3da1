package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/NatanCav/FlowFit/docs"
	"github.com/NatanCav/FlowFit/internal/app"
	"github.com/NatanCav/FlowFit/internal/pkg/config"
	"github.com/NatanCav/FlowFit/pkg/logger"
)

// @title                       FlowFit API
// @version                     1.0
// @description                 Back-office API for gym clients, payments and staff accounts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A local .env is optional; real environment variables take precedence.
	envFileErr := godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "flowfit-api",
	})
	if envFileErr != nil {
		log.Debug().Err(envFileErr).Msg(".env not loaded, using process environment")
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise application")
	}

	if err := application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}
