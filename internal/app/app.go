// Package app wires configuration, storage and the HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/NatanCav/FlowFit/internal/api"
	"github.com/NatanCav/FlowFit/internal/api/handler"
	"github.com/NatanCav/FlowFit/internal/core/service"
	mongodb "github.com/NatanCav/FlowFit/internal/infrastructure/db/mongo"
	redisdb "github.com/NatanCav/FlowFit/internal/infrastructure/db/redis"
	"github.com/NatanCav/FlowFit/internal/infrastructure/security"
	"github.com/NatanCav/FlowFit/internal/pkg/config"
	"github.com/NatanCav/FlowFit/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App is the runtime container of the API process.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	mongo  *mongo.Client
	db     *mongo.Database
	redis  *goredis.Client
	server *echo.Echo
}

// New connects to MongoDB and Redis, prepares the schema, seeds the default
// admin and builds the router. logger.Init must have been called.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Component("app")}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	a.mongo, a.db = client, db

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.redis = rdb

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	users := mongodb.NewUserRepository(db)
	historyRepo := mongodb.NewHistoryRepository(db)
	clients := mongodb.NewClientRepository(db)
	payments := mongodb.NewPaymentRepository(db)
	reports := mongodb.NewReportRepository(db)
	cache := redisdb.NewStatsCache(rdb, cfg.Redis.StatsTTL)

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if _, err := seedAdmin(ctx, users, hasher, cfg.Admin, a.log); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	authService := service.NewAuthService(users, historyRepo, hasher, tokens, logger.Component("auth"),
		service.WithUniformLoginErrors(cfg.Auth.UniformLoginErrors))
	userService := service.NewUserService(users, historyRepo, hasher, logger.Component("users"))
	clientService := service.NewClientService(clients, payments, historyRepo, cache, logger.Component("clients"))
	paymentService := service.NewPaymentService(payments, clients, historyRepo, cache, logger.Component("payments"))
	reportService := service.NewReportService(reports, cache, logger.Component("reports"))
	historyService := service.NewHistoryService(historyRepo)

	a.server = api.NewRouter(api.RouterConfig{
		Tokens:      tokens,
		Logger:      logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
	}, api.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.Auth.UniformLoginErrors),
		Users:    handler.NewUserHandler(userService),
		Clients:  handler.NewClientHandler(clientService),
		Payments: handler.NewPaymentHandler(paymentService),
		Reports:  handler.NewReportHandler(reportService, historyService),
		Health:   handler.NewHealthHandler(),
		Readiness: handler.NewHealthDependenciesHandler(map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
	})

	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", a.cfg.Port)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := a.server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return a.Close(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the storage connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
	}
	return errors.Join(errs...)
}
