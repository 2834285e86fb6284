// Command server runs the Pedidos API.
//
// @title                       Pedidos API
// @version                     1.0
// @description                 Order intake for delivery with per-request metric records.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/api"
	"github.com/delibery/pedidos-api/internal/api/handler"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/core/service"
	mongostore "github.com/delibery/pedidos-api/internal/infrastructure/db/mongo"
	redisstore "github.com/delibery/pedidos-api/internal/infrastructure/db/redis"
	"github.com/delibery/pedidos-api/internal/infrastructure/identity"
	"github.com/delibery/pedidos-api/internal/infrastructure/queue"
	"github.com/delibery/pedidos-api/internal/pkg/config"
	"github.com/delibery/pedidos-api/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pedidos-api",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	metricRepo := mongostore.NewMetricRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	appConfigRepo := mongostore.NewAppConfigRepository(db)
	if err := mongostore.EnsureIndexes(ctx, metricRepo, orderRepo); err != nil {
		return err
	}

	// --- Identity ---
	tokens := identity.NewLocalTokens(cfg.JWTSecret, cfg.TokenTTL)
	verifiers := []ports.Verifier{tokens}

	var firebase ports.Verifier
	if cfg.Firebase.ProjectID != "" {
		firebase = identity.NewFirebaseVerifier(cfg.Firebase.ProjectID, cfg.Firebase.CertsURL, nil)
		if cfg.Firebase.AcceptBearer {
			verifiers = append(verifiers, firebase)
		}
	} else {
		log.Info().Msg("FIREBASE_PROJECT_ID not set, client login disabled")
	}
	if cfg.Auth.APIPassHash == "" {
		log.Info().Msg("API_PASS_HASH not set, internal login disabled")
	}

	// --- Metric record pipeline ---
	dispatcher := queue.NewDispatcher(cfg.Metrics.Workers, cfg.Metrics.Buffer, metricRepo, logger.Component("dispatcher"))
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Services ---
	authenticator := service.NewAuthenticator(logger.Component("authenticator"), verifiers...)
	authService := service.NewAuthService(tokens, firebase, appConfigRepo, service.InternalCredentials{
		Username:     cfg.Auth.APIUser,
		PasswordHash: cfg.Auth.APIPassHash,
	}, logger.Component("auth"))
	orderService := service.NewOrderService(orderRepo,
		redisstore.NewOrderIdempotency(rdb), redisstore.NewOrderSequence(rdb), logger.Component("orders"))
	metricService := service.NewMetricService(metricRepo,
		cfg.Metrics.QueryLimit, cfg.Metrics.MaxQueryLimit, logger.Component("metrics"))

	e := api.NewRouter(api.Dependencies{
		Log:            log,
		Version:        version,
		Authenticator:  authenticator,
		AuthService:    authService,
		OrderService:   orderService,
		MetricService:  metricService,
		MetricSink:     dispatcher,
		AllowedOrigins: cfg.AllowedOrigins,
		Readiness: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongostore.Ping(ctx, mongoClient) },
			"redis":   func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	// Requests are done; flush their records before the stores close.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("metric records not fully drained")
	}

	log.Info().Msg("server stopped")
	return nil
}
