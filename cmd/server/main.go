// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"knowyourcompany/internal/api"
	"knowyourcompany/internal/common/config"
	"knowyourcompany/internal/common/database"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/common/observability"
	"knowyourcompany/internal/connectors"
	"knowyourcompany/internal/insight"
	"knowyourcompany/internal/storage"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting know-your-company server",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.BindAddr()),
	)

	obs := observability.New("know-your-company")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Cache layer: Redis when configured, in-memory otherwise ---
	var cache insight.Cache
	if cfg.Database.Redis.Enabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, log)
		zapLog.Info("Redis cache connected")
	} else {
		cache = storage.NewMemoryCache(cfg.Pipeline.MemoryCacheCapacity)
		zapLog.Warn("Redis disabled, using in-memory cache")
	}

	// --- Store layer: Postgres when configured, in-memory otherwise ---
	var store insight.Store
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		pgStore := storage.NewPostgresStore(pg)
		if err := pgStore.Migrate(ctx); err != nil {
			zapLog.Fatal("postgres migration failed", zap.Error(err))
		}
		store = pgStore
		zapLog.Info("PostgreSQL store connected")
	} else {
		store = storage.NewMemoryStore()
		zapLog.Warn("Postgres disabled, using in-memory store")
	}

	// --- Pipeline wiring ---
	connectorTimeout := time.Duration(cfg.Pipeline.ConnectorTimeoutSecs) * time.Second
	conns := connectors.Build(cfg.Connectors, connectorTimeout, log)
	zapLog.Info("connectors registered", zap.Int("count", len(conns)))

	runner := insight.NewRunner(conns, connectorTimeout, log)
	scorer := insight.NewScorer(insight.LexiconFromConfig(cfg.Scoring))

	service := insight.NewService(cache, store, runner, scorer, insight.Options{
		CacheTTL:        time.Duration(cfg.Pipeline.CacheTTLSeconds) * time.Second,
		FreshnessWindow: time.Duration(cfg.Pipeline.FreshnessWindowHours) * time.Hour,
		RequestTimeout:  time.Duration(cfg.Pipeline.RequestTimeoutSecs) * time.Second,
	}, log, obs)

	srv := api.NewServer(service, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.BindAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		zapLog.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server stopped", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	zapLog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown", zap.Error(err))
	}
}
