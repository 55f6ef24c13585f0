package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agora/backend/internal/api"
	"agora/backend/internal/common"
	"agora/backend/internal/config"
	"agora/backend/internal/db"
	"agora/backend/internal/events"
	"agora/backend/internal/jobs"
	"agora/backend/internal/logging"
	"agora/backend/internal/metrics"
	"agora/backend/internal/middleware"
	"agora/backend/internal/routes"
	"agora/backend/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Agora starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if err := run(cfg); err != nil {
		logging.Error("Server stopped with error", "error", err)
		_ = logging.Close()
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to DB with GORM (writes) and sqlx (read models)
	gormDB, err := db.InitORM(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect %s (GORM): %w", cfg.Database.Driver, err)
	}
	sqlDB, err := db.InitSQLX(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect %s (sqlx): %w", cfg.Database.Driver, err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, gormDB); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetricsRegistry(reg)
	if err := m.RegisterDB(sqlDB.DB, cfg.Database.Name); err != nil {
		logging.Warn("DB stats collector not registered", "error", err)
	}

	healthChecks := []api.HealthCheck{
		{Name: cfg.Database.Driver, Details: cfg.Database.Driver + " connected", Ping: sqlDB.PingContext},
	}

	var cache common.CacheInterface
	if cfg.Redis.Enabled {
		redisCache := common.NewRedisCacheService(common.NewRedisClient(cfg.Redis))
		cache = redisCache
		healthChecks = append(healthChecks, api.HealthCheck{Name: "redis", Details: "Redis connected", Ping: redisCache.Ping})
		logging.Info("Using Redis cache", "addr", cfg.Redis.RedisAddr())
	} else {
		cache = common.NewCacheService(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		logging.Info("Using in-memory cache")
	}
	defer cache.Close()

	publisher := events.NewPublisher(cfg.Kafka)
	defer publisher.Close()

	store := services.Store{DB: gormDB, SQL: sqlDB}
	deps := api.InitDependencies(cfg, store, cache, publisher, m)

	if warmer, ok := deps.Services.Members.(jobs.MemberListWarmer); ok {
		jobs.InitializeJobs(ctx, warmer, cfg.Cache.WarmInterval)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	router := routes.RegisterRoutes(deps, routes.Options{
		Config:       cfg,
		UpSince:      time.Now(),
		Gatherer:     reg,
		HealthChecks: healthChecks,
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		limiter.RunEviction(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Server.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
