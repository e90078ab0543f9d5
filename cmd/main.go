package main

import (
	"context"
	"errors"
	"github.com/maxaizer/job-market-api/internal/api"
	"github.com/maxaizer/job-market-api/internal/cache"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/logger"
	"github.com/maxaizer/job-market-api/internal/metrics"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/maxaizer/job-market-api/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

func runCache(ctx context.Context, cfg config.CacheConfig, dbContext *repositories.DbContext) (cache.Store, func()) {
	if !cfg.Enabled() {
		return nil, func() {}
	}

	store, err := cache.Open(ctx, cfg, dbContext.DB)
	if err != nil {
		log.Fatalf("can't open report cache: %v", err)
	}
	log.Infof("report cache enabled, backend: %s, ttl: %v", cfg.Backend, cfg.TTL)

	if cfg.Backend != config.CacheDatabase {
		return store, func() { _ = store.Close() }
	}

	cleaner, err := services.NewCacheCleaner(repositories.NewCacheEntriesRepository(dbContext.DB), cfg.CleanupSchedule)
	if err != nil {
		log.Fatalf("can't create cache cleaner: %v", err)
	}
	return store, func() {
		cleaner.Stop()
		_ = store.Close()
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	if cfg.Server.MetricsEnabled {
		metrics.Register()
	}

	dbContext, err := repositories.NewDbContext(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if cfg.DB.AutoMigrate {
		if err = dbContext.Migrate(); err != nil {
			log.Fatalf("can't migrate db context: %v", err)
		}
	}

	store, closeCache := runCache(ctx, cfg.Cache, dbContext)
	defer closeCache()

	postings := repositories.NewPostingsRepository(dbContext.DB)
	router := api.NewRouter(api.Dependencies{
		Config:   cfg.Server,
		DB:       dbContext,
		Market:   services.NewMarketAnalytics(postings, time.Now),
		Overview: services.NewDashboardOverview(postings, time.Now),
		Executor: api.NewReportExecutor(store, cfg.Cache.TTL, cfg.Server.IsProduction()),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("%s listening on %s (%s)", api.ServiceName, server.Addr, cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped.")
}
