package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"repayment-planner/config"
	httpLayer "repayment-planner/http"
	"repayment-planner/logging"
	"repayment-planner/payoff"
	"repayment-planner/repository"
	"repayment-planner/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat
	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	cacheLogger := logger.WithComponent(logging.ComponentCache)
	cache, closeCache, err := newCache(cfg, cacheLogger)
	if err != nil {
		cacheLogger.Error("error connecting to cache", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	defer closeCache()

	comparator := payoff.NewComparator(payoff.Runner{MaxMonths: cfg.MaxSimulationMonths})
	repaymentService := service.NewRepaymentService(comparator, cache, cfg.CacheTTL, logger)
	repaymentHandler := httpLayer.NewRepaymentHandler(repaymentService, logger)

	loanRepo := repository.NewLoanRepositoryMemory()
	loanService := service.NewLoanService(loanRepo).WithLogger(logger)
	loanHandler := httpLayer.NewLoanHandler(loanService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/debts/compare",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(repaymentHandler.CompareStrategies),
		),
	)

	mux.Handle(
		"/loan/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(loanHandler.CalculateLoan),
		),
	)

	mux.HandleFunc("/healthz", httpLayer.Healthz)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpLayer.RequestLogger(logger, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "cache", cfg.CacheBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("error starting server", "error", err)
		return
	case <-quit:
		slog.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("error during server shutdown", "error", err)
	}

	slog.Info("server exited")
}

// newCache builds the configured result cache. A redis backend has to answer
// a ping at startup; the memory backend gets a sweeper for expired entries.
func newCache(cfg *config.Config, logger *logging.Logger) (repository.CacheRepository, func(), error) {
	if cfg.CacheBackend != "redis" {
		cache := repository.NewMemoryCache(cfg.CacheMaxEntries)
		stop := make(chan struct{})
		go sweepExpired(cache, cfg.CacheTTL, stop, logger)
		logger.Info("using memory cache", "max_entries", cfg.CacheMaxEntries, "ttl", cfg.CacheTTL)
		return cache, func() { close(stop) }, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, nil, fmt.Errorf("pinging redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("using redis cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return cache, func() { _ = cache.Close() }, nil
}

func sweepExpired(cache *repository.MemoryCache, every time.Duration, stop <-chan struct{}, logger *logging.Logger) {
	if every <= 0 {
		every = service.DefaultCacheTTL
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := cache.CleanExpired(); n > 0 {
				logger.Debug("expired cache entries removed", "count", n)
			}
		case <-stop:
			return
		}
	}
}
