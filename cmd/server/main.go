// Package main runs the analytics service: the HTTP API, the scheduled
// score refresh job, and the Prometheus metrics endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"smart-money-lab/internal/api"
	"smart-money-lab/internal/cache"
	"smart-money-lab/internal/config"
	"smart-money-lab/internal/logger"
	"smart-money-lab/internal/observability"
	"smart-money-lab/internal/refresh"
	"smart-money-lab/internal/storage"
	chstore "smart-money-lab/internal/storage/clickhouse"
	"smart-money-lab/internal/storage/memory"
	"smart-money-lab/internal/storage/migrations"
	pgstore "smart-money-lab/internal/storage/postgres"
)

// allStores holds all storage implementations.
type allStores struct {
	walletStore       storage.WalletStore
	tradeStore        storage.TradeStore
	holderStore       storage.TokenHolderStore
	scoreStore        storage.ScoreStore
	poolStore         storage.PoolStore
	snapshotStore     storage.ScoreSnapshotStore        // nil without ClickHouse
	distSnapshotStore storage.DistributionSnapshotStore // nil without ClickHouse
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Flags override env-derived config
	listenAddr := flag.String("listen-addr", cfg.ListenAddr, "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string (empty = in-memory)")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string (empty = no snapshot archive)")
	redisAddr := flag.String("redis-addr", cfg.RedisAddr, "Redis address (empty = no cache)")
	refreshInterval := flag.Duration("refresh-interval", cfg.RefreshInterval, "Score refresh interval")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	logger.Initialize(*logLevel)
	log := logger.GetForComponent("server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics("")

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("create stores")
	}
	defer cleanup()

	// Cache: Redis when configured, otherwise a no-op
	var apiCache cache.Cache = cache.NoOp{}
	if *redisAddr != "" {
		rds, err := cache.NewRedis(ctx, *redisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rds.Close()
		apiCache = rds
		log.Info().Str("addr", *redisAddr).Msg("redis cache enabled")
	}

	ttlPolicy := cache.NewTTLPolicy(time.Hour, 5*time.Second)

	runner := refresh.New(refresh.Options{
		WalletStore:   stores.walletStore,
		ScoreStore:    stores.scoreStore,
		SnapshotStore: stores.snapshotStore,
		Cache:         apiCache,
		TTLPolicy:     ttlPolicy,
		Metrics:       metrics,
		BatchSize:     cfg.RefreshBatchSize,
	})

	apiServer := api.New(api.Options{
		WalletStore:           stores.walletStore,
		TradeStore:            stores.tradeStore,
		HolderStore:           stores.holderStore,
		ScoreStore:            stores.scoreStore,
		PoolStore:             stores.poolStore,
		DistributionSnapshots: stores.distSnapshotStore,
		Cache:                 apiCache,
		TTLPolicy:             ttlPolicy,
		BaseTTL:               cfg.CacheBaseTTL,
		Metrics:               metrics,
	})

	mux := http.NewServeMux()
	mux.Handle("/", apiServer.Handler())
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", observability.Handler())
	}

	httpServer := &http.Server{
		Addr:    *listenAddr,
		Handler: mux,
	}

	var wg sync.WaitGroup

	// Refresh scheduler
	wg.Add(1)
	go func() {
		defer wg.Done()
		runRefreshScheduler(ctx, runner, *refreshInterval)
	}()

	// HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", *listenAddr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			cancel()
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	wg.Wait()
	log.Info().Msg("shutdown complete")
}

// runRefreshScheduler runs the refresh job immediately and then on the
// configured interval until the context is cancelled.
func runRefreshScheduler(ctx context.Context, runner *refresh.Runner, interval time.Duration) {
	log := logger.GetForComponent("scheduler")

	runOnce := func() {
		if _, err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("refresh run failed")
		}
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// createStores creates the storage layer. An empty Postgres DSN selects
// in-memory stores; an empty ClickHouse DSN disables snapshot archiving.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, metrics *observability.Metrics) (*allStores, func(), error) {
	log := logger.GetForComponent("storage")

	stores := &allStores{}
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if postgresDSN == "" {
		log.Info().Msg("using in-memory stores")
		stores.walletStore = memory.NewWalletStore()
		stores.tradeStore = memory.NewTradeStore()
		stores.holderStore = memory.NewTokenHolderStore()
		stores.scoreStore = memory.NewScoreStore()
		stores.poolStore = memory.NewPoolStore()
	} else {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		cleanups = append(cleanups, pool.Close)
		pool.SetMetrics(metrics)

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}

		stores.walletStore = pgstore.NewWalletStore(pool)
		stores.tradeStore = pgstore.NewTradeStore(pool)
		stores.holderStore = pgstore.NewTokenHolderStore(pool)
		stores.scoreStore = pgstore.NewScoreStore(pool)
		stores.poolStore = pgstore.NewPoolStore(pool)
		log.Info().Msg("postgres stores ready")
	}

	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
		cleanups = append(cleanups, func() { conn.Close() })
		conn.SetMetrics(metrics)

		stores.snapshotStore = chstore.NewScoreSnapshotStore(conn)
		stores.distSnapshotStore = chstore.NewDistributionSnapshotStore(conn)
		log.Info().Msg("clickhouse snapshot archive ready")
	}

	return stores, cleanup, nil
}
