package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"GameShop/internal/catalog"
	"GameShop/internal/config"
	"GameShop/pkg/kit"
)

const service = "catalog"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.LoadCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("open store", zap.Error(err), zap.String("store", cfg.Store))
	}
	defer closeStore()

	// no request may observe a partially seeded table
	if err := catalog.Initialize(ctx, store, catalog.Seed(), log); err != nil {
		log.Fatal("initialize catalog", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &catalog.Server{
		Store:       store,
		Log:         log,
		ListLimiter: kit.NewIPRateLimiter(cfg.ListRateLimit, cfg.ListRateWindow),
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		StaticDir:      cfg.StaticDir,
		CORSOrigins:    cfg.CORSOrigins,
		TrustProxy:     cfg.TrustProxy,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Catalog) (catalog.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return catalog.NewMemStore(), func() {}, nil

	case config.StorePostgres:
		pool, err := catalog.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresStore(pool), pool.Close, nil

	default:
		db, err := catalog.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s := catalog.NewSQLiteStore(db)
		return s, func() { _ = s.Close() }, nil
	}
}
