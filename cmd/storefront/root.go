package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"GameShop/internal/config"
	"GameShop/internal/storage"
	"GameShop/internal/storefront"
	"GameShop/pkg/kit"
)

// app is built once per invocation in PersistentPreRunE.
type app struct {
	cfg     *config.Storefront
	log     *zap.Logger
	catalog *storefront.CatalogClient
	sf      *storefront.Storefront
	close   func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the game catalog and manage a local wishlist and cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}

	root.AddCommand(
		newBrowseCmd(a),
		newResetCmd(a),
		newWishCmd(a),
		newCartCmd(a),
		newStatusCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = kit.NewLogger("storefront", cfg.LogLevel)

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return err
	}

	state, err := storefront.LoadState(ctx, kv, a.log)
	if err != nil {
		closeKV()
		return err
	}

	a.catalog = storefront.NewCatalogClient(cfg.CatalogURL, cfg.Timeout)
	a.sf = storefront.New(a.catalog, state, a.log)
	a.close = func() {
		closeKV()
		_ = a.log.Sync()
	}
	return nil
}

func (a *app) shutdown() {
	if a.close != nil {
		a.close()
	}
}

func openKV(ctx context.Context, cfg *config.Storefront) (storage.KV, func(), error) {
	if cfg.RedisURL != "" {
		client, err := storage.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisKV(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	}

	kv, err := storage.NewFileKV(cfg.StateDir)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() {}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid listing id %q", s)
	}
	return id, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
