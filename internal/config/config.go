// Package config loads process configuration from the environment, with an
// optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Catalog struct {
	Port     string `envconfig:"CATALOG_PORT" default:"5000"`
	LogLevel string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`

	Store      string `envconfig:"CATALOG_STORE" default:"sqlite"`
	SQLitePath string `envconfig:"CATALOG_SQLITE_PATH" default:"games.db"`
	DSN        string `envconfig:"CATALOG_DB_DSN"`

	StaticDir   string   `envconfig:"CATALOG_STATIC_DIR"`
	CORSOrigins []string `envconfig:"CATALOG_CORS_ORIGINS"`

	MetricsEnabled bool   `envconfig:"CATALOG_METRICS_ENABLED" default:"false"`
	MetricsToken   string `envconfig:"CATALOG_METRICS_TOKEN"`

	ListRateLimit  int           `envconfig:"CATALOG_LIST_RATE_LIMIT" default:"0"`
	ListRateWindow time.Duration `envconfig:"CATALOG_LIST_RATE_WINDOW" default:"1m"`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool `envconfig:"CATALOG_TRUST_PROXY" default:"false"`
}

type Storefront struct {
	CatalogURL string        `envconfig:"STOREFRONT_CATALOG_URL" default:"http://localhost:5000"`
	Timeout    time.Duration `envconfig:"STOREFRONT_TIMEOUT" default:"3s"`
	LogLevel   string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"warn"`

	StateDir    string `envconfig:"STOREFRONT_STATE_DIR"`
	RedisURL    string `envconfig:"STOREFRONT_REDIS_URL"`
	RedisPrefix string `envconfig:"STOREFRONT_REDIS_PREFIX" default:"storefront"`
}

// LoadDotEnv reads .env if present. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func LoadCatalog() (*Catalog, error) {
	var cfg Catalog
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Catalog) validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DSN == "" {
			return errors.New("CATALOG_DB_DSN is required when CATALOG_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_STORE %q", c.Store)
	}
	if c.MetricsEnabled && c.MetricsToken == "" {
		return errors.New("CATALOG_METRICS_TOKEN is required when metrics are enabled")
	}
	return nil
}

func LoadStorefront() (*Storefront, error) {
	var cfg Storefront
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing storefront config: %w", err)
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving state dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".gameshop")
	}
	cfg.CatalogURL = strings.TrimRight(cfg.CatalogURL, "/")
	return &cfg, nil
}
