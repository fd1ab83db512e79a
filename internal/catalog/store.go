package catalog

import (
	"context"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	seedTimeout  = 10 * time.Second
)

// Store is the listing table. List returns rows in id order; Replace
// swaps the whole collection.
type Store interface {
	Ping(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	Replace(ctx context.Context, listings []Listing) error
	List(ctx context.Context, search string) ([]Listing, error)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
