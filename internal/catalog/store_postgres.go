package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool is the subset of *pgxpool.Pool the store needs.
type pgxPool interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	createListingsSQL = `
		CREATE TABLE IF NOT EXISTS listings (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL,
			price        DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			old_price    DOUBLE PRECISION,
			discount_pct INTEGER NOT NULL DEFAULT 0 CHECK (discount_pct BETWEEN 0 AND 100),
			image_url    TEXT NOT NULL,
			platform     TEXT NOT NULL,
			region       TEXT NOT NULL
		)`

	truncateListingsSQL = `TRUNCATE listings RESTART IDENTITY`

	insertListingSQL = `
		INSERT INTO listings (id, name, price, old_price, discount_pct, image_url, platform, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// keeps BIGSERIAL ahead of the explicit seed ids
	syncListingsSeqSQL = `
		SELECT setval(pg_get_serial_sequence('listings', 'id'), COALESCE(MAX(id), 0) + 1, false)
		FROM listings`

	selectListingsSQL = `
		SELECT id, name, price, old_price, discount_pct, image_url, platform, region
		FROM listings`

	searchListingsWhere = `
		WHERE strpos(lower(name), $1) > 0
		   OR strpos(lower(platform), $1) > 0
		   OR strpos(lower(region), $1) > 0`
)

type PostgresStore struct {
	pool pgxPool
}

func NewPostgresStore(pool pgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgres creates a pool for dsn and verifies connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}
	if err := withTimeout(ctx, pingTimeout, pool.Ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, s.pool.Ping)
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.pool.Exec(ctx, createListingsSQL); err != nil {
			return fmt.Errorf("create listings: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Replace(ctx context.Context, listings []Listing) error {
	return withTimeout(ctx, seedTimeout, func(ctx context.Context) error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin replace: %w", err)
		}

		if err := replaceInTx(ctx, tx, listings); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit replace: %w", err)
		}
		return nil
	})
}

func replaceInTx(ctx context.Context, tx pgx.Tx, listings []Listing) error {
	if _, err := tx.Exec(ctx, truncateListingsSQL); err != nil {
		return fmt.Errorf("truncate listings: %w", err)
	}

	for _, l := range listings {
		_, err := tx.Exec(ctx, insertListingSQL,
			l.ID, l.Name, l.Price, l.OldPrice, l.DiscountPct, l.ImageURL, l.Platform, l.Region)
		if err != nil {
			return fmt.Errorf("insert listing %d: %w", l.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, syncListingsSeqSQL); err != nil {
		return fmt.Errorf("sync listings sequence: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, search string) ([]Listing, error) {
	term := NormalizeSearch(search)

	query := selectListingsSQL
	var args []any
	if term != "" {
		query += searchListingsWhere
		args = append(args, term)
	}
	query += ` ORDER BY id ASC`

	var out []Listing
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Listing, 0, 16)
		for rows.Next() {
			var l Listing
			if err := rows.Scan(&l.ID, &l.Name, &l.Price, &l.OldPrice, &l.DiscountPct,
				&l.ImageURL, &l.Platform, &l.Region); err != nil {
				return err
			}
			out = append(out, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return out, nil
}
