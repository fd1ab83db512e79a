package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type gameRow struct {
	ID          int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string   `gorm:"column:name;not null"`
	Price       float64  `gorm:"column:price;not null"`
	OldPrice    *float64 `gorm:"column:old_price"`
	DiscountPct int      `gorm:"column:discount_pct;not null"`
	ImageURL    string   `gorm:"column:image_url;not null"`
	Platform    string   `gorm:"column:platform;not null"`
	Region      string   `gorm:"column:region;not null"`

	// SQLite's lower() folds ASCII only, so search runs against copies
	// folded in Go.
	NameFold     string `gorm:"column:name_fold;not null;default:''"`
	PlatformFold string `gorm:"column:platform_fold;not null;default:''"`
	RegionFold   string `gorm:"column:region_fold;not null;default:''"`
}

func (gameRow) TableName() string { return "games" }

func rowFromListing(l Listing) gameRow {
	return gameRow{
		ID:          l.ID,
		Name:        l.Name,
		Price:       l.Price,
		OldPrice:    l.OldPrice,
		DiscountPct: l.DiscountPct,
		ImageURL:    l.ImageURL,
		Platform:    l.Platform,
		Region:      l.Region,

		NameFold:     strings.ToLower(l.Name),
		PlatformFold: strings.ToLower(l.Platform),
		RegionFold:   strings.ToLower(l.Region),
	}
}

func (r gameRow) listing() Listing {
	return Listing{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		OldPrice:    r.OldPrice,
		DiscountPct: r.DiscountPct,
		ImageURL:    r.ImageURL,
		Platform:    r.Platform,
		Region:      r.Region,
	}
}

// SQLiteStore keeps listings in the "games" table of a SQLite file.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at dsn with GORM's
// own logging silenced.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", dsn, err)
	}
	return db, nil
}

func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return withTimeout(ctx, pingTimeout, sqlDB.PingContext)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&gameRow{}); err != nil {
		return fmt.Errorf("migrate games: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Replace(ctx context.Context, listings []Listing) error {
	rows := make([]gameRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, rowFromListing(l))
	}

	return withTimeout(ctx, seedTimeout, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM games").Error; err != nil {
				return fmt.Errorf("clear games: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert games: %w", err)
			}
			return nil
		})
	})
}

func (s *SQLiteStore) List(ctx context.Context, search string) ([]Listing, error) {
	term := NormalizeSearch(search)

	var rows []gameRow
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		q := s.db.WithContext(ctx).Model(&gameRow{}).Order("id ASC")
		if term != "" {
			q = q.Where(
				"instr(name_fold, ?) > 0 OR instr(platform_fold, ?) > 0 OR instr(region_fold, ?) > 0",
				term, term, term,
			)
		}
		return q.Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]Listing, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.listing())
	}
	return out, nil
}
