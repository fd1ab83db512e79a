package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Initialize prepares the schema and replaces every row with seed. It must
// finish before the service accepts queries; running it again yields the
// same rows.
func Initialize(ctx context.Context, store Store, seed []Listing, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	seen := make(map[int64]struct{}, len(seed))
	for i, l := range seed {
		if err := validate.Struct(l); err != nil {
			return fmt.Errorf("seed listing %d (%s): %w", i, l.Name, err)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("seed listing %d: duplicate id %d", i, l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	if err := store.Replace(ctx, seed); err != nil {
		return fmt.Errorf("replace listings: %w", err)
	}

	log.Info("catalog seeded", zap.Int("listings", len(seed)))
	return nil
}
