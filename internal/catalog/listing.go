package catalog

import "strings"

// Listing is one purchasable game/platform/region combination.
type Listing struct {
	ID          int64    `json:"id" validate:"gt=0"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	OldPrice    *float64 `json:"old_price"`
	DiscountPct int      `json:"discount_pct" validate:"gte=0,lte=100"`
	ImageURL    string   `json:"image_url" validate:"required"`
	Platform    string   `json:"platform" validate:"required"`
	Region      string   `json:"region" validate:"required"`
}

// HasDiscount reports whether the listing should be shown as discounted.
// A zero percentage means no discount even when OldPrice is set.
func (l Listing) HasDiscount() bool {
	return l.OldPrice != nil && l.DiscountPct > 0
}

// NormalizeSearch turns raw user input into the term stores match against.
func NormalizeSearch(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches reports whether term (already normalized) is a substring of the
// lowercased name, platform or region.
func (l Listing) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Platform), term) ||
		strings.Contains(strings.ToLower(l.Region), term)
}

func price(v float64) *float64 { return &v }

// Seed returns the deterministic listing set loaded on every start.
func Seed() []Listing {
	return []Listing{
		{ID: 1, Name: "Split Fiction", Price: 34.14, OldPrice: price(42.00), DiscountPct: 19, ImageURL: "/images/splitfiction.jpg", Platform: "XBOX", Region: "EUROPE"},
		{ID: 2, Name: "Split Fiction", Price: 35.15, OldPrice: price(44.00), DiscountPct: 20, ImageURL: "/images/splitfiction.jpg", Platform: "XBOX", Region: "GLOBAL"},
		{ID: 3, Name: "Split Fiction", Price: 36.25, OldPrice: price(36.25), DiscountPct: 0, ImageURL: "/images/splitfiction.jpg", Platform: "NINTENDO", Region: "EUROPE"},
		{ID: 4, Name: "FIFA 23", Price: 29.99, OldPrice: price(59.99), DiscountPct: 50, ImageURL: "/images/fifa23.jpg", Platform: "PS5", Region: "GLOBAL"},
		{ID: 5, Name: "FIFA 23", Price: 27.49, OldPrice: price(49.99), DiscountPct: 45, ImageURL: "/images/fifa23.jpg", Platform: "PC", Region: "EUROPE"},
		{ID: 6, Name: "Red Dead Redemption 2", Price: 39.99, OldPrice: price(59.99), DiscountPct: 33, ImageURL: "/images/rdr2.jpg", Platform: "PC", Region: "GLOBAL"},
	}
}
