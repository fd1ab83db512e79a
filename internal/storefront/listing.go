// Package storefront is the client side of the shop: it queries the
// catalog service, derives the visible listing set, and keeps the
// wishlist and cart in a local key-value store.
package storefront

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Listing mirrors the catalog's /list wire format.
type Listing struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"old_price"`
	DiscountPct int      `json:"discount_pct"`
	ImageURL    string   `json:"image_url"`
	Platform    string   `json:"platform"`
	Region      string   `json:"region"`
}

// HasDiscount is false for a zero percentage even when OldPrice is set.
func (l Listing) HasDiscount() bool {
	return l.OldPrice != nil && l.DiscountPct > 0
}

// PriceLabel renders the price line, e.g. "€34.14 (was €42.00, -19%)".
func (l Listing) PriceLabel() string {
	p := FormatPrice(decimal.NewFromFloat(l.Price))
	if !l.HasDiscount() {
		return p
	}
	return fmt.Sprintf("%s (was %s, -%d%%)", p, FormatPrice(decimal.NewFromFloat(*l.OldPrice)), l.DiscountPct)
}

// FormatPrice rounds to cents for display only.
func FormatPrice(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}
