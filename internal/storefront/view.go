package storefront

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// FilterAll disables a platform or region filter.
const FilterAll = "ALL"

type Sort string

const (
	SortRelevance Sort = "relevance"
	SortPriceLow  Sort = "priceLow"
	SortPriceHigh Sort = "priceHigh"
)

var (
	Platforms = []string{FilterAll, "PC", "PS5", "XBOX", "NINTENDO"}
	Regions   = []string{FilterAll, "EUROPE", "GLOBAL"}
)

func ParseSort(s string) (Sort, error) {
	switch {
	case s == "" || strings.EqualFold(s, string(SortRelevance)):
		return SortRelevance, nil
	case strings.EqualFold(s, string(SortPriceLow)):
		return SortPriceLow, nil
	case strings.EqualFold(s, string(SortPriceHigh)):
		return SortPriceHigh, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want relevance, priceLow or priceHigh)", s)
	}
}

// ParsePlatform and ParseRegion accept any case and return the canonical
// upper-case value. An empty string means FilterAll.
func ParsePlatform(s string) (string, error) { return parseChoice("platform", s, Platforms) }

func ParseRegion(s string) (string, error) { return parseChoice("region", s, Regions) }

func parseChoice(kind, s string, choices []string) (string, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, c := range choices {
		if strings.EqualFold(s, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q (want %s)", kind, s, strings.Join(choices, ", "))
}

type Filter struct {
	Platform string
	Region   string
	Sort     Sort
}

// DefaultFilter shows everything in server order.
func DefaultFilter() Filter {
	return Filter{Platform: FilterAll, Region: FilterAll, Sort: SortRelevance}
}

// Derive returns the visible listings for f. It never modifies listings
// and depends on nothing but its arguments.
func Derive(listings []Listing, f Filter) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !matchesFilter(l.Platform, f.Platform) || !matchesFilter(l.Region, f.Region) {
			continue
		}
		out = append(out, l)
	}

	switch f.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b Listing) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b Listing) int { return cmp.Compare(b.Price, a.Price) })
	}
	return out
}

func matchesFilter(value, filter string) bool {
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		return true
	}
	return strings.EqualFold(value, filter)
}
