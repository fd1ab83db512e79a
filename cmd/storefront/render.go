package main

import (
	"io"
	"strings"
	"text/tabwriter"

	"GameShop/internal/storefront"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderView(w io.Writer, v storefront.View, liked func(int64) bool) error {
	printf(w, "search=%q platform=%s region=%s sort=%s  wishlist=%d cart=%d\n",
		v.Search, v.Filter.Platform, v.Filter.Region, v.Filter.Sort, v.LikedCount, v.CartCount)

	switch v.Status {
	case storefront.StatusLoading:
		printf(w, "Loading...\n")
		return nil
	case storefront.StatusError:
		printf(w, "Error: %s\n", v.Err)
		return nil
	case storefront.StatusEmpty:
		printf(w, "No games found.\n")
		return nil
	}

	tw := newTable(w)
	printf(tw, "ID\tNAME\tPLATFORM\tREGION\tPRICE\t\n")
	for _, l := range v.Listings {
		mark := ""
		if liked != nil && liked(l.ID) {
			mark = "♥"
		}
		printf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Platform, l.Region, l.PriceLabel(), mark)
	}
	return tw.Flush()
}

func renderCart(w io.Writer, lines []storefront.CartLine, count int, total string) error {
	if len(lines) == 0 {
		printf(w, "Cart is empty.\n")
		return nil
	}
	tw := newTable(w)
	printf(tw, "ID\tNAME\tPLATFORM\tQTY\tUNIT\tTOTAL\n")
	for _, l := range lines {
		printf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			l.Listing.ID, l.Listing.Name, l.Listing.Platform, l.Qty,
			l.Listing.PriceLabel(), storefront.FormatPrice(l.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printf(w, "%s\nItems: %d  Total: %s\n", strings.Repeat("-", 40), count, total)
	return nil
}

// renderWishlist prints ids with names where the listing is in names.
func renderWishlist(w io.Writer, ids []int64, names map[int64]string) error {
	if len(ids) == 0 {
		printf(w, "Wishlist is empty.\n")
		return nil
	}
	tw := newTable(w)
	printf(tw, "ID\tNAME\n")
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = "-"
		}
		printf(tw, "%d\t%s\n", id, name)
	}
	return tw.Flush()
}
