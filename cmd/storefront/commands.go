package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"GameShop/internal/storefront"
)

func newBrowseCmd(a *app) *cobra.Command {
	var search, platform, region, sortFlag string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search the catalog and print the filtered, sorted listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFilter(platform, region, sortFlag)
			if err != nil {
				return err
			}
			a.sf.SetFilter(f)

			err = a.sf.Search(cmd.Context(), search)
			return renderThenFail(cmd, a, err)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring of name, platform or region")
	cmd.Flags().StringVar(&platform, "platform", storefront.FilterAll, "ALL, PC, PS5, XBOX or NINTENDO")
	cmd.Flags().StringVar(&region, "region", storefront.FilterAll, "ALL, EUROPE or GLOBAL")
	cmd.Flags().StringVar(&sortFlag, "sort", string(storefront.SortRelevance), "relevance, priceLow or priceHigh")
	return cmd
}

func parseFilter(platform, region, sortFlag string) (storefront.Filter, error) {
	var (
		f   storefront.Filter
		err error
	)
	if f.Platform, err = storefront.ParsePlatform(platform); err != nil {
		return f, err
	}
	if f.Region, err = storefront.ParseRegion(region); err != nil {
		return f, err
	}
	if f.Sort, err = storefront.ParseSort(sortFlag); err != nil {
		return f, err
	}
	return f, nil
}

// renderThenFail prints the view, error panel included, and still returns
// the fetch error so the exit status reflects it.
func renderThenFail(cmd *cobra.Command, a *app, fetchErr error) error {
	v := a.sf.View()
	if err := renderView(cmd.OutOrStdout(), v, a.sf.State.Liked); err != nil {
		return err
	}
	if v.Status == storefront.StatusError {
		return fetchErr
	}
	return nil
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear search and filters and list the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.sf.ClearFilters(cmd.Context())
			return renderThenFail(cmd, a, err)
		},
	}
}

func newWishCmd(a *app) *cobra.Command {
	wish := &cobra.Command{
		Use:   "wish",
		Short: "Manage the wishlist",
	}

	wish.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a listing id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			liked, err := a.sf.State.ToggleWish(cmd.Context(), id)
			if err != nil {
				return err
			}
			if liked {
				printf(cmd.OutOrStdout(), "Added %d to wishlist (%d liked)\n", id, a.sf.State.LikedCount())
			} else {
				printf(cmd.OutOrStdout(), "Removed %d from wishlist (%d liked)\n", id, a.sf.State.LikedCount())
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "Print liked listing ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := map[int64]string{}
			if err := a.sf.Search(cmd.Context(), ""); err != nil {
				a.log.Warn("catalog unavailable, printing ids only", zap.Error(err))
			}
			for _, l := range a.sf.Query.Snapshot().Listings {
				names[l.ID] = l.Name
			}
			return renderWishlist(cmd.OutOrStdout(), a.sf.State.LikedIDs(), names)
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Remove every wishlist entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sf.State.ClearWishlist(cmd.Context()); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Wishlist cleared\n")
			return nil
		},
	})
	return wish
}

func newCartCmd(a *app) *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart",
	}

	qtyCmd := func(use, short string, op func(*storefront.State, context.Context, int64) (int, bool, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				qty, found, err := op(a.sf.State, cmd.Context(), id)
				if err != nil {
					return err
				}
				switch {
				case !found:
					printf(cmd.OutOrStdout(), "%d is not in the cart\n", id)
				case qty == 0:
					printf(cmd.OutOrStdout(), "Removed %d from cart\n", id)
				default:
					printf(cmd.OutOrStdout(), "%d x%d\n", id, qty)
				}
				return nil
			},
		}
	}

	cart.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a listing from the current catalog to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.sf.Search(cmd.Context(), ""); err != nil {
				return err
			}
			qty, err := a.sf.AddToCart(cmd.Context(), id)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%d x%d (cart: %d items, %s)\n",
				id, qty, a.sf.State.CartCount(), storefront.FormatPrice(a.sf.State.CartTotal()))
			return nil
		},
	},
		qtyCmd("inc", "Increase quantity by one", (*storefront.State).IncrementQty),
		qtyCmd("dec", "Decrease quantity by one, removing the line at zero", (*storefront.State).DecrementQty),
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := a.sf.State.ClearCart(cmd.Context()); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Cart cleared\n")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print cart lines, item count and total",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st := a.sf.State
				return renderCart(cmd.OutOrStdout(), st.CartLines(), st.CartCount(), storefront.FormatPrice(st.CartTotal()))
			},
		},
	)
	return cart
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the catalog service and print local state counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			printf(out, "catalog: %s\n", a.cfg.CatalogURL)
			if err := a.catalog.Ready(cmd.Context()); err != nil {
				printf(out, "  not ready: %v\n", err)
			} else {
				printf(out, "  ready\n")
			}
			printf(out, "wishlist: %d\ncart: %d items, %s\n",
				a.sf.State.LikedCount(), a.sf.State.CartCount(), storefront.FormatPrice(a.sf.State.CartTotal()))
			return nil
		},
	}
}
