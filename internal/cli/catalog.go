package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/pricing"
	"github.com/roach88/poolstore/internal/query"
	"github.com/roach88/poolstore/internal/seed"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Category   string
	Search     string
	Bands      []string
	Attributes []string // name=value
	Sort       string
	Page       int
	PageSize   int
	All        bool
	OnSale     bool
}

// ProductView is the listing form of a product.
type ProductView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Gross     string `json:"gross,omitempty"`
	Reference string `json:"reference,omitempty"`
	Discount  int64  `json:"discount,omitempty"`
	InStock   bool   `json:"inStock"`
}

// QueryResult is one page of results with facets.
type QueryResult struct {
	Items      []ProductView `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Facets     []query.Facet `json:"facets"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func productView(p catalog.Product) ProductView {
	v := ProductView{ID: p.ID, Name: p.Name, Category: p.Category, InStock: p.InStock("")}
	if unit := pricing.EffectiveUnitPrice(p, nil); unit.Known {
		v.Gross = money(unit.Gross)
	}
	if ref, ok := pricing.ReferencePrice(p); ok {
		v.Reference = money(ref)
		v.Discount = pricing.DiscountPercent(p)
	}
	return v
}

func productViews(products []catalog.Product) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = productView(p)
	}
	return out
}

func writeProducts(w io.Writer, items []ProductView) {
	for _, p := range items {
		price := p.Gross
		if price == "" {
			price = "n/a"
		}
		if p.Reference != "" {
			price = fmt.Sprintf("%s (was %s, -%d%%)", price, p.Reference, p.Discount)
		}
		stock := ""
		if !p.InStock {
			stock = "out of stock"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, price, stock)
	}
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search and filter the catalog",
		Long: `Filter, facet, sort and paginate the catalog.

Price bands are matched against the tax-inclusive unit price and are
OR'd together. Attribute filters are AND'd across attributes and OR'd
within one attribute.

Examples:
  poolstore query --category "Filtration"
  poolstore query --search chlore --sort price-asc
  poolstore query --band 0-50 --band 200+ --attr puissance=0,75 CV
  poolstore query --category Promotions --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", `category path, "Tous" or "Promotions"`)
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "text matched against name, description and category")
	cmd.Flags().StringArrayVar(&opts.Bands, "band", nil, `price band "min-max" or "min+" (repeatable)`)
	cmd.Flags().StringArrayVar(&opts.Attributes, "attr", nil, `attribute filter "name=value" (repeatable)`)
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "name-asc|name-desc|price-asc|price-desc")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "results per page (0 uses the configured size)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "disable pagination")
	cmd.Flags().BoolVar(&opts.OnSale, "on-sale", false, "only products on sale")

	return cmd
}

// params converts flags into query parameters.
func (o *QueryOptions) params() (query.Params, error) {
	p := query.Params{
		Category:   o.Category,
		Search:     o.Search,
		OnSaleOnly: o.OnSale,
		Page:       o.Page,
		PageSize:   o.PageSize,
	}
	if o.All {
		p.PageSize = -1
	}

	sort, err := query.ParseSortKey(o.Sort)
	if err != nil {
		return query.Params{}, err
	}
	p.Sort = sort

	for _, s := range o.Bands {
		b, err := query.ParseBand(s)
		if err != nil {
			return query.Params{}, err
		}
		p.PriceBands = append(p.PriceBands, b)
	}

	for _, s := range o.Attributes {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return query.Params{}, fmt.Errorf("invalid attribute filter %q: expected name=value", s)
		}
		if p.Attributes == nil {
			p.Attributes = make(map[string][]string)
		}
		name = strings.TrimSpace(name)
		p.Attributes[name] = append(p.Attributes[name], strings.TrimSpace(value))
	}
	return p, nil
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	params, err := opts.params()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid query", err)
	}

	return withSession(cmd, opts.RootOptions, func(_ context.Context, s *session) error {
		res := s.svc.Browse(params)
		out := QueryResult{
			Items:      productViews(res.Items),
			Total:      res.Total,
			Page:       res.Page,
			TotalPages: res.TotalPages,
			Facets:     res.Facets,
		}

		return s.out.Render(out, func(w io.Writer) error {
			writeProducts(w, out.Items)
			fmt.Fprintf(w, "\n%d product(s), page %d/%d\n", out.Total, out.Page, out.TotalPages)
			for _, f := range out.Facets {
				values := make([]string, len(f.Values))
				for i, v := range f.Values {
					values[i] = fmt.Sprintf("%s (%d)", v.Value, v.Count)
				}
				fmt.Fprintf(w, "%s:\t%s\n", f.Name, strings.Join(values, ", "))
			}
			return nil
		})
	})
}

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "View and administer products",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a product and record it as recently viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				p, err := s.svc.ViewProduct(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "failed to show product", err)
				}
				return s.out.Render(p, func(w io.Writer) error {
					writeProducts(w, []ProductView{productView(p)})
					if p.Description != "" {
						fmt.Fprintf(w, "\n%s\n", p.Description)
					}
					for _, v := range p.Variants {
						avail := "in stock"
						if !p.InStock(v.ID) {
							avail = "out of stock"
						}
						fmt.Fprintf(w, "  variant %s\t%s\t%s\n", v.ID, v.Name, avail)
					}
					return nil
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <file>",
		Short: "Create or replace a product from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read product file", err)
			}
			var p catalog.Product
			if err := seed.YAMLToJSON(data, &p); err != nil {
				return WrapExitError(ExitCommandError, "failed to decode product", err)
			}
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				saved, err := s.svc.SaveProduct(ctx, p)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to save product", err)
				}
				return s.out.Render(productView(saved), func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Saved %s\n", saved.ID)
					return err
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				if err := s.svc.DeleteProduct(ctx, args[0]); err != nil {
					return WrapExitError(ExitFailure, "failed to delete product", err)
				}
				return s.out.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted %s\n", args[0])
					return err
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "wishlist [id]",
		Short: "Toggle a product in the wishlist, or list the wishlist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				if len(args) == 1 {
					in, err := s.svc.ToggleWishlist(ctx, args[0])
					if err != nil {
						return WrapExitError(ExitFailure, "failed to update wishlist", err)
					}
					s.out.VerboseLog("wishlist %s: %t", args[0], in)
				}
				items := productViews(s.svc.Wishlist())
				return s.out.Render(items, func(w io.Writer) error {
					writeProducts(w, items)
					return nil
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recent",
		Short: "List recently viewed products, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(_ context.Context, s *session) error {
				items := productViews(s.svc.RecentlyViewed())
				return s.out.Render(items, func(w io.Writer) error {
					writeProducts(w, items)
					return nil
				})
			})
		},
	})

	return cmd
}
