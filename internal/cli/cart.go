package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/cart"
	"github.com/roach88/poolstore/internal/order"
)

// CartLine is the display form of a cart item.
type CartLine struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
}

// CartView is the cart with its totals.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Units int        `json:"units"`
	Net   string     `json:"net"`
	Tax   string     `json:"tax"`
	Gross string     `json:"gross"`
}

func (s *session) cartView(items []cart.Item) CartView {
	totals := s.svc.CartTotals()
	v := CartView{
		Lines: make([]CartLine, len(items)),
		Units: cart.Count(items),
		Net:   money(totals.Net),
		Tax:   money(totals.Tax),
		Gross: money(totals.Gross),
	}
	for i, it := range items {
		line := CartLine{
			ProductID: it.Product.ID,
			VariantID: it.VariantID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
		}
		if unit := it.Unit(); unit.Known {
			line.Unit = money(unit.Gross)
		}
		v.Lines[i] = line
	}
	return v
}

func renderCart(s *session, items []cart.Item) error {
	v := s.cartView(items)
	return s.out.Render(v, func(w io.Writer) error {
		if len(v.Lines) == 0 {
			_, err := fmt.Fprintln(w, "Cart is empty.")
			return err
		}
		for _, l := range v.Lines {
			id := l.ProductID
			if l.VariantID != "" {
				id += "/" + l.VariantID
			}
			fmt.Fprintf(w, "%s\t%s\tx%d\t%s\n", id, l.Name, l.Quantity, l.Unit)
		}
		fmt.Fprintf(w, "\nNet\t%s\nTax\t%s\nTotal\t%s\n", v.Net, v.Tax, v.Gross)
		return nil
	})
}

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(_ context.Context, s *session) error {
				return renderCart(s, s.svc.Cart())
			})
		},
	}
	cmd.PersistentFlags().StringVar(&variant, "variant", "", "variant ID of the product")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add units of a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := quantityArg(args, 1, 1)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				items, err := s.svc.AddToCart(ctx, args[0], variant, qty)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to add to cart", err)
				}
				return renderCart(s, items)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := quantityArg(args, 1, 0)
			if err != nil {
				return err
			}
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				items, err := s.svc.SetCartQuantity(ctx, cart.Key{ProductID: args[0], VariantID: variant}, qty)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to update cart", err)
				}
				return renderCart(s, items)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				return renderCart(s, s.svc.RemoveFromCart(ctx, cart.Key{ProductID: args[0], VariantID: variant}))
			})
		},
	})

	return cmd
}

func quantityArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid quantity %q", args[i]), err)
	}
	return n, nil
}

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Name       string
	Email      string
	Street     string
	PostalCode string
	City       string
	Country    string
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		Long: `Place an order from the current cart.

Every line is checked against live stock first. The order keeps a
snapshot of the cart and its rounded tax-inclusive total; stock is then
decremented and the cart is emptied.

Example:
  poolstore checkout --email ana@example.com --name "Ana Peeters" \
    --street "Rue Haute 1" --postal-code 1000 --city Bruxelles`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "customer email (required)")
	cmd.Flags().StringVar(&opts.Street, "street", "", "shipping street")
	cmd.Flags().StringVar(&opts.PostalCode, "postal-code", "", "shipping postal code")
	cmd.Flags().StringVar(&opts.City, "city", "", "shipping city")
	cmd.Flags().StringVar(&opts.Country, "country", "", "shipping country")

	return cmd
}

func (o *CheckoutOptions) address() *order.Address {
	if o.Street == "" && o.PostalCode == "" && o.City == "" && o.Country == "" {
		return nil
	}
	return &order.Address{Street: o.Street, PostalCode: o.PostalCode, City: o.City, Country: o.Country}
}

func runCheckout(opts *CheckoutOptions, cmd *cobra.Command) error {
	return withSession(cmd, opts.RootOptions, func(ctx context.Context, s *session) error {
		o, err := s.svc.Checkout(ctx, order.Customer{Name: opts.Name, Email: opts.Email}, opts.address())
		if err != nil {
			return WrapExitError(ExitFailure, "checkout failed", err)
		}
		return s.out.Render(o, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Order %s placed: %s, %s\n", o.DisplayID(), money(o.Total), o.Status)
			return err
		})
	})
}
