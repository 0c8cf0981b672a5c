package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/order"
)

func writeOrders(w io.Writer, orders []order.Order) {
	for _, o := range orders {
		supplier := ""
		if o.HasDropship {
			supplier = "supplier: " + string(o.SupplierStatus)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.DisplayID(), o.Date.Format("2006-01-02 15:04"), o.CustomerEmail, money(o.Total), o.Status, supplier)
	}
}

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders and move them through the workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(_ context.Context, s *session) error {
				orders := s.svc.Orders()
				if customer != "" {
					orders = s.svc.CustomerOrders(customer)
				}
				return s.out.Render(orders, func(w io.Writer) error {
					if len(orders) == 0 {
						_, err := fmt.Fprintln(w, "No orders.")
						return err
					}
					writeOrders(w, orders)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "only orders of this email, most recent first")

	cmd.AddCommand(&cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set the status of an order",
		Long: `Set the status of an order.

The status is a label ("En cours") or one of the keys pending,
processing, shipped, completed, cancelled. Every transition is allowed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := order.ParseStatus(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid status", err)
			}
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				o, err := s.svc.SetOrderStatus(ctx, args[0], st)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to update order", err)
				}
				return s.out.Render(o, func(w io.Writer) error {
					writeOrders(w, []order.Order{o})
					return nil
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "supplier <order-id> <status>",
		Short: "Set the supplier status of a drop-shipped order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				o, err := s.svc.SetSupplierStatus(ctx, args[0], order.SupplierStatus(args[1]))
				if err != nil {
					return WrapExitError(ExitFailure, "failed to update order", err)
				}
				return s.out.Render(o, func(w io.Writer) error {
					writeOrders(w, []order.Order{o})
					return nil
				})
			})
		},
	})

	return cmd
}
