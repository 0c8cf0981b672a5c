package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/category"
)

// CategoryChange reports a category administration result.
type CategoryChange struct {
	Path     string `json:"path"`
	Products int    `json:"products"`
}

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Inspect and administer the category hierarchy",
		Long: `Inspect and administer the category hierarchy.

Categories are not stored separately: the hierarchy is derived from the
" - " separated category path of every product, and each command below
rewrites the products at or below the given path.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Print the category hierarchy with product counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(_ context.Context, s *session) error {
				tree := s.svc.CategoryTree()
				return s.out.Render(tree, func(w io.Writer) error {
					writeTree(w, tree, 0)
					return nil
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename the last segment of a category path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				path, n, err := s.svc.RenameCategory(ctx, args[0], args[1])
				if err != nil {
					return WrapExitError(ExitFailure, "failed to rename category", err)
				}
				return renderChange(s.out, "Renamed", CategoryChange{Path: path, Products: n})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "duplicate <path> <dest-path>",
		Short: "Copy every product under a category into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				n, err := s.svc.DuplicateCategory(ctx, args[0], args[1])
				if err != nil {
					return WrapExitError(ExitFailure, "failed to duplicate category", err)
				}
				return renderChange(s.out, "Duplicated into", CategoryChange{Path: args[1], Products: n})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <path>",
		Short: "Delete every product under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				n, err := s.svc.DeleteCategory(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "failed to delete category", err)
				}
				return renderChange(s.out, "Deleted", CategoryChange{Path: args[0], Products: n})
			})
		},
	})

	return cmd
}

func renderChange(out *OutputFormatter, verb string, c CategoryChange) error {
	return out.Render(c, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s (%d product(s))\n", verb, c.Path, c.Products)
		return err
	})
}

func writeTree(w io.Writer, nodes []*category.Node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s\t%d\n", strings.Repeat("  ", depth), n.Name, n.Count)
		writeTree(w, n.Children, depth+1)
	}
}
