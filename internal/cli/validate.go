package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/config"
)

// ValidationResult holds the outcome of validating a configuration file.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	Config *config.Config `json:"config,omitempty"`
	Error  string         `json:"error,omitempty"`
	Line   int            `json:"line,omitempty"`
	Column int            `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file and print the effective settings",
		Long: `Validate a CUE configuration file against the built-in schema.

Without an argument the file named by --config is validated. On success
the effective configuration, defaults included, is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Config
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	formatter.VerboseLog("Validating %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		result := ValidationResult{Error: err.Error()}
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) && cfgErr.Pos.IsValid() {
			result.Line = cfgErr.Pos.Line()
			result.Column = cfgErr.Pos.Column()
		}
		if renderErr := formatter.Render(result, func(w io.Writer) error {
			_, werr := fmt.Fprintf(w, "✗ %s\n", result.Error)
			return werr
		}); renderErr != nil {
			return renderErr
		}
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	return formatter.Render(ValidationResult{Valid: true, Config: &cfg}, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ %s is valid\n", path)
		fmt.Fprintf(w, "store\t%s\t%s\n", cfg.Store.Driver, storeTarget(cfg.Store))
		fmt.Fprintf(w, "catalog\tpage size %d\tlocale %s\trecently viewed %d\n",
			cfg.Catalog.PageSize, cfg.Catalog.Locale, cfg.Catalog.RecentlyViewedLimit)
		fmt.Fprintf(w, "orders\tfirst number %d\n", cfg.Orders.FirstNumber)
		return nil
	})
}

func storeTarget(s config.StoreConfig) string {
	switch s.Driver {
	case config.DriverRedis:
		return s.Redis.Addr + " " + s.Redis.Prefix
	case config.DriverMemory:
		return "(in memory)"
	default:
		return s.Path
	}
}
