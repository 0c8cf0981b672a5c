package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/config"
	"github.com/roach88/poolstore/internal/seed"
	"github.com/roach88/poolstore/internal/shop"
	"github.com/roach88/poolstore/internal/state"
	"github.com/roach88/poolstore/internal/store"
)

// session is one command's view of the shop: the configured store,
// hydrated collections and the service over them.
type session struct {
	cfg    config.Config
	kv     store.KV
	state  *state.State
	svc    *shop.Service
	logger *slog.Logger
	out    *OutputFormatter
	closer io.Closer
}

// newLogger writes text logs to w; verbose lowers the level to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.configSet {
		return config.Load(opts.Config)
	}
	return config.LoadOrDefault(opts.Config)
}

// openStore opens the durable store named by cfg. The returned closer is
// nil for stores without resources.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.KV, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return store.NewMemory(), nil, nil
	case config.DriverRedis:
		r, err := store.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case config.DriverSQLite, "":
		s, err := store.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	logger.Debug("opening store", "driver", cfg.Store.Driver, "path", cfg.Store.Path)

	kv, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	defaults, err := seed.Defaults()
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, WrapExitError(ExitCommandError, "failed to load seed data", err)
	}

	st := state.New(kv, logger, defaults)
	st.Hydrate(ctx)

	svc := shop.New(st,
		shop.WithLogger(logger),
		shop.WithPageSize(cfg.Catalog.PageSize),
		shop.WithLocale(cfg.Catalog.Locale),
		shop.WithRecentlyViewedLimit(cfg.Catalog.RecentlyViewedLimit),
		shop.WithFirstOrderNumber(cfg.Orders.FirstNumber),
	)

	return &session{
		cfg:    cfg,
		kv:     kv,
		state:  st,
		svc:    svc,
		logger: logger,
		out:    opts.formatter(cmd),
		closer: closer,
	}, nil
}

// unsaved reports collections whose latest write did not reach the store.
func (s *session) unsaved() error {
	errs := s.svc.PersistErrors()
	if len(errs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	joined := make([]error, len(keys))
	for i, k := range keys {
		joined[i] = errs[k]
	}
	return WrapExitError(ExitFailure,
		fmt.Sprintf("changes to %s were not saved", strings.Join(keys, ", ")),
		errors.Join(joined...))
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// withSession opens a session, runs fn and reports unsaved changes.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("error closing store", "error", err)
		}
	}()

	if err := fn(ctx, s); err != nil {
		return err
	}
	return s.unsaved()
}
