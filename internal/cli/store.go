package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/poolstore/internal/store"
)

// KeyStatus describes one store key.
type KeyStatus struct {
	Key    string `json:"key"`
	Stored bool   `json:"stored"`
	Status string `json:"status"`
	Bytes  int    `json:"bytes"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write every collection to the store",
		Long: `Write every collection to the store.

Keys that were never written receive the built-in demo data; keys that
already hold a value are rewritten unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				if err := s.state.Flush(ctx); err != nil {
					return WrapExitError(ExitFailure, "failed to seed store", err)
				}
				n := len(s.state.Collections())
				return s.out.Render(map[string]int{"written": n}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Wrote %d collection(s)\n", n)
					return err
				})
			})
		},
	}
}

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the durable store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List every known key and its sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				keys, err := keyStatuses(ctx, s)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read store", err)
				}
				return s.out.Render(keys, func(w io.Writer) error {
					for _, k := range keys {
						stored := "-"
						if k.Stored {
							stored = fmt.Sprintf("%d bytes", k.Bytes)
						}
						fmt.Fprintf(w, "%s\t%s\t%s\n", k.Key, k.Status, stored)
					}
					return nil
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump <key>",
		Short: "Print the stored value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !store.IsKnownKey(key) {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown key %q", key))
			}
			return withSession(cmd, rootOpts, func(ctx context.Context, s *session) error {
				raw, found, err := s.kv.Get(ctx, key)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read store", err)
				}
				if !found {
					return NewExitError(ExitFailure, fmt.Sprintf("key %q has never been written", key))
				}
				var v any
				if err := json.Unmarshal([]byte(raw), &v); err != nil {
					return WrapExitError(ExitFailure, fmt.Sprintf("key %q holds invalid JSON", key), err)
				}
				return s.out.Render(v, func(w io.Writer) error {
					enc := json.NewEncoder(w)
					enc.SetEscapeHTML(false)
					enc.SetIndent("", "  ")
					return enc.Encode(v)
				})
			})
		},
	})

	return cmd
}

func keyStatuses(ctx context.Context, s *session) ([]KeyStatus, error) {
	status := make(map[string]string)
	for _, c := range s.state.Collections() {
		status[c.Key()] = c.Status().String()
	}

	out := make([]KeyStatus, 0, len(store.Keys))
	for _, key := range store.Keys {
		raw, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, KeyStatus{Key: key, Stored: found, Status: status[key], Bytes: len(raw)})
	}
	return out, nil
}
