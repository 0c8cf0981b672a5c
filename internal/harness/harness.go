package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/ident"
	"github.com/roach88/poolstore/internal/shop"
	"github.com/roach88/poolstore/internal/state"
	"github.com/roach88/poolstore/internal/store"
	"github.com/roach88/poolstore/internal/testutil"
)

var errStoreUnavailable = errors.New("store unavailable")

// Harness is the scenario execution engine.
// It runs scenarios against a shop.Service backed by an in-memory store,
// with a stepping clock and sequential IDs.
type Harness struct {
	kv       *store.Memory
	svc      *shop.Service
	clock    *testutil.StepClock
	ids      *ident.Sequence
	products []catalog.Product
	logger   *slog.Logger
	seq      int64
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger for the harness and the service under test.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory store for isolation.
//
// Execution flow:
// 1. Create fresh store and service with the scenario catalog
// 2. Execute setup steps; any failure aborts the run
// 3. Execute flow steps, checking each expect clause
// 4. Evaluate assertions against the trace and the store
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	products, err := scenario.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	h := &Harness{
		kv:       store.NewMemory(),
		clock:    testutil.NewStepClock(testutil.Epoch, time.Minute),
		ids:      ident.NewSequence("copy"),
		products: products,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}

	ctx := context.Background()
	h.boot(ctx)

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	h.executeFlow(ctx, scenario.Flow, result)

	if err := h.captureState(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// boot builds a fresh state over the harness store and hydrates it.
func (h *Harness) boot(ctx context.Context) {
	st := state.New(h.kv, h.logger, state.Defaults{Products: h.products})
	st.Hydrate(ctx)
	h.svc = shop.New(st,
		shop.WithClock(h.clock),
		shop.WithIDs(h.ids),
		shop.WithLogger(h.logger),
		shop.WithRecentlyViewedLimit(4),
	)
}

func (h *Harness) next() int64 {
	h.seq++
	return h.seq
}

// invoke runs one action and records it in the trace.
func (h *Harness) invoke(ctx context.Context, name string, raw map[string]any, result *Result) (string, map[string]any, error) {
	result.AddInvocationTrace(name, raw, h.next())

	out, err := actions[name](ctx, h, args(raw))
	outcome := outputCase(err)
	if err != nil {
		out = map[string]any{"error": err.Error()}
	}
	result.AddCompletionTrace(outcome, out, h.next())
	return outcome, out, err
}

// executeSetup runs all setup steps. Setup steps must succeed.
func (h *Harness) executeSetup(ctx context.Context, setup []ActionStep, result *Result) error {
	for i, step := range setup {
		if _, _, err := h.invoke(ctx, step.Action, step.Args, result); err != nil {
			return fmt.Errorf("setup step %d (%s): %w", i, step.Action, err)
		}
		h.logger.Debug("setup step completed", "step", i, "action", step.Action)
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
// A step without an expect clause must succeed.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) {
	for i, step := range flow {
		outcome, out, _ := h.invoke(ctx, step.Invoke, step.Args, result)

		expected := CaseSuccess
		if step.Expect != nil {
			expected = step.Expect.Case
		}
		if outcome != expected {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected case %s, got %s (%v)",
				i, step.Invoke, expected, outcome, out))
			continue
		}
		if step.Expect != nil && step.Expect.Result != nil && !matchArgs(out, step.Expect.Result) {
			result.AddError(fmt.Sprintf("flow[%d] %s: result %v does not match %v",
				i, step.Invoke, out, step.Expect.Result))
		}

		h.logger.Debug("flow step completed",
			"step", i,
			"action", step.Invoke,
			"output_case", outcome,
		)
	}
}

// captureState decodes every stored collection into result.State.
func (h *Harness) captureState(ctx context.Context, result *Result) error {
	keys, err := h.kv.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		raw, _ := h.kv.Raw(k)
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("decode %s: %w", k, err)
		}
		result.State[k] = v
	}
	return nil
}
