package alerts

import (
	"context"

	"github.com/rs/zerolog"

	"pricewatch/internal/models"
)

// SnapshotProvider returns the latest market snapshot for a batch of symbols.
// Symbols the provider knows nothing about are absent from the result map.
type SnapshotProvider interface {
	Snapshots(ctx context.Context, symbols []string) (map[string]models.Snapshot, error)
}

// RunOptions selects what an evaluation cycle covers.
type RunOptions struct {
	// Symbols overrides the configured watchlist when non-empty.
	Symbols []string
	// Force fires every met condition regardless of hysteresis and cooldown,
	// and leaves persisted state untouched.
	Force bool
}

// Summary aggregates one evaluation cycle.
type Summary struct {
	OK      bool           `json:"ok"`
	Symbols int            `json:"symbols"`
	Sent    int            `json:"sent"`
	Details []SymbolResult `json:"details"`
}

// Runner drives a full evaluation cycle: one batched snapshot fetch, then a
// sequential per-symbol evaluation, best-effort across symbols.
type Runner struct {
	watchlist []string
	rules     models.Rules
	snapshots SnapshotProvider
	eval      *Evaluator
	log       zerolog.Logger
}

// NewRunner creates a Runner over the configured watchlist and rules.
func NewRunner(watchlist []string, rules models.Rules, sp SnapshotProvider, eval *Evaluator, log zerolog.Logger) *Runner {
	return &Runner{
		watchlist: models.NormalizeSymbols(watchlist),
		rules:     rules,
		snapshots: sp,
		eval:      eval,
		log:       log,
	}
}

// Run executes one evaluation cycle. A snapshot fetch failure aborts the whole
// cycle; any per-symbol failure is recorded in that symbol's detail record and
// processing continues with the next symbol.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	symbols := models.NormalizeSymbols(opts.Symbols)
	if len(symbols) == 0 {
		symbols = r.watchlist
	}

	summary := &Summary{
		OK:      true,
		Symbols: len(symbols),
		Details: make([]SymbolResult, 0, len(symbols)),
	}
	if len(symbols) == 0 {
		return summary, nil
	}

	snaps, err := r.snapshots.Snapshots(ctx, symbols)
	if err != nil {
		return nil, err
	}

	for _, symbol := range symbols {
		snap, ok := snaps[symbol]
		if !ok {
			summary.Details = append(summary.Details, SymbolResult{
				Symbol: symbol,
				Rule:   r.rules[symbol],
				Note:   NoteNoSnapshot,
			})
			continue
		}

		res, err := r.eval.Evaluate(ctx, symbol, r.rules[symbol], snap, opts.Force)
		summary.Sent += len(res.Fired)
		if err != nil {
			res.Note = NoteError
			r.log.Error().Err(err).Str("symbol", symbol).Msg("Symbol evaluation failed")
		}
		summary.Details = append(summary.Details, res)
	}

	r.log.Info().
		Int("symbols", summary.Symbols).
		Int("sent", summary.Sent).
		Bool("force", opts.Force).
		Msg("Evaluation cycle complete")

	return summary, nil
}

// RunScheduled executes one normal-mode cycle over the full watchlist,
// logging instead of returning failures. Used by the interval scheduler.
func (r *Runner) RunScheduled(ctx context.Context) {
	if _, err := r.Run(ctx, RunOptions{}); err != nil {
		r.log.Error().Err(err).Msg("Scheduled evaluation cycle failed")
	}
}
