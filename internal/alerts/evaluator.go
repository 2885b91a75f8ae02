package alerts

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pricewatch/internal/models"
	"pricewatch/internal/notify"
	"pricewatch/internal/store"
)

// Diagnostic notes attached to a symbol's result.
const (
	NoteNoSnapshot = "no snapshot"
	NoteNoPrice    = "no current price"
	NoteError      = "error"
)

// SymbolResult is the per-symbol diagnostic record returned by an evaluation.
type SymbolResult struct {
	Symbol    string                 `json:"symbol"`
	Fired     []models.ConditionKind `json:"fired,omitempty"`
	Price     *float64               `json:"price,omitempty"`
	PrevClose *float64               `json:"prev_close,omitempty"`
	ChangePct *float64               `json:"change_pct,omitempty"`
	Rule      models.Rule            `json:"rule"`
	Note      string                 `json:"note,omitempty"`
}

// Evaluator runs the decision function for one symbol and performs the
// effects: notification delivery and state persistence.
type Evaluator struct {
	store    store.StateStore
	notifier notify.Notifier
	params   Params
	log      zerolog.Logger
	now      func() time.Time
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(st store.StateStore, n notify.Notifier, params Params, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		store:    st,
		notifier: n,
		params:   params,
		log:      log,
		now:      time.Now,
	}
}

// Evaluate processes one symbol: read prior state, decide, deliver any fired
// notifications in order, and persist the next state (normal mode only).
//
// A delivery failure aborts the rest of the symbol's processing; the partial
// result collected so far is returned together with the error, and no state is
// persisted for the symbol in that cycle. Force mode never persists.
func (e *Evaluator) Evaluate(ctx context.Context, symbol string, rule models.Rule, snap models.Snapshot, force bool) (SymbolResult, error) {
	res := SymbolResult{Symbol: symbol, Rule: rule}

	prior, err := e.store.Get(ctx, symbol)
	if err != nil {
		return res, err
	}

	d := Decide(rule, snap, prior, e.params, e.now(), force)
	if !d.HasPrice {
		res.Note = NoteNoPrice
		return res, nil
	}

	res.Price = &d.Price
	res.PrevClose = d.PrevClose
	res.ChangePct = d.ChangePct

	for _, cd := range d.Conditions {
		if !cd.Fire {
			continue
		}
		msg := Message(symbol, cd, d)
		if err := e.notifier.Send(ctx, msg); err != nil {
			return res, err
		}
		res.Fired = append(res.Fired, cd.Kind)
		e.log.Info().
			Str("symbol", symbol).
			Str("condition", string(cd.Kind)).
			Float64("price", d.Price).
			Bool("force", force).
			Msg("Alert notification sent")
	}

	if !force {
		if err := e.store.Put(ctx, symbol, d.Next); err != nil {
			return res, err
		}
	}

	return res, nil
}
