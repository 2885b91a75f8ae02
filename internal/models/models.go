// Package models defines the core domain types shared across the application.
package models

import (
	"strings"
	"time"
)

// NormalizeSymbol trims surrounding whitespace and uppercases a ticker symbol.
// Symbols are used as keys throughout the system, so every boundary that
// accepts user input runs them through here first.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes a list of symbols, dropping empty entries.
func NormalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeSymbol(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Rule holds the optional price thresholds configured for a symbol.
// Either side may be nil, meaning the corresponding price condition is
// not evaluated for that symbol.
type Rule struct {
	Below *float64 `json:"below,omitempty"`
	Above *float64 `json:"above,omitempty"`
}

// Rules maps a normalized symbol to its configured rule.
type Rules map[string]Rule

// ConditionKind identifies one of the four alert conditions evaluated per symbol.
type ConditionKind string

const (
	// ConditionPriceBelow fires when the current price is at or below the rule's below threshold.
	ConditionPriceBelow ConditionKind = "price_below"
	// ConditionPriceAbove fires when the current price is at or above the rule's above threshold.
	ConditionPriceAbove ConditionKind = "price_above"
	// ConditionPctUp fires when the intraday percent change is at or above the configured threshold.
	ConditionPctUp ConditionKind = "pct_up"
	// ConditionPctDown fires when the intraday percent change is at or below the negated threshold.
	ConditionPctDown ConditionKind = "pct_down"
)

// ConditionKinds lists every condition in evaluation order.
var ConditionKinds = [4]ConditionKind{
	ConditionPriceBelow,
	ConditionPriceAbove,
	ConditionPctUp,
	ConditionPctDown,
}

// ConditionState is the persisted hysteresis state for one (symbol, condition) pair.
// The zero value means "never fired, not previously met", which is exactly the
// state an unknown symbol starts in.
type ConditionState struct {
	LastFiredAt time.Time `json:"last_fired_at,omitempty"`
	WasMet      bool      `json:"was_met,omitempty"`
}

// AlertState is the persisted per-symbol record. It is a fixed record over the
// closed condition set rather than a string-keyed map, so a missing entry can
// never be observed: every condition always has a (possibly zero) state.
type AlertState struct {
	PriceBelow ConditionState `json:"price_below,omitempty"`
	PriceAbove ConditionState `json:"price_above,omitempty"`
	PctUp      ConditionState `json:"pct_up,omitempty"`
	PctDown    ConditionState `json:"pct_down,omitempty"`
}

// Cond returns a pointer to the state slot for the given condition.
func (s *AlertState) Cond(k ConditionKind) *ConditionState {
	switch k {
	case ConditionPriceBelow:
		return &s.PriceBelow
	case ConditionPriceAbove:
		return &s.PriceAbove
	case ConditionPctUp:
		return &s.PctUp
	default:
		return &s.PctDown
	}
}

type snapshotKind int

const (
	snapshotNoPrice snapshotKind = iota
	snapshotPriceOnly
	snapshotPriceWithPrevClose
)

// Snapshot is the per-symbol market reading used by the evaluator. It is a
// tagged alternative: either there is no resolvable current price, a current
// price alone, or a current price together with the previous daily close.
// A previous close can never exist without a current price.
type Snapshot struct {
	kind      snapshotKind
	price     float64
	prevClose float64
}

// NoPrice returns a snapshot with no resolvable current price.
func NoPrice() Snapshot {
	return Snapshot{kind: snapshotNoPrice}
}

// PriceOnly returns a snapshot carrying only a current price.
func PriceOnly(price float64) Snapshot {
	return Snapshot{kind: snapshotPriceOnly, price: price}
}

// PriceWithPrevClose returns a snapshot carrying a current price and the
// previous daily close.
func PriceWithPrevClose(price, prevClose float64) Snapshot {
	return Snapshot{kind: snapshotPriceWithPrevClose, price: price, prevClose: prevClose}
}

// Price returns the current price and whether one is present.
func (s Snapshot) Price() (float64, bool) {
	if s.kind == snapshotNoPrice {
		return 0, false
	}
	return s.price, true
}

// PrevClose returns the previous daily close and whether one is present.
func (s Snapshot) PrevClose() (float64, bool) {
	if s.kind != snapshotPriceWithPrevClose {
		return 0, false
	}
	return s.prevClose, true
}
