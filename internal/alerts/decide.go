// Package alerts implements the alert evaluation engine: per-symbol,
// per-condition decisions that turn market snapshots into edge-triggered,
// cooldown-gated notifications backed by small persisted state.
package alerts

import (
	"time"

	"pricewatch/internal/models"
)

// Params holds the evaluation parameters shared by every symbol.
type Params struct {
	// PctThreshold is the absolute percent-change threshold for the
	// pct_up / pct_down conditions.
	PctThreshold float64
	// Cooldown is the minimum time between two notifications for the same
	// (symbol, condition).
	Cooldown time.Duration
}

// ConditionDecision is the outcome for a single applicable condition.
type ConditionDecision struct {
	Kind models.ConditionKind
	// Met is the condition's truth value this cycle.
	Met bool
	// Fire reports whether a notification should be delivered.
	Fire bool
	// Threshold is the numeric threshold the condition was compared against
	// (rule price for the price conditions, signed percent for the pct ones).
	Threshold float64
}

// Decision is the pure evaluation result for one symbol. It carries the
// per-condition outcomes and the next persisted state; delivering
// notifications and writing the state are the caller's job.
type Decision struct {
	// HasPrice is false when the snapshot had no resolvable current price.
	// In that case Conditions is empty and Next equals the prior state.
	HasPrice  bool
	Price     float64
	PrevClose *float64
	ChangePct *float64
	// Conditions lists the applicable conditions in evaluation order.
	Conditions []ConditionDecision
	// Next is the updated per-symbol state. Callers persist it only after a
	// normal-mode evaluation completes; force-mode callers discard it.
	Next models.AlertState
}

// Decide evaluates every applicable condition for one symbol.
//
// The per-condition state machine is edge-triggered: a notification fires only
// when a condition transitions from not-met to met, and only if the cooldown
// has elapsed since the last notification for that condition. A rising edge
// that lands inside the cooldown window is consumed: the state still advances
// to met, so no notification is attempted until the condition goes false and
// rises again.
//
// Force mode fires on any met condition, ignoring both the previous state and
// the cooldown. Next is still computed by the normal rules so the function
// stays a single pure transition; force-mode callers simply never persist it.
func Decide(rule models.Rule, snap models.Snapshot, prior models.AlertState, p Params, now time.Time, force bool) Decision {
	d := Decision{Next: prior}

	price, ok := snap.Price()
	if !ok {
		return d
	}
	d.HasPrice = true
	d.Price = price

	if prev, ok := snap.PrevClose(); ok {
		d.PrevClose = &prev
		if prev > 0 {
			pct := (price - prev) / prev * 100
			d.ChangePct = &pct
		}
	}

	for _, kind := range models.ConditionKinds {
		met, threshold, applicable := evalCondition(kind, rule, price, d.ChangePct, p.PctThreshold)
		if !applicable {
			continue
		}

		st := d.Next.Cond(kind)
		fire := false
		if met && !st.WasMet {
			// Rising edge.
			if st.LastFiredAt.IsZero() || now.Sub(st.LastFiredAt) >= p.Cooldown {
				fire = true
				st.LastFiredAt = now
			}
		}
		st.WasMet = met

		if force {
			fire = met
		}

		d.Conditions = append(d.Conditions, ConditionDecision{
			Kind:      kind,
			Met:       met,
			Fire:      fire,
			Threshold: threshold,
		})
	}

	return d
}

// evalCondition computes one condition's truth value. Price conditions are
// applicable only when the corresponding rule threshold is configured; the
// percent conditions are always applicable and read as false when no percent
// change could be derived.
func evalCondition(kind models.ConditionKind, rule models.Rule, price float64, changePct *float64, pctThreshold float64) (met bool, threshold float64, applicable bool) {
	switch kind {
	case models.ConditionPriceBelow:
		if rule.Below == nil {
			return false, 0, false
		}
		return price <= *rule.Below, *rule.Below, true
	case models.ConditionPriceAbove:
		if rule.Above == nil {
			return false, 0, false
		}
		return price >= *rule.Above, *rule.Above, true
	case models.ConditionPctUp:
		return changePct != nil && *changePct >= pctThreshold, pctThreshold, true
	default:
		return changePct != nil && *changePct <= -pctThreshold, -pctThreshold, true
	}
}
