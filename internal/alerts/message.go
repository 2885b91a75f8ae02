package alerts

import (
	"fmt"
	"strings"

	"pricewatch/internal/models"
)

// Message renders the notification text for one fired condition. The wording
// is a presentation detail; it always names the symbol, the condition and the
// numbers that triggered it.
func Message(symbol string, cd ConditionDecision, d Decision) string {
	var sb strings.Builder

	switch cd.Kind {
	case models.ConditionPriceBelow:
		fmt.Fprintf(&sb, "%s price %.2f is at or below threshold %.2f", symbol, d.Price, cd.Threshold)
	case models.ConditionPriceAbove:
		fmt.Fprintf(&sb, "%s price %.2f is at or above threshold %.2f", symbol, d.Price, cd.Threshold)
	case models.ConditionPctUp:
		fmt.Fprintf(&sb, "%s is up %.2f%% on the day (threshold %.2f%%), price %.2f", symbol, *d.ChangePct, cd.Threshold, d.Price)
	case models.ConditionPctDown:
		fmt.Fprintf(&sb, "%s is down %.2f%% on the day (threshold %.2f%%), price %.2f", symbol, -*d.ChangePct, -cd.Threshold, d.Price)
	}

	if d.PrevClose != nil && (cd.Kind == models.ConditionPriceBelow || cd.Kind == models.ConditionPriceAbove) {
		fmt.Fprintf(&sb, " (prev close %.2f", *d.PrevClose)
		if d.ChangePct != nil {
			fmt.Fprintf(&sb, ", %+.2f%%", *d.ChangePct)
		}
		sb.WriteString(")")
	}

	return sb.String()
}
