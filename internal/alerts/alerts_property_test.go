package alerts

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"pricewatch/internal/models"
)

// Property: stepping the decision function over any sequence of price
// observations, a condition notifies only on rising edges, and at most once
// per continuous true-run.
func TestProperty_EdgeTriggeredFiring(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	threshold := 100.0
	params := Params{PctThreshold: 10, Cooldown: 30 * time.Minute}

	properties.Property("fires only on rising edges, once per true-run", prop.ForAll(
		func(prices []float64) bool {
			state := models.AlertState{}
			now := time.Unix(1_700_000_000, 0)
			prevMet := false
			firedThisRun := false

			for i, price := range prices {
				at := now.Add(time.Duration(i) * time.Minute)
				d := Decide(models.Rule{Below: &threshold}, models.PriceOnly(price), state, params, at, false)

				var cd ConditionDecision
				for _, c := range d.Conditions {
					if c.Kind == models.ConditionPriceBelow {
						cd = c
					}
				}

				if cd.Met != (price <= threshold) {
					return false
				}
				if cd.Fire {
					// A notification implies a rising edge and no earlier
					// notification in this continuous true-run.
					if prevMet || firedThisRun {
						return false
					}
					firedThisRun = true
				}
				if !cd.Met {
					firedThisRun = false
				}
				prevMet = cd.Met
				state = d.Next
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(50, 150)),
	))

	properties.Property("force mode decides the same next state as normal mode", prop.ForAll(
		func(price float64, wasMet bool, minutesSinceFire int) bool {
			now := time.Unix(1_700_000_000, 0)
			prior := models.AlertState{
				PriceBelow: models.ConditionState{
					WasMet:      wasMet,
					LastFiredAt: now.Add(-time.Duration(minutesSinceFire) * time.Minute),
				},
			}

			normal := Decide(models.Rule{Below: &threshold}, models.PriceOnly(price), prior, params, now, false)
			forced := Decide(models.Rule{Below: &threshold}, models.PriceOnly(price), prior, params, now, true)

			// The transition itself is mode-independent; only firing differs.
			return normal.Next == forced.Next
		},
		gen.Float64Range(50, 150),
		gen.Bool(),
		gen.IntRange(0, 120),
	))

	properties.TestingRun(t)
}
