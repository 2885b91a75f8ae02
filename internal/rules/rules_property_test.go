package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Parse is total over arbitrary input, produces normalized symbol
// keys, and every returned rule carries at least one threshold.
func TestProperty_ParseTotalAndNormalized(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary strings never panic and yield normalized rules", prop.ForAll(
		func(spec string) bool {
			got := Parse(spec)
			for sym, r := range got {
				if sym != strings.ToUpper(strings.TrimSpace(sym)) || sym == "" {
					return false
				}
				if r.Below == nil && r.Above == nil {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("well-formed entries round-trip their thresholds", prop.ForAll(
		func(below, above float64) bool {
			spec := fmt.Sprintf("AAPL:below=%v,above=%v", below, above)
			got := Parse(spec)
			r, ok := got["AAPL"]
			if !ok || r.Below == nil || r.Above == nil {
				return false
			}
			return *r.Below == below && *r.Above == above
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}
