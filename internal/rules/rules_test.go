package rules

import (
	"testing"

	"pricewatch/internal/models"
)

func fp(v float64) *float64 { return &v }

func ruleEqual(a, b models.Rule) bool {
	eq := func(x, y *float64) bool {
		if (x == nil) != (y == nil) {
			return false
		}
		return x == nil || *x == *y
	}
	return eq(a.Below, b.Below) && eq(a.Above, b.Above)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want models.Rules
	}{
		{
			name: "two symbols",
			spec: "AAPL:below=170,above=200;TSLA:below=180",
			want: models.Rules{
				"AAPL": {Below: fp(170), Above: fp(200)},
				"TSLA": {Below: fp(180)},
			},
		},
		{
			name: "empty string",
			spec: "",
			want: models.Rules{},
		},
		{
			name: "whitespace and case normalized",
			spec: " aapl : below=150 ",
			want: models.Rules{"AAPL": {Below: fp(150)}},
		},
		{
			name: "entry without clauses dropped",
			spec: "AAPL;TSLA:;MSFT:above=400",
			want: models.Rules{"MSFT": {Above: fp(400)}},
		},
		{
			name: "unknown keys ignored",
			spec: "AAPL:volume=100,below=170",
			want: models.Rules{"AAPL": {Below: fp(170)}},
		},
		{
			name: "non-finite values skipped",
			spec: "AAPL:below=NaN,above=Inf;TSLA:below=180",
			want: models.Rules{"TSLA": {Below: fp(180)}},
		},
		{
			name: "malformed number skipped",
			spec: "AAPL:below=abc,above=200",
			want: models.Rules{"AAPL": {Above: fp(200)}},
		},
		{
			name: "later entry overwrites per key",
			spec: "AAPL:below=170,above=200;AAPL:below=160",
			want: models.Rules{"AAPL": {Below: fp(160), Above: fp(200)}},
		},
		{
			name: "later entry keeps other key",
			spec: "AAPL:above=200;AAPL:below=150",
			want: models.Rules{"AAPL": {Below: fp(150), Above: fp(200)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.spec)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v symbols, want %v", tt.spec, len(got), len(tt.want))
			}
			for sym, want := range tt.want {
				r, ok := got[sym]
				if !ok {
					t.Fatalf("Parse(%q): missing symbol %s", tt.spec, sym)
				}
				if !ruleEqual(r, want) {
					t.Errorf("Parse(%q)[%s] = %+v, want %+v", tt.spec, sym, r, want)
				}
			}
		})
	}
}
