// Package rules parses the per-symbol alert rule specification string.
//
// The format is a semicolon-separated list of entries, each of the form
// SYMBOL:below=NUM,above=NUM where either clause may be omitted:
//
//	AAPL:below=170,above=200;TSLA:below=180
package rules

import (
	"math"
	"strconv"
	"strings"

	"pricewatch/internal/models"
)

// Parse converts a rule specification string into per-symbol rules.
//
// Parsing is total: malformed entries, unknown keys and non-finite numbers are
// silently skipped rather than reported. Entries that end up with neither a
// below nor an above clause are dropped. When a symbol appears in more than
// one entry, later clauses overwrite earlier ones key by key.
func Parse(spec string) models.Rules {
	out := models.Rules{}
	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		sym, clauses, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		symbol := models.NormalizeSymbol(sym)
		if symbol == "" {
			continue
		}
		rule := out[symbol]
		touched := false
		for _, kv := range strings.Split(clauses, ",") {
			key, val, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "below":
				v := n
				rule.Below = &v
				touched = true
			case "above":
				v := n
				rule.Above = &v
				touched = true
			}
		}
		if touched || hasRule(rule) {
			out[symbol] = rule
		}
	}
	return out
}

func hasRule(r models.Rule) bool {
	return r.Below != nil || r.Above != nil
}
