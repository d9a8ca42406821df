// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"github.com/agnivade/levenshtein"
)

// suggest returns the source form of the table pattern closest to the
// query tokens, or "" when nothing is close enough to be worth
// offering. A pattern literal counts as covered when some query token
// is within a length-scaled edit distance of it; the pattern with the
// highest covered fraction wins.
func (t *Table) suggest(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	best := ""
	bestScore := 0.0
	for _, e := range t.entries {
		lits := e.Pattern.Literals()
		if len(lits) == 0 {
			continue
		}

		covered := 0
		for _, lit := range lits {
			if hasNearToken(lit, tokens) {
				covered++
			}
		}
		score := float64(covered) / float64(len(lits))
		if score > bestScore {
			bestScore = score
			best = e.Pattern.String()
		}
	}

	if bestScore < 0.6 {
		return ""
	}
	return best
}

func hasNearToken(lit string, tokens []string) bool {
	limit := distanceLimit(len(lit))
	for _, tok := range tokens {
		if tok == lit {
			return true
		}
		if levenshtein.ComputeDistance(tok, lit) <= limit {
			return true
		}
	}
	return false
}

// distanceLimit scales the tolerated edit distance with word length so
// short words like "is" are not matched by arbitrary tokens.
func distanceLimit(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}
