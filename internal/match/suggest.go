package match

import (
	"cmp"
	"slices"
)

const (
	// DefaultThreshold is the minimum Similarity of a suggestion.
	DefaultThreshold = 0.5
	// DefaultLimit caps the number of suggestions.
	DefaultLimit = 3
)

// Suggest returns up to limit candidates whose Similarity to name is at least
// threshold, best first. Ties keep candidate order. Exact matches are
// excluded.
func Suggest(name string, candidates []string, threshold float64, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= threshold {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}

		out = append(out, r.name)
	}

	return out
}
