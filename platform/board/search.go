package board

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestMatch returns the index of the term closest to query. A term is a
// candidate when the query fuzzily matches it at all; candidates are ranked
// by edit distance and the first registered wins ties. Deliberately best
// effort, not exact matching.
func BestMatch(query string, terms []string) (int, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, false
	}

	best := -1
	bestRank := 0
	for i, term := range terms {
		rank := fuzzy.RankMatchNormalizedFold(query, term)
		if rank < 0 {
			continue
		}
		if best == -1 || rank < bestRank {
			best = i
			bestRank = rank
		}
	}

	if best == -1 {
		return 0, false
	}
	return best, true
}
