package cli

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// suggestCountry returns the country whose name or capital is closest to
// query by edit distance, for a "did you mean" hint after a search with no
// results. Close enough means at most one edit per three query characters,
// and never less than one. Ties keep catalog order.
func suggestCountry(countries []model.Country, query string) (model.Country, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return model.Country{}, false
	}

	maxDist := len([]rune(q)) / 3
	if maxDist < 1 {
		maxDist = 1
	}

	best, bestDist := -1, maxDist+1
	for i, c := range countries {
		for _, candidate := range []string{c.Name, c.Capital} {
			if candidate == "" {
				continue
			}
			d := levenshtein.ComputeDistance(q, strings.ToLower(candidate))
			if d < bestDist {
				best, bestDist = i, d
			}
		}
	}

	if best < 0 {
		return model.Country{}, false
	}
	return countries[best], true
}
