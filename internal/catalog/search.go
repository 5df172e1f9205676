package catalog

import (
	"strings"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// Search returns the subset of countries whose name or capital contains
// query as a case-insensitive substring, in the order they appear in
// countries. An empty query returns countries unchanged.
//
// The query is used verbatim: no trimming, tokenization or ranking.
func Search(countries []model.Country, query string) []model.Country {
	if query == "" {
		return countries
	}

	needle := strings.ToLower(query)
	matches := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		if containsFold(c.Name, needle) || containsFold(c.Capital, needle) {
			matches = append(matches, c)
		}
	}
	return matches
}

// containsFold reports whether s contains the already lower-cased needle.
func containsFold(s, lowerNeedle string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
