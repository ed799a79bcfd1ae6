// Package normalize canonicalizes the heterogeneous naming found in raw
// election batches: county names, office names and categories, and the
// election year encoded in source identifiers.
package normalize

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/azrealign/canvass/internal/domain"
)

// TotalSentinel is the canonical form of a pre-computed statewide row in
// the source data. It is not a 16th county and must be excluded before
// aggregation.
const TotalSentinel = "Total"

// precinctCountyFallbackYear is the one source year whose county column
// holds the literal sentinel "Arizona" while the real county name is
// encoded in the precinct column.
const precinctCountyFallbackYear = 2018

// countyNames are the fifteen Arizona counties in their canonical form.
var countyNames = []string{
	"Apache", "Cochise", "Coconino", "Gila", "Graham", "Greenlee",
	"La Paz", "Maricopa", "Mohave", "Navajo", "Pima", "Pinal",
	"Santa Cruz", "Yavapai", "Yuma",
}

var (
	countySuffixRe = regexp.MustCompile(`(?i)\s+county$`)
	laPazRe        = regexp.MustCompile(`(?i)la\s*paz`)

	// titleCaser lowercases then title-cases each word, collapsing the
	// case variants seen across source years ("LA PAZ", "la paz County").
	titleCaser = cases.Title(language.AmericanEnglish)

	canonicalSet = func() map[string]struct{} {
		set := make(map[string]struct{}, len(countyNames))
		for _, c := range countyNames {
			set[c] = struct{}{}
		}
		return set
	}()
)

// maxCountyEditDistance bounds how far a spelling may drift from a
// canonical county name and still be snapped to it.
const maxCountyEditDistance = 2

// Counties returns the canonical Arizona county names.
func Counties() []string {
	out := make([]string, len(countyNames))
	copy(out, countyNames)
	return out
}

// IsCanonicalCounty reports whether name is one of the fifteen canonical
// county names.
func IsCanonicalCounty(name string) bool {
	_, ok := canonicalSet[name]
	return ok
}

// County normalizes a raw county name: trims whitespace, strips a
// trailing "County" suffix, standardizes La Paz spacing, and title-cases
// the result. Near-miss spellings within a small edit distance of a
// canonical county are snapped to it. Returns false for blank input.
func County(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}

	name = countySuffixRe.ReplaceAllString(name, "")
	name = laPazRe.ReplaceAllString(name, "La Paz")
	name = titleCaser.String(name)

	if IsCanonicalCounty(name) || name == TotalSentinel {
		return name, true
	}

	if snapped, ok := closestCounty(name); ok {
		return snapped, true
	}
	return name, true
}

// closestCounty returns the canonical county within the edit-distance
// bound of name, preferring the smallest distance. Exact matches never
// reach here.
func closestCounty(name string) (string, bool) {
	best := ""
	bestDist := maxCountyEditDistance + 1
	for _, c := range countyNames {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// FixupCountyColumn substitutes the precinct column as the county source
// for the one historical year whose county column carries the "Arizona"
// sentinel. This is a documented one-off data-quality accommodation, not
// a general rule. Records are modified in place.
func FixupCountyColumn(year int, records []domain.RawRecord) {
	if year != precinctCountyFallbackYear || len(records) == 0 {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(records[0].County), "Arizona") {
		return
	}
	for i := range records {
		if records[i].Precinct != "" {
			records[i].County = records[i].Precinct
		}
	}
}
