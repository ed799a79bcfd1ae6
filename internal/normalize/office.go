package normalize

import (
	"fmt"
	"strings"

	"github.com/azrealign/canvass/internal/domain"
)

// statewideKeywords is the fixed list of office-name fragments that mark
// a contest as statewide. Any office matching none of them is excluded
// before aggregation; this is a hard filter, not a classification.
var statewideKeywords = []string{
	"president", "presidential",
	"u.s. senate", "us senate", "united states senator", "u.s. senator", "senator",
	"governor",
	"secretary of state",
	"attorney general",
	"treasurer",
	"superintendent of public instruction", "superintendent",
	"state mine inspector", "mine inspector",
	"corporation commission", "corporation commissioner",
}

// categoryRule maps office-name keywords to an office category. Rules are
// evaluated in order and the first match wins, so more specific contests
// (president before senate) must come first.
type categoryRule struct {
	category domain.OfficeCategory
	keywords []string
}

var categoryRules = []categoryRule{
	{domain.CategoryPresidential, []string{"president"}},
	{domain.CategoryUSSenate, []string{"senate", "senator"}},
	{domain.CategoryGovernor, []string{"governor"}},
	{domain.CategorySecretaryOfState, []string{"secretary of state"}},
	{domain.CategoryAttorneyGeneral, []string{"attorney general"}},
	{domain.CategoryTreasurer, []string{"treasurer"}},
	{domain.CategorySuperintendent, []string{"superintendent"}},
	{domain.CategoryMineInspector, []string{"mine inspector"}},
	{domain.CategoryCorporationCommission, []string{"corporation commission"}},
}

// IsStatewideOffice reports whether the raw office name refers to a
// statewide Arizona contest, by case-insensitive substring match against
// the fixed keyword list.
func IsStatewideOffice(office string) bool {
	lower := strings.ToLower(strings.TrimSpace(office))
	if lower == "" {
		return false
	}
	for _, kw := range statewideKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// OfficeCategoryOf returns the office category for a raw office name via
// first-match lookup in the ordered rule table, defaulting to
// CategoryOther.
func OfficeCategoryOf(office string) domain.OfficeCategory {
	lower := strings.ToLower(office)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

// ContestKey builds the stable contest identifier for an office and year:
// the lower-cased office with spaces as underscores and punctuation
// stripped, suffixed with the year.
func ContestKey(office string, year int) string {
	slug := strings.ToLower(office)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, ".", "")
	slug = strings.ReplaceAll(slug, ",", "")
	return fmt.Sprintf("%s_%d", slug, year)
}

// DisplayName returns the display label for a contest, collapsing the
// presidential and U.S. Senate naming variants that differ across source
// years. Other offices keep their raw label.
func DisplayName(office string) string {
	lower := strings.ToLower(office)

	if lower == "president" || lower == "president and vice president of the united states" {
		return "US President"
	}
	if strings.Contains(lower, "u.s. senate") || strings.Contains(lower, "us senate") || lower == "senator" {
		return "US Senate"
	}
	return office
}
