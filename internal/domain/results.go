package domain

import (
	"sort"
	"strconv"
)

// OfficeCategory is the fixed enumeration of statewide office groupings
// used as the first level of nesting under each year.
type OfficeCategory string

// The statewide office categories. CategoryOther catches contests that
// pass the statewide predicate but match no specific category keyword.
const (
	CategoryPresidential          OfficeCategory = "presidential"
	CategoryUSSenate              OfficeCategory = "us_senate"
	CategoryGovernor              OfficeCategory = "governor"
	CategorySecretaryOfState      OfficeCategory = "secretary_of_state"
	CategoryAttorneyGeneral       OfficeCategory = "attorney_general"
	CategoryTreasurer             OfficeCategory = "treasurer"
	CategorySuperintendent        OfficeCategory = "superintendent"
	CategoryMineInspector         OfficeCategory = "mine_inspector"
	CategoryCorporationCommission OfficeCategory = "corporation_commission"
	CategoryOther                 OfficeCategory = "other"
)

// StatewideKey is the county-map key of the synthetic whole-state entry.
// It is always a derived view over the real county entries, never an
// independently sourced value.
const StatewideKey = "ARIZONA"

// YearData is the aggregation output for one election year: contest
// results keyed by office category, then by contest key
// (office slug + "_" + year).
type YearData map[OfficeCategory]map[string]*ContestResult

// Contests returns the total number of contests across all categories.
func (yd YearData) Contests() int {
	n := 0
	for _, contests := range yd {
		n += len(contests)
	}
	return n
}

// Counties returns the number of distinct county keys across all
// contests, counting the statewide entry if present.
func (yd YearData) Counties() int {
	seen := make(map[string]struct{})
	for _, contests := range yd {
		for _, cr := range contests {
			for county := range cr.Results {
				seen[county] = struct{}{}
			}
		}
	}
	return len(seen)
}

// ResultSet is the owned working aggregate for one pipeline run: the
// year-keyed nested result structure built incrementally as batches are
// merged. It is constructed by the pipeline, mutated only through merge
// and statewide recalculation, and discarded after export.
type ResultSet struct {
	years map[string]YearData
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{years: make(map[string]YearData)}
}

// Year returns the YearData for the given election year, or nil when the
// year has no data.
func (rs *ResultSet) Year(year int) YearData {
	return rs.years[strconv.Itoa(year)]
}

// SetYear stores the YearData for the given election year.
func (rs *ResultSet) SetYear(year int, yd YearData) {
	rs.years[strconv.Itoa(year)] = yd
}

// Empty reports whether no year holds any data.
func (rs *ResultSet) Empty() bool { return len(rs.years) == 0 }

// Years returns the covered election years in ascending order.
func (rs *ResultSet) Years() []string {
	years := make([]string, 0, len(rs.years))
	for y := range rs.years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Contests returns the total contest count across all years.
func (rs *ResultSet) Contests() int {
	n := 0
	for _, yd := range rs.years {
		n += yd.Contests()
	}
	return n
}

// EachContest invokes fn for every contest in the set. Years and
// categories are visited in sorted order so that passes over the set are
// deterministic.
func (rs *ResultSet) EachContest(fn func(year string, cat OfficeCategory, key string, cr *ContestResult)) {
	for _, year := range rs.Years() {
		yd := rs.years[year]

		cats := make([]string, 0, len(yd))
		for cat := range yd {
			cats = append(cats, string(cat))
		}
		sort.Strings(cats)

		for _, cat := range cats {
			contests := yd[OfficeCategory(cat)]
			keys := make([]string, 0, len(contests))
			for k := range contests {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fn(year, OfficeCategory(cat), k, contests[k])
			}
		}
	}
}

// Export is the serialization envelope for a completed run.
type Export struct {
	ResultsByYear map[string]YearData `json:"results_by_year"`
}

// Export returns the serialization view of the result set. The returned
// structure shares the underlying contest data; it is meant to be
// marshaled and then discarded along with the set itself.
func (rs *ResultSet) Export() *Export {
	return &Export{ResultsByYear: rs.years}
}
