package domain

import "math"

// Competitiveness is the classification attached to a county tally:
// a margin band category, the benefiting party, a short machine code
// such as "R_LANDSLIDE", and a display color for map rendering.
type Competitiveness struct {
	// Category is the band name, e.g. "Tossup", "Lean", "Annihilation",
	// or the fallbacks "Unknown" and "No Data".
	Category string `json:"category"`

	// Party is the winning party the category is attributed to.
	// Empty for Tossup and No Data, which carry no party attribution.
	Party string `json:"party,omitempty"`

	// Code is the short machine-readable form, first letter of the party
	// plus the upper-cased category ("D_SWING"). Tossup has no code.
	Code string `json:"code,omitempty"`

	// Color is the hex display color from the threshold table.
	Color string `json:"color"`
}

// CountyTally holds the aggregated result of one contest in one county,
// with all derived metrics and the attached competitiveness
// classification. The synthetic statewide entry uses the same shape under
// the "ARIZONA" key.
type CountyTally struct {
	// County is the upper-cased canonical county name, or "ARIZONA" for
	// the derived statewide entry.
	County string `json:"county"`

	// Contest is the office label: the raw source office name for county
	// entries, the display contest name for the statewide entry.
	Contest string `json:"contest"`

	// Year is the election year as a string, matching the export keying.
	Year string `json:"year"`

	DemCandidate string `json:"dem_candidate"`
	RepCandidate string `json:"rep_candidate"`

	DemVotes   int64 `json:"dem_votes"`
	RepVotes   int64 `json:"rep_votes"`
	OtherVotes int64 `json:"other_votes"`

	// TotalVotes is always DemVotes + RepVotes + OtherVotes.
	TotalVotes int64 `json:"total_votes"`

	// TwoPartyTotal is always DemVotes + RepVotes.
	TwoPartyTotal int64 `json:"two_party_total"`

	// Margin is the absolute vote difference between the two major parties.
	Margin int64 `json:"margin"`

	// MarginPct is Margin / TwoPartyTotal * 100, rounded to two decimals.
	// Zero when there are no two-party votes.
	MarginPct float64 `json:"margin_pct"`

	// Winner is REP iff RepVotes > DemVotes, DEM otherwise, and none when
	// TwoPartyTotal is zero. A true tie goes to DEM under this rule.
	Winner Winner `json:"winner"`

	Competitiveness Competitiveness `json:"competitiveness"`
}

// ComputeDerived fills every derived field of the tally from the three
// party vote buckets: totals, margin, margin percentage, and winner.
// Classification is attached separately by the aggregation layer.
func (t *CountyTally) ComputeDerived() {
	t.TotalVotes = t.DemVotes + t.RepVotes + t.OtherVotes
	t.TwoPartyTotal = t.DemVotes + t.RepVotes

	if t.TwoPartyTotal == 0 {
		t.Margin = 0
		t.MarginPct = 0
		t.Winner = WinnerNone
		return
	}

	t.Margin = t.RepVotes - t.DemVotes
	if t.Margin < 0 {
		t.Margin = -t.Margin
	}
	t.MarginPct = roundPct(float64(t.Margin) / float64(t.TwoPartyTotal) * 100)

	if t.RepVotes > t.DemVotes {
		t.Winner = WinnerRep
	} else {
		t.Winner = WinnerDem
	}
}

// NoDataCompetitiveness is the classification attached to a tally with no
// two-party votes. Such tallies are retained in the county mapping rather
// than dropped.
func NoDataCompetitiveness() Competitiveness {
	return Competitiveness{
		Category: "No Data",
		Code:     "NO_DATA",
		Color:    "#cccccc",
	}
}

// roundPct rounds a percentage to two decimal places.
func roundPct(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// ContestResult holds everything known about one contest: its display
// name and the per-county tallies keyed by upper-cased county name,
// including the synthetic "ARIZONA" entry once statewide recalculation
// has run.
type ContestResult struct {
	ContestName string `json:"contest_name"`

	Results map[string]*CountyTally `json:"results"`
}

// NewContestResult creates an empty ContestResult with the given display
// name.
func NewContestResult(name string) *ContestResult {
	return &ContestResult{
		ContestName: name,
		Results:     make(map[string]*CountyTally),
	}
}
