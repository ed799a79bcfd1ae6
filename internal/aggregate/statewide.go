package aggregate

import (
	"sort"

	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/scale"
)

// StatewideRecalculator derives the synthetic whole-state entry for
// every contest by summing all real county entries and reclassifying the
// result. It runs once per pipeline, after all batches are merged, and
// may run again safely: any pre-existing statewide entry is excluded
// from the sums and overwritten, never double-counted.
type StatewideRecalculator struct {
	classifier *scale.Classifier
}

// NewStatewideRecalculator creates a recalculator using the given
// classifier for the derived entries.
func NewStatewideRecalculator(classifier *scale.Classifier) *StatewideRecalculator {
	return &StatewideRecalculator{classifier: classifier}
}

// Recalculate writes or overwrites the statewide entry of every contest
// in the result set. Vote totals are the sums over every non-statewide
// county entry; the margin, winner, and classification are re-derived
// from those sums. Candidate names are taken from the first county in
// sorted key order as a best-effort label.
func (r *StatewideRecalculator) Recalculate(rs *domain.ResultSet) {
	rs.EachContest(func(year string, _ domain.OfficeCategory, _ string, cr *domain.ContestResult) {
		r.recalculateContest(year, cr)
	})
}

func (r *StatewideRecalculator) recalculateContest(year string, cr *domain.ContestResult) {
	var dem, rep, other int64

	counties := make([]string, 0, len(cr.Results))
	for county, tally := range cr.Results {
		if county == domain.StatewideKey {
			continue
		}
		counties = append(counties, county)
		dem += tally.DemVotes
		rep += tally.RepVotes
		other += tally.OtherVotes
	}
	sort.Strings(counties)

	demCandidate, repCandidate := unknownCandidate, unknownCandidate
	if len(counties) > 0 {
		first := cr.Results[counties[0]]
		demCandidate = first.DemCandidate
		repCandidate = first.RepCandidate
	}

	// The statewide entry carries the display contest name, unlike the
	// county entries which keep the raw office label.
	tally := &domain.CountyTally{
		County:       domain.StatewideKey,
		Contest:      cr.ContestName,
		Year:         year,
		DemCandidate: demCandidate,
		RepCandidate: repCandidate,
		DemVotes:     dem,
		RepVotes:     rep,
		OtherVotes:   other,
	}
	tally.ComputeDerived()

	if tally.TwoPartyTotal == 0 {
		tally.Competitiveness = domain.NoDataCompetitiveness()
	} else {
		tally.Competitiveness = r.classifier.Classify(tally.MarginPct, tally.Winner)
	}

	cr.Results[domain.StatewideKey] = tally
}
