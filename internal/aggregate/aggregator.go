// Package aggregate implements the core of the canvass engine: rolling
// precinct-level rows up into per-county contest tallies, merging partial
// batches for the same year, and deriving the synthetic statewide entry.
package aggregate

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/normalize"
	"github.com/azrealign/canvass/internal/scale"
)

// unknownCandidate labels a party column whose candidate name never
// appeared in the source batch.
const unknownCandidate = "Unknown"

// ContestAggregator turns one source batch of raw precinct rows into
// county-level contest results for a known election year. It is
// stateless across batches; every call builds a fresh YearData.
type ContestAggregator struct {
	classifier *scale.Classifier
	logger     *slog.Logger
}

// NewContestAggregator creates an aggregator that classifies tallies
// with the given classifier. A nil logger falls back to slog.Default.
func NewContestAggregator(classifier *scale.Classifier, logger *slog.Logger) *ContestAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContestAggregator{classifier: classifier, logger: logger}
}

// groupKey identifies one (county, office, party) vote sum within a
// batch. County is the normalized county name; office and party are the
// raw source strings.
type groupKey struct {
	county string
	office string
	party  string
}

// coverage tracks how many rows fed a (county, office) pair and how many
// of them failed vote coercion, so wholly-unparseable pairs can be
// dropped as data-quality events.
type coverage struct {
	rows    int
	invalid int
}

// Aggregate filters the batch to statewide-office rows, applies the
// historical county-column fixup, groups rows by county, office, and
// party, and builds one ContestResult per contest with fully derived and
// classified county tallies. Pre-computed "Total" rows are excluded, and
// unparseable vote values aggregate as zero with a logged warning.
// Returns ErrNoStatewideRows when nothing survives the office filter or
// when every surviving row is excluded by the county filter.
func (a *ContestAggregator) Aggregate(sourceID string, year int, records []domain.RawRecord) (domain.YearData, error) {
	statewide := records[:0:0]
	for _, rec := range records {
		if normalize.IsStatewideOffice(rec.Office) {
			statewide = append(statewide, rec)
		}
	}
	if len(statewide) == 0 {
		return nil, domain.ErrNoStatewideRows
	}

	normalize.FixupCountyColumn(year, statewide)

	sums := make(map[groupKey]int64)
	cover := make(map[groupKey]*coverage)
	candidates := make(map[groupKey]string)
	countiesByOffice := make(map[string]map[string]struct{})

	invalidVotes := 0
	for _, rec := range statewide {
		county, ok := normalize.County(rec.County)
		if !ok || county == normalize.TotalSentinel {
			continue
		}

		key := groupKey{county: county, office: rec.Office, party: rec.Party}
		sums[key] += rec.Votes.Value

		pair := groupKey{county: county, office: rec.Office}
		cv := cover[pair]
		if cv == nil {
			cv = &coverage{}
			cover[pair] = cv
		}
		cv.rows++
		if !rec.Votes.Valid {
			cv.invalid++
			invalidVotes++
		}

		// First-seen candidate name per (office, party).
		if rec.Candidate != "" {
			ck := groupKey{office: rec.Office, party: rec.Party}
			if _, seen := candidates[ck]; !seen {
				candidates[ck] = rec.Candidate
			}
		}

		if countiesByOffice[rec.Office] == nil {
			countiesByOffice[rec.Office] = make(map[string]struct{})
		}
		countiesByOffice[rec.Office][county] = struct{}{}
	}

	if invalidVotes > 0 {
		a.logger.Warn("unparseable vote values treated as zero",
			"source", sourceID, "rows", invalidVotes)
	}

	// Every row was a pre-computed Total or carried a blank county: the
	// batch has nothing to contribute and must be skipped, not stored as
	// an empty year.
	if len(countiesByOffice) == 0 {
		return nil, domain.ErrNoStatewideRows
	}

	yd := make(domain.YearData)
	for office, counties := range countiesByOffice {
		category := normalize.OfficeCategoryOf(office)
		contestKey := normalize.ContestKey(office, year)

		if yd[category] == nil {
			yd[category] = make(map[string]*domain.ContestResult)
		}
		cr := yd[category][contestKey]
		if cr == nil {
			cr = domain.NewContestResult(normalize.DisplayName(office))
			yd[category][contestKey] = cr
		}

		for county := range counties {
			cv := cover[groupKey{county: county, office: office}]
			if cv != nil && cv.rows > 0 && cv.invalid == cv.rows {
				dqe := &domain.DataQualityError{
					County:  county,
					Contest: office,
					Reason:  fmt.Sprintf("all %d vote values unparseable", cv.rows),
				}
				a.logger.Warn("dropping county contribution",
					"source", sourceID, "error", dqe)
				continue
			}

			tally := a.buildTally(sums, candidates, county, office, year)
			cr.Results[tally.County] = tally
		}
	}

	return yd, nil
}

// buildTally sums the party buckets for one county and office, derives
// the totals, margin, and winner, and attaches the classification. A
// county with no two-party votes gets a No Data tally with no winner and
// is retained rather than dropped.
func (a *ContestAggregator) buildTally(
	sums map[groupKey]int64,
	candidates map[groupKey]string,
	county, office string,
	year int,
) *domain.CountyTally {
	var dem, rep, other int64
	for key, votes := range sums {
		if key.county != county || key.office != office {
			continue
		}
		switch key.party {
		case domain.PartyDem:
			dem += votes
		case domain.PartyRep:
			rep += votes
		default:
			other += votes
		}
	}

	tally := &domain.CountyTally{
		County:       strings.ToUpper(county),
		Contest:      office,
		Year:         strconv.Itoa(year),
		DemCandidate: candidateFor(candidates, office, domain.PartyDem),
		RepCandidate: candidateFor(candidates, office, domain.PartyRep),
		DemVotes:     dem,
		RepVotes:     rep,
		OtherVotes:   other,
	}
	tally.ComputeDerived()

	if tally.TwoPartyTotal == 0 {
		tally.Competitiveness = domain.NoDataCompetitiveness()
	} else {
		tally.Competitiveness = a.classifier.Classify(tally.MarginPct, tally.Winner)
	}
	return tally
}

func candidateFor(candidates map[groupKey]string, office, party string) string {
	if name, ok := candidates[groupKey{office: office, party: party}]; ok {
		return name
	}
	return unknownCandidate
}
