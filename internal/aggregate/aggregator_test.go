package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/scale"
)

func fpt(f float64) *float64 { return &f }

func testClassifier() *scale.Classifier {
	return scale.NewClassifier(&scale.Table{
		Republican: []scale.Band{
			{Category: "Swing", Color: "#fcbba1", ThresholdMin: 0.5, ThresholdMax: fpt(10)},
			{Category: "Likely", Color: "#fb6a4a", ThresholdMin: 10, ThresholdMax: fpt(40)},
			{Category: "Annihilation", Color: "#a50f15", ThresholdMin: 40},
		},
		Democratic: []scale.Band{
			{Category: "Swing", Color: "#c6dbef", ThresholdMin: 0.5, ThresholdMax: fpt(10)},
			{Category: "Likely", Color: "#6baed6", ThresholdMin: 10, ThresholdMax: fpt(40)},
			{Category: "Annihilation", Color: "#08519c", ThresholdMin: 40},
		},
	})
}

func rec(county, office, party, votes, candidate string) domain.RawRecord {
	return domain.RawRecord{
		County:    county,
		Office:    office,
		Party:     party,
		Candidate: candidate,
		Votes:     domain.ParseVotes(votes),
	}
}

func TestContestAggregator_Aggregate(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	records := []domain.RawRecord{
		// Two precinct rows per party sum into one county tally.
		rec("Pima", "Governor", "DEM", "60", "Katie Hobbs"),
		rec("Pima County", "Governor", "DEM", "40", "Katie Hobbs"),
		rec("Pima", "Governor", "REP", "50", "Kari Lake"),
		rec("Pima", "Governor", "LBT", "10", ""),
		// Pre-computed statewide row must be excluded.
		rec("Total", "Governor", "DEM", "9999", ""),
		// Non-statewide contests are filtered out entirely.
		rec("Pima", "County Sheriff", "DEM", "123", ""),
	}

	yd, err := agg.Aggregate("20221108__az__general.csv", 2022, records)
	require.NoError(t, err)

	contests := yd[domain.CategoryGovernor]
	require.NotNil(t, contests)
	cr := contests["governor_2022"]
	require.NotNil(t, cr)
	assert.Equal(t, "Governor", cr.ContestName)
	require.Len(t, cr.Results, 1, "only Pima should be present")

	tally := cr.Results["PIMA"]
	require.NotNil(t, tally, "county keys are upper-cased")
	assert.Equal(t, "PIMA", tally.County)
	assert.Equal(t, "Governor", tally.Contest)
	assert.Equal(t, "2022", tally.Year)
	assert.Equal(t, "Katie Hobbs", tally.DemCandidate)
	assert.Equal(t, "Kari Lake", tally.RepCandidate)
	assert.Equal(t, int64(100), tally.DemVotes)
	assert.Equal(t, int64(50), tally.RepVotes)
	assert.Equal(t, int64(10), tally.OtherVotes)
	assert.Equal(t, int64(160), tally.TotalVotes)
	assert.Equal(t, int64(150), tally.TwoPartyTotal)
	assert.Equal(t, int64(50), tally.Margin)
	assert.InDelta(t, 33.33, tally.MarginPct, 1e-9)
	assert.Equal(t, domain.WinnerDem, tally.Winner)
	assert.Equal(t, "Likely", tally.Competitiveness.Category)
	assert.Equal(t, "D_LIKELY", tally.Competitiveness.Code)
}

func TestContestAggregator_NoStatewideRows(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	_, err := agg.Aggregate("src", 2022, []domain.RawRecord{
		rec("Pima", "County Sheriff", "DEM", "10", ""),
		rec("Pima", "State Representative District 3", "REP", "20", ""),
	})
	assert.ErrorIs(t, err, domain.ErrNoStatewideRows)
}

func TestContestAggregator_OnlyTotalRows(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	// Statewide offices, but every row is the pre-computed Total sentinel
	// or has no county at all. Nothing survives the county filter.
	_, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Total", "Governor", "DEM", "9999", ""),
		rec("TOTAL", "Governor", "REP", "8888", ""),
		rec("", "Governor", "DEM", "10", ""),
	})
	assert.ErrorIs(t, err, domain.ErrNoStatewideRows)
}

func TestContestAggregator_MissingCandidateNames(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Gila", "Governor", "DEM", "10", ""),
		rec("Gila", "Governor", "REP", "40", ""),
	})
	require.NoError(t, err)

	tally := yd[domain.CategoryGovernor]["governor_2020"].Results["GILA"]
	require.NotNil(t, tally)
	assert.Equal(t, "Unknown", tally.DemCandidate)
	assert.Equal(t, "Unknown", tally.RepCandidate)
}

func TestContestAggregator_InvalidVotesAggregateAsZero(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Yuma", "Governor", "DEM", "100", ""),
		rec("Yuma", "Governor", "DEM", "n/a", ""),
		rec("Yuma", "Governor", "REP", "60", ""),
	})
	require.NoError(t, err)

	tally := yd[domain.CategoryGovernor]["governor_2020"].Results["YUMA"]
	require.NotNil(t, tally)
	assert.Equal(t, int64(100), tally.DemVotes, "unparseable row contributes zero")
	assert.Equal(t, int64(60), tally.RepVotes)
}

func TestContestAggregator_WhollyUnparseableCountyDropped(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Yuma", "Governor", "DEM", "corrupt", ""),
		rec("Yuma", "Governor", "REP", "corrupt", ""),
		rec("Pima", "Governor", "DEM", "10", ""),
		rec("Pima", "Governor", "REP", "5", ""),
	})
	require.NoError(t, err)

	results := yd[domain.CategoryGovernor]["governor_2020"].Results
	assert.NotContains(t, results, "YUMA", "county with no parseable votes is dropped")
	assert.Contains(t, results, "PIMA", "drop is scoped to the bad county")
}

func TestContestAggregator_NoDataCounty(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Greenlee", "Governor", "GRN", "45", ""),
	})
	require.NoError(t, err)

	tally := yd[domain.CategoryGovernor]["governor_2020"].Results["GREENLEE"]
	require.NotNil(t, tally, "all-other county is retained, not dropped")
	assert.Equal(t, int64(0), tally.TwoPartyTotal)
	assert.Equal(t, int64(45), tally.OtherVotes)
	assert.Equal(t, domain.WinnerNone, tally.Winner)
	assert.Equal(t, "No Data", tally.Competitiveness.Category)
	assert.Equal(t, "NO_DATA", tally.Competitiveness.Code)
}

func TestContestAggregator_PrecinctCountyFallback(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	records := []domain.RawRecord{
		{County: "Arizona", Precinct: "Pima", Office: "Governor", Party: "DEM", Votes: domain.Votes(30)},
		{County: "Arizona", Precinct: "Pima", Office: "Governor", Party: "REP", Votes: domain.Votes(20)},
	}

	yd, err := agg.Aggregate("20181106__az__general__precinct.csv", 2018, records)
	require.NoError(t, err)

	results := yd[domain.CategoryGovernor]["governor_2018"].Results
	assert.Contains(t, results, "PIMA", "county identity comes from the precinct column in 2018")
	assert.NotContains(t, results, "ARIZONA")
}

func TestContestAggregator_DegradedClassifier(t *testing.T) {
	agg := NewContestAggregator(scale.NewDegraded(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Pima", "Governor", "DEM", "100", ""),
		rec("Pima", "Governor", "REP", "50", ""),
	})
	require.NoError(t, err)

	tally := yd[domain.CategoryGovernor]["governor_2020"].Results["PIMA"]
	require.NotNil(t, tally)
	assert.Equal(t, "Unknown", tally.Competitiveness.Category)
	assert.Equal(t, "UNKNOWN", tally.Competitiveness.Code)
	assert.Equal(t, "#cccccc", tally.Competitiveness.Color)
}

func TestContestAggregator_DisplayNames(t *testing.T) {
	agg := NewContestAggregator(testClassifier(), nil)

	yd, err := agg.Aggregate("src", 2020, []domain.RawRecord{
		rec("Pima", "President and Vice President of the United States", "DEM", "10", ""),
		rec("Pima", "President and Vice President of the United States", "REP", "20", ""),
	})
	require.NoError(t, err)

	contests := yd[domain.CategoryPresidential]
	require.Len(t, contests, 1)
	for key, cr := range contests {
		assert.Equal(t, "president_and_vice_president_of_the_united_states_2020", key)
		assert.Equal(t, "US President", cr.ContestName)
	}
}
