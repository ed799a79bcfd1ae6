package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azrealign/canvass/internal/domain"
)

func yearDataWith(county string, dem, rep int64) domain.YearData {
	cr := domain.NewContestResult("Governor")
	tally := &domain.CountyTally{
		County: county, Contest: "Governor", Year: "2020",
		DemVotes: dem, RepVotes: rep,
	}
	tally.ComputeDerived()
	cr.Results[county] = tally

	return domain.YearData{
		domain.CategoryGovernor: {"governor_2020": cr},
	}
}

func TestMergeYear_NilExistingAdoptsIncoming(t *testing.T) {
	incoming := yearDataWith("PIMA", 100, 50)
	merged := MergeYear(nil, incoming)
	assert.Equal(t, incoming, merged)
}

func TestMergeYear_NonDestructive(t *testing.T) {
	merged := MergeYear(yearDataWith("PIMA", 100, 50), yearDataWith("GILA", 10, 40))

	results := merged[domain.CategoryGovernor]["governor_2020"].Results
	require.Len(t, results, 2, "disjoint county sets union")
	assert.Equal(t, int64(100), results["PIMA"].DemVotes)
	assert.Equal(t, int64(10), results["GILA"].DemVotes)
}

func TestMergeYear_OverlappingCountyOverwrites(t *testing.T) {
	merged := MergeYear(yearDataWith("PIMA", 100, 50), yearDataWith("PIMA", 120, 60))

	results := merged[domain.CategoryGovernor]["governor_2020"].Results
	require.Len(t, results, 1)
	assert.Equal(t, int64(120), results["PIMA"].DemVotes, "last-applied batch wins")
}

func TestMergeYear_Idempotent(t *testing.T) {
	base := yearDataWith("PIMA", 100, 50)
	once := MergeYear(nil, base)
	twice := MergeYear(once, yearDataWith("PIMA", 100, 50))

	results := twice[domain.CategoryGovernor]["governor_2020"].Results
	require.Len(t, results, 1)
	assert.Equal(t, int64(100), results["PIMA"].DemVotes)
	assert.Equal(t, int64(50), results["PIMA"].RepVotes)
}

func TestMergeYear_AdoptsNewCategoriesAndContests(t *testing.T) {
	existing := yearDataWith("PIMA", 100, 50)

	sen := domain.NewContestResult("US Senate")
	sen.Results["PIMA"] = &domain.CountyTally{County: "PIMA", DemVotes: 7}
	incoming := domain.YearData{
		domain.CategoryUSSenate: {"us_senate_2020": sen},
		domain.CategoryGovernor: {
			"recall_governor_2020": domain.NewContestResult("Recall Governor"),
		},
	}

	merged := MergeYear(existing, incoming)

	assert.Contains(t, merged, domain.CategoryUSSenate, "new category adopted wholesale")
	assert.Contains(t, merged[domain.CategoryGovernor], "recall_governor_2020",
		"new contest adopted into existing category")
	assert.Contains(t, merged[domain.CategoryGovernor], "governor_2020",
		"existing contest preserved")
}
