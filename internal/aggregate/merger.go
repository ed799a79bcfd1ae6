package aggregate

import "github.com/azrealign/canvass/internal/domain"

// MergeYear combines aggregation output from two batches belonging to
// the same election year. Office categories or contests present only in
// incoming are adopted wholesale; for a contest present in both, the
// county mappings are unioned, with incoming overwriting existing on
// overlapping county keys and counties known only to existing preserved
// untouched. This lets a year arrive split across several files or be
// reprocessed without destroying unrelated counties.
//
// The last-applied batch wins on overlapping keys, so merge order
// matters for conflicting submissions. That ordering dependency is
// intentional and documented; callers that need conflict detection must
// layer it on top.
//
// existing is mutated and returned; a nil existing adopts incoming.
func MergeYear(existing, incoming domain.YearData) domain.YearData {
	if existing == nil {
		return incoming
	}

	for category, contests := range incoming {
		if existing[category] == nil {
			existing[category] = contests
			continue
		}
		for key, contest := range contests {
			current, ok := existing[category][key]
			if !ok {
				existing[category][key] = contest
				continue
			}
			for county, tally := range contest.Results {
				current.Results[county] = tally
			}
		}
	}
	return existing
}
