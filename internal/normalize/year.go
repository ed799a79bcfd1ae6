package normalize

import (
	"regexp"
	"strconv"
)

// sourceYearRe matches the structured source identifiers used by the
// election data drops, e.g. "20221108__az__general__precinct.csv". The
// leading four digits are the election year.
var sourceYearRe = regexp.MustCompile(`^(\d{4})\d{4}__az__general`)

// ExtractYear parses the election year from a batch source identifier.
// It returns false when the identifier does not follow the expected
// pattern, signaling that the batch must be skipped.
func ExtractYear(sourceID string) (int, bool) {
	m := sourceYearRe.FindStringSubmatch(sourceID)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}
