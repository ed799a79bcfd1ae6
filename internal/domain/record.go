// Package domain contains pure, dependency-free domain models and types
// for the canvass engine.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Party codes for the two major parties as they appear in source data.
// Any other party code contributes to the "other" vote bucket.
const (
	PartyDem = "DEM"
	PartyRep = "REP"
)

// Winner identifies which major party carried a contest in a county.
// The zero value means no winner could be determined (no two-party votes).
type Winner string

// Winner values produced by tally derivation.
const (
	WinnerNone Winner = ""
	WinnerDem  Winner = "DEM"
	WinnerRep  Winner = "REP"
)

// MarshalJSON serializes the absent winner as JSON null rather than an
// empty string, the shape downstream consumers of the export expect.
func (w Winner) MarshalJSON() ([]byte, error) {
	if w == WinnerNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(w))
}

// RawRecord is one precinct-level result row as delivered by a batch
// source: one county x office x party observation. Fields are free-text
// as found in the source; normalization happens downstream.
type RawRecord struct {
	// County is the free-text county name column. For one historical
	// batch it carries the literal sentinel "Arizona" and the real county
	// lives in Precinct instead.
	County string

	// Office is the free-text contest name, e.g. "Attorney General".
	Office string

	// Party is the party code, possibly empty or a minor-party code.
	Party string

	// Candidate is the candidate name when the source provides one.
	Candidate string

	// Precinct is the precinct identifier, used as a county fallback for
	// the one source year that mislabels its county column.
	Precinct string

	// Votes is the best-effort parsed vote count for this row.
	Votes VoteCount
}

// VoteCount is the result of a fallible numeric parse of a vote column.
// An invalid count aggregates as zero; callers decide whether to warn.
type VoteCount struct {
	// Value is the parsed non-negative vote count, zero when invalid.
	Value int64

	// Valid reports whether the source text parsed as a usable number.
	Valid bool
}

// Votes constructs a valid VoteCount from an already-numeric value.
func Votes(n int64) VoteCount { return VoteCount{Value: n, Valid: true} }

// ParseVotes coerces a raw vote string into a VoteCount. Integer text is
// preferred; decimal text is truncated toward zero to match how upstream
// exports sometimes render counts as floats. Blank, non-numeric, or
// negative input yields an invalid count with a zero value.
func ParseVotes(raw string) VoteCount {
	s := strings.TrimSpace(raw)
	// Thousands separators show up in a handful of source files.
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return VoteCount{}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return VoteCount{}
		}
		return VoteCount{Value: n, Valid: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return VoteCount{}
	}
	return VoteCount{Value: int64(f), Valid: true}
}
