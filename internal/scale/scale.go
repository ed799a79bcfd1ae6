// Package scale holds the competitiveness scale: the ordered margin bands
// per party loaded once from configuration, and the classifier that maps
// a margin percentage and winner onto a band.
package scale

import "fmt"

// Classification constants that do not come from the threshold table.
const (
	// TossupThreshold is the margin percentage below which a contest is a
	// tossup regardless of the winning party.
	TossupThreshold = 0.5

	// TossupCategory is the band-independent tossup label. A tossup
	// carries no party attribution and no code.
	TossupCategory = "Tossup"

	// TossupColor is the fixed display color for tossups.
	TossupColor = "#f7f7f7"

	// UnknownCategory is the fallback label when no band matches or the
	// threshold table failed to load.
	UnknownCategory = "Unknown"

	// UnknownCode is the fallback classification code.
	UnknownCode = "UNKNOWN"

	// UnknownColor is the neutral fallback display color.
	UnknownColor = "#cccccc"
)

// Band is one margin band of a party's competitiveness scale. The
// minimum is inclusive and the maximum exclusive; the final band of a
// list omits the maximum and matches any margin at or above its minimum.
type Band struct {
	// Category is the band's display name, e.g. "Swing" or "Annihilation".
	Category string `yaml:"category" json:"category" validate:"required,min=1"`

	// Color is the hex display color for counties in this band.
	Color string `yaml:"color" json:"color" validate:"required,hexcolor"`

	// ThresholdMin is the inclusive lower margin bound in percent.
	ThresholdMin float64 `yaml:"threshold_min" json:"threshold_min" validate:"min=0,max=100"`

	// ThresholdMax is the exclusive upper margin bound in percent.
	// Nil marks the unbounded final band.
	ThresholdMax *float64 `yaml:"threshold_max,omitempty" json:"threshold_max,omitempty" validate:"omitempty,min=0,max=100"`
}

// Contains reports whether the margin percentage falls in this band.
func (b Band) Contains(marginPct float64) bool {
	if marginPct < b.ThresholdMin {
		return false
	}
	return b.ThresholdMax == nil || marginPct < *b.ThresholdMax
}

// Table is the full competitiveness scale: one ordered band list per
// major party. The document keys match the configuration file, which
// capitalizes the party names.
type Table struct {
	Republican []Band `yaml:"Republican" json:"Republican" validate:"required,min=1,dive"`
	Democratic []Band `yaml:"Democratic" json:"Democratic" validate:"required,min=1,dive"`
}

// Validate performs the semantic checks struct tags cannot express:
// each band list must be ordered by ascending minimum, and only the
// final band may omit its upper bound.
func (t *Table) Validate() error {
	for party, bands := range map[string][]Band{
		"Republican": t.Republican,
		"Democratic": t.Democratic,
	} {
		for i, b := range bands {
			if i > 0 && b.ThresholdMin < bands[i-1].ThresholdMin {
				return fmt.Errorf("%s band %q: threshold_min %.2f out of order", party, b.Category, b.ThresholdMin)
			}
			if b.ThresholdMax == nil {
				if i != len(bands)-1 {
					return fmt.Errorf("%s band %q: only the final band may be unbounded", party, b.Category)
				}
				continue
			}
			if *b.ThresholdMax <= b.ThresholdMin {
				return fmt.Errorf("%s band %q: threshold_max %.2f not above threshold_min %.2f",
					party, b.Category, *b.ThresholdMax, b.ThresholdMin)
			}
		}
	}
	return nil
}
