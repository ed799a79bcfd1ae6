package scale

import (
	"math"
	"strings"

	"github.com/azrealign/canvass/internal/domain"
)

// Classifier turns a margin percentage and a declared winner into a
// competitiveness classification using a loaded threshold table. A
// classifier without a table still produces deterministic Unknown
// output, so a configuration load failure degrades classification
// instead of aborting the run.
type Classifier struct {
	table *Table
}

// NewClassifier creates a Classifier over the given threshold table.
// A nil table yields a degraded classifier.
func NewClassifier(table *Table) *Classifier {
	return &Classifier{table: table}
}

// NewDegraded returns a classifier with no threshold table. Every
// non-tossup classification it produces is the Unknown fallback.
func NewDegraded() *Classifier { return &Classifier{} }

// IsDegraded reports whether the classifier is operating without a
// threshold table.
func (c *Classifier) IsDegraded() bool { return c == nil || c.table == nil }

// Classify returns the competitiveness classification for the given
// margin percentage and winner. Rule order, first match wins:
// margins below the tossup threshold are a Tossup with no party and no
// code; otherwise the winner's band list is scanned with inclusive
// minimum and exclusive maximum, the unbounded final band catching
// everything at or above its minimum. A missing table or a margin no
// band covers yields the Unknown fallback.
func (c *Classifier) Classify(marginPct float64, winner domain.Winner) domain.Competitiveness {
	margin := math.Abs(marginPct)

	if margin < TossupThreshold {
		return domain.Competitiveness{
			Category: TossupCategory,
			Color:    TossupColor,
		}
	}

	if c.IsDegraded() {
		return unknown(winner)
	}

	var bands []Band
	switch winner {
	case domain.WinnerRep:
		bands = c.table.Republican
	case domain.WinnerDem:
		bands = c.table.Democratic
	default:
		return unknown(winner)
	}

	for _, b := range bands {
		if b.Contains(margin) {
			return domain.Competitiveness{
				Category: b.Category,
				Party:    string(winner),
				Code:     code(winner, b.Category),
				Color:    b.Color,
			}
		}
	}
	return unknown(winner)
}

// code builds the short classification code: the first letter of the
// winning party, an underscore, and the upper-cased category.
func code(winner domain.Winner, category string) string {
	return string(winner[0]) + "_" + strings.ToUpper(category)
}

func unknown(winner domain.Winner) domain.Competitiveness {
	return domain.Competitiveness{
		Category: UnknownCategory,
		Party:    string(winner),
		Code:     UnknownCode,
		Color:    UnknownColor,
	}
}
