package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced by the canvass pipeline.
var (
	// ErrNoYear indicates a batch whose source identifier does not encode
	// a recognizable election year. Such batches are skipped.
	ErrNoYear = errors.New("no election year in source identifier")

	// ErrNoStatewideRows indicates a batch with no aggregatable statewide
	// rows: none pass the office filter, or every survivor is a Total
	// sentinel or blank-county row. Such batches are skipped.
	ErrNoStatewideRows = errors.New("no aggregatable statewide rows in batch")

	// ErrNoData indicates that processing every batch produced an empty
	// result set: there is nothing to aggregate or export.
	ErrNoData = errors.New("no data to aggregate")

	// ErrInvalidScale indicates that a competitiveness scale failed
	// validation. The classifier degrades to Unknown output rather than
	// failing the run.
	ErrInvalidScale = errors.New("invalid competitiveness scale")
)

// BatchError wraps any failure scoped to a single source batch. Batch
// errors are caught at batch granularity, logged with the source
// identifier, and never escape the pipeline.
type BatchError struct {
	// Source is the identifier of the batch that failed.
	Source string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface for BatchError.
func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As matching.
func (e *BatchError) Unwrap() error { return e.Err }

// NewBatchError creates a BatchError for the given source.
func NewBatchError(source string, err error) *BatchError {
	return &BatchError{Source: source, Err: err}
}

// DataQualityError describes a row-scoped quality problem: one county's
// contribution to one contest could not be aggregated and was dropped
// from that batch. It never aborts the batch.
type DataQualityError struct {
	// County is the normalized county name of the dropped contribution.
	County string

	// Contest is the raw office label of the affected contest.
	Contest string

	// Reason describes what went wrong with the data.
	Reason string
}

// Error implements the error interface for DataQualityError.
func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality: county=%s contest=%s: %s", e.County, e.Contest, e.Reason)
}
