// Package ports defines the core interfaces that form the contract
// between the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system
// testable.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/azrealign/canvass/internal/domain"
)

// ErrNoMoreBatches is returned by BatchSource.Next when every batch has
// been consumed.
var ErrNoMoreBatches = errors.New("no more batches")

// RecordBatch is one source batch of raw precinct rows. The source
// identifier carries the structured filename that encodes the election
// year.
type RecordBatch struct {
	// SourceID identifies the batch, e.g. its file name.
	SourceID string

	// Records are the raw rows of the batch.
	Records []domain.RawRecord
}

// BatchSource yields result batches one at a time in a stable order.
// Implementations must advance past a failing batch: an error return
// other than ErrNoMoreBatches describes the batch just attempted, and
// the next call proceeds with the following batch. This lets the
// pipeline skip broken files without stalling.
type BatchSource interface {
	// Next returns the next batch. It returns ErrNoMoreBatches once the
	// source is exhausted, and the context error if ctx is done.
	Next(ctx context.Context) (RecordBatch, error)
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations should integrate with observability
// platforms like Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)
}

// ResultWriter persists the export document of a completed run.
type ResultWriter interface {
	Write(ctx context.Context, export *domain.Export) error
}
