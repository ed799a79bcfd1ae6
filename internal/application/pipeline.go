// Package application orchestrates the canvass run: it drives batches
// from a source through normalization, aggregation, and merging, then
// derives the statewide entries and assembles the export document.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/azrealign/canvass/internal/aggregate"
	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/normalize"
	"github.com/azrealign/canvass/internal/ports"
	"github.com/azrealign/canvass/internal/scale"
)

// Pipeline owns one canvass run. It constructs the result set, feeds
// every batch through the aggregator serially, merges per-year output,
// and finishes with the statewide recalculation. The working set is
// owned exclusively by the pipeline for the duration of the run and is
// not safe for concurrent mutation.
//
// Per-batch failures never escape Run: a batch whose year cannot be
// parsed, that has no statewide rows, or whose processing fails is
// logged with its source identifier and skipped.
type Pipeline struct {
	source     ports.BatchSource
	aggregator *aggregate.ContestAggregator
	recalc     *aggregate.StatewideRecalculator
	metrics    ports.MetricsCollector
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewPipeline creates a pipeline over the given batch source and
// classifier. A nil logger falls back to slog.Default and a nil metrics
// collector to a no-op collector.
func NewPipeline(
	source ports.BatchSource,
	classifier *scale.Classifier,
	logger *slog.Logger,
	metrics ports.MetricsCollector,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Pipeline{
		source:     source,
		aggregator: aggregate.NewContestAggregator(classifier, logger),
		recalc:     aggregate.NewStatewideRecalculator(classifier),
		metrics:    metrics,
		logger:     logger,
		tracer:     otel.Tracer("canvass-pipeline"),
	}
}

// Run processes every batch from the source and returns the completed
// result set with statewide entries derived for every contest. It
// returns domain.ErrNoData when no batch contributed any data, and the
// context error when ctx is done.
func (p *Pipeline) Run(ctx context.Context) (*domain.ResultSet, error) {
	rs := domain.NewResultSet()

	for {
		batch, err := p.source.Next(ctx)
		if errors.Is(err, ports.ErrNoMoreBatches) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.skip(batch.SourceID, err)
			continue
		}

		p.processBatch(ctx, rs, batch)
	}

	if rs.Empty() {
		return nil, domain.ErrNoData
	}

	p.recalc.Recalculate(rs)

	p.logger.Info("canvass complete",
		"years", rs.Years(), "contests", rs.Contests())
	p.metrics.RecordGauge("years_covered", float64(len(rs.Years())), nil)

	return rs, nil
}

// processBatch aggregates one batch and merges it into the working set.
// Any failure is contained here.
func (p *Pipeline) processBatch(ctx context.Context, rs *domain.ResultSet, batch ports.RecordBatch) {
	start := time.Now()
	_, span := p.tracer.Start(ctx, "Pipeline.processBatch",
		trace.WithAttributes(
			attribute.String("batch.source", batch.SourceID),
			attribute.Int("batch.rows", len(batch.Records)),
		),
	)
	defer span.End()

	year, ok := normalize.ExtractYear(batch.SourceID)
	if !ok {
		err := domain.NewBatchError(batch.SourceID, domain.ErrNoYear)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.skip(batch.SourceID, err)
		return
	}
	span.SetAttributes(attribute.Int("batch.year", year))

	yd, err := p.aggregator.Aggregate(batch.SourceID, year, batch.Records)
	if err != nil {
		berr := domain.NewBatchError(batch.SourceID, err)
		span.RecordError(berr)
		span.SetStatus(codes.Error, berr.Error())
		p.skip(batch.SourceID, berr)
		return
	}

	rs.SetYear(year, aggregate.MergeYear(rs.Year(year), yd))

	p.logger.Info("aggregated batch",
		"source", batch.SourceID,
		"year", year,
		"contests", yd.Contests(),
		"counties", yd.Counties(),
	)
	p.metrics.RecordCounter("batches_processed", 1, map[string]string{"source": batch.SourceID})
	p.metrics.RecordLatency("process_batch", time.Since(start), nil)
}

func (p *Pipeline) skip(sourceID string, err error) {
	p.logger.Warn("skipping batch", "source", sourceID, "error", err)
	p.metrics.RecordCounter("batches_skipped", 1, map[string]string{"source": sourceID})
}

// noopMetrics discards all measurements.
type noopMetrics struct{}

func (noopMetrics) RecordLatency(string, time.Duration, map[string]string) {}
func (noopMetrics) RecordCounter(string, float64, map[string]string)       {}
func (noopMetrics) RecordGauge(string, float64, map[string]string)         {}
