// Command canvass aggregates Arizona general election precinct exports
// into per-county statewide contest results and writes the nested
// results-by-year JSON document.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/azrealign/canvass/infrastructure/csvbatch"
	"github.com/azrealign/canvass/infrastructure/jsonexport"
	"github.com/azrealign/canvass/infrastructure/metrics"
	"github.com/azrealign/canvass/internal/application"
	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/scale"
)

func main() {
	var (
		dataDir   = flag.String("data", "data", "directory of precinct-level CSV exports")
		scalePath = flag.String("scale", "config/competitiveness_scale.yaml", "competitiveness scale config")
		outPath   = flag.String("out", "results_by_year.json", "output JSON file")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger, *dataDir, *scalePath, *outPath); err != nil {
		logger.Error("canvass failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dataDir, scalePath, outPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier := loadClassifier(logger, scalePath)

	source, err := csvbatch.NewDirectorySource(dataDir, logger)
	if err != nil {
		return fmt.Errorf("opening data directory: %w", err)
	}

	pipeline := application.NewPipeline(source, classifier, logger, metrics.NewPrometheusMetrics())

	rs, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return fmt.Errorf("no usable batches in %s: %w", dataDir, err)
		}
		return err
	}

	writer := jsonexport.NewFileWriter(outPath)
	if err := writer.Write(ctx, rs.Export()); err != nil {
		return err
	}

	logger.Info("wrote results", "path", outPath, "years", rs.Years())
	return nil
}

// loadClassifier loads the competitiveness scale, falling back to the
// degraded classifier when the config cannot be loaded. A missing or
// invalid scale downgrades every classification to Unknown rather than
// failing the run.
func loadClassifier(logger *slog.Logger, path string) *scale.Classifier {
	table, err := scale.NewLoader().LoadFromFile(path)
	if err != nil {
		logger.Warn("competitiveness scale unavailable, classifications degraded",
			"path", path, "error", err)
		return scale.NewDegraded()
	}
	return scale.NewClassifier(table)
}
