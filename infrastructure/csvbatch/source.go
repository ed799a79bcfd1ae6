// Package csvbatch reads election result batches from a directory of
// CSV files, one or more per election year. Each file becomes one
// RecordBatch whose source identifier is the file name.
package csvbatch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/azrealign/canvass/internal/domain"
	"github.com/azrealign/canvass/internal/ports"
)

var _ ports.BatchSource = (*DirectorySource)(nil)

// Recognized column names, matched case-insensitively against the CSV
// header. County, office, and votes are required; the rest are optional.
const (
	colCounty    = "county"
	colOffice    = "office"
	colParty     = "party"
	colCandidate = "candidate"
	colVotes     = "votes"
	colPrecinct  = "precinct"
)

// DirectorySource yields one batch per CSV file in a directory, in
// sorted file-name order. A file that fails to read or parse is
// reported as that batch's error and the source advances, so the
// pipeline can skip it and continue.
type DirectorySource struct {
	paths  []string
	idx    int
	logger *slog.Logger
}

// NewDirectorySource creates a source over every .csv file directly in
// dir. A nil logger falls back to slog.Default.
func NewDirectorySource(dir string, logger *slog.Logger) (*DirectorySource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return &DirectorySource{paths: paths, logger: logger}, nil
}

// Next returns the next file as a batch. It returns ErrNoMoreBatches
// once every file has been attempted, and the context error if ctx is
// done. A per-file failure is returned with the batch's source
// identifier set; the following call moves on to the next file.
func (s *DirectorySource) Next(ctx context.Context) (ports.RecordBatch, error) {
	if err := ctx.Err(); err != nil {
		return ports.RecordBatch{}, err
	}
	if s.idx >= len(s.paths) {
		return ports.RecordBatch{}, ports.ErrNoMoreBatches
	}

	path := s.paths[s.idx]
	s.idx++

	sourceID := filepath.Base(path)
	records, err := readFile(path)
	if err != nil {
		return ports.RecordBatch{SourceID: sourceID}, fmt.Errorf("reading %s: %w", sourceID, err)
	}

	s.logger.Debug("read batch file", "source", sourceID, "rows", len(records))
	return ports.RecordBatch{SourceID: sourceID, Records: records}, nil
}

func readFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Source years disagree on column counts; tolerate ragged rows.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colCounty, colOffice, colVotes} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		records = append(records, domain.RawRecord{
			County:    field(row, cols, colCounty),
			Office:    field(row, cols, colOffice),
			Party:     field(row, cols, colParty),
			Candidate: field(row, cols, colCandidate),
			Precinct:  field(row, cols, colPrecinct),
			Votes:     domain.ParseVotes(field(row, cols, colVotes)),
		})
	}
	return records, nil
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
