package csvbatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azrealign/canvass/internal/ports"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirectorySource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20221108__az__general__precinct.csv",
		"county,precinct,office,party,candidate,votes\n"+
			"Pima,P-001,Governor,DEM,Katie Hobbs,100\n"+
			"Pima,P-001,Governor,REP,Kari Lake,50\n")
	writeFile(t, dir, "20001107__az__general.csv",
		"county,office,party,votes\n"+
			"Gila,Governor,DEM,10\n")
	writeFile(t, dir, "README.txt", "not a batch")

	source, err := NewDirectorySource(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()

	// Sorted order: the 2000 file first.
	first, err := source.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20001107__az__general.csv", first.SourceID)
	require.Len(t, first.Records, 1)
	assert.Equal(t, "Gila", first.Records[0].County)
	assert.Empty(t, first.Records[0].Candidate, "absent optional column reads as empty")

	second, err := source.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20221108__az__general__precinct.csv", second.SourceID)
	require.Len(t, second.Records, 2)

	rec := second.Records[0]
	assert.Equal(t, "Pima", rec.County)
	assert.Equal(t, "P-001", rec.Precinct)
	assert.Equal(t, "Governor", rec.Office)
	assert.Equal(t, "DEM", rec.Party)
	assert.Equal(t, "Katie Hobbs", rec.Candidate)
	require.True(t, rec.Votes.Valid)
	assert.Equal(t, int64(100), rec.Votes.Value)

	_, err = source.Next(ctx)
	assert.ErrorIs(t, err, ports.ErrNoMoreBatches)
}

func TestDirectorySource_UnparseableVotesSurvive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20201103__az__general.csv",
		"county,office,party,votes\n"+
			"Pima,Governor,DEM,n/a\n")

	source, err := NewDirectorySource(dir, nil)
	require.NoError(t, err)

	batch, err := source.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	assert.False(t, batch.Records[0].Votes.Valid, "coercion failures surface downstream, not here")
}

func TestDirectorySource_BadFileAdvances(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20181106__az__general.csv",
		"precinct,office,votes\nP-001,Governor,10\n") // no county column
	writeFile(t, dir, "20221108__az__general.csv",
		"county,office,party,votes\nPima,Governor,DEM,5\n")

	source, err := NewDirectorySource(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()

	batch, err := source.Next(ctx)
	require.Error(t, err, "file without a county column fails its batch")
	assert.Equal(t, "20181106__az__general.csv", batch.SourceID)

	// The failure does not stall the source.
	batch, err = source.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20221108__az__general.csv", batch.SourceID)

	_, err = source.Next(ctx)
	assert.ErrorIs(t, err, ports.ErrNoMoreBatches)
}

func TestDirectorySource_MissingDirectory(t *testing.T) {
	_, err := NewDirectorySource(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestDirectorySource_ContextCancelled(t *testing.T) {
	source, err := NewDirectorySource(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = source.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
