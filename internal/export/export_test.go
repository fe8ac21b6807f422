package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/fgaudit/internal/logging"
	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

func sampleResults() []fgaudit.ScanResult {
	return []fgaudit.ScanResult{
		{
			ScanID: uuid.New(),
			Module: "audittest.4gm",
			Root:   "/work/audittest.4gm",
			Records: []fgaudit.FileRecord{
				{
					AbsPath: "/work/audittest.4gm/orders.4gl", RelPath: "orders.4gl",
					Parent: ".", Name: "orders.4gl", Ext: ".4gl",
					SizeBytes: 42, ModTime: "2024-05-17T09:30:00Z",
					ChangeTime: "2024-05-17T09:30:00Z", AccessTime: "2024-05-17T09:31:00Z",
					ModeOctal: "0644", UID: 1000, GID: 1000,
					Content: fgaudit.ContentStats{TotalLines: 10, BlankLines: 2, CommentLines: 3, FunctionDefs: 1},
					Repo:    fgaudit.RepoStatus{Tracked: true},
					Module:  "audittest.4gm",
				},
				{
					AbsPath: "/work/audittest.4gm/data.bin", RelPath: "data.bin",
					Parent: ".", Name: "data.bin", Ext: ".bin",
					SizeBytes: 3, ModTime: "2024-05-17T09:30:00Z",
					ChangeTime: "2024-05-17T09:30:00Z", AccessTime: "2024-05-17T09:31:00Z",
					ModeOctal: "0600", UID: 1000, GID: 1000,
					Module: "audittest.4gm",
				},
			},
		},
		{
			ScanID: uuid.New(),
			Module: "orders.4gm",
			Root:   "/work/orders.4gm",
			Records: []fgaudit.FileRecord{
				{
					AbsPath: "/work/orders.4gm/report.4gl", RelPath: "report.4gl",
					Parent: ".", Name: "report.4gl", Ext: ".4gl",
					SizeBytes: 7, ModTime: "2024-05-17T09:30:00Z",
					ChangeTime: "2024-05-17T09:30:00Z", AccessTime: "2024-05-17T09:31:00Z",
					ModeOctal: "0644", UID: 1000, GID: 1000,
					Module: "orders.4gm",
				},
			},
		},
	}
}

func TestWrite_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")

	written, err := Write(path, sampleResults(), logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three records")

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "orders.4gl", rows[1][3])
	assert.Equal(t, "10", rows[1][12])
	assert.Equal(t, "true", rows[1][20])
	assert.Equal(t, "audittest.4gm", rows[2][23])
	assert.Equal(t, "orders.4gm", rows[3][23])
}

func TestWrite_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.parquet")

	written, err := Write(path, sampleResults(), logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	rows, err := parquet.ReadFile[row](path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "orders.4gl", rows[0].Name)
	assert.Equal(t, int32(10), rows[0].TotalLines)
	assert.True(t, rows[0].Tracked)
	assert.Equal(t, "orders.4gm", rows[2].Module)
}

func TestWrite_PqSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.pq")

	written, err := Write(path, sampleResults(), logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	rows, err := parquet.ReadFile[row](path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWrite_ExportFailed(t *testing.T) {
	// Both the parquet write and the CSV fallback land in a missing
	// directory, so the whole export fails with the sentinel.
	path := filepath.Join(t.TempDir(), "missing", "audit.parquet")

	_, err := Write(path, sampleResults(), logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fgaudit.ErrExportFailed))
}

func TestWrite_CSVFailed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "audit.csv")

	_, err := Write(path, sampleResults(), logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fgaudit.ErrExportFailed))
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	written, err := Write(path, nil, logging.NewNullLogger())
	require.NoError(t, err)

	f, err := os.Open(written)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
