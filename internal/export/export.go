// Package export persists the combined audit table to a columnar or
// delimited file.
//
// A .parquet/.pq suffix selects Parquet; any other suffix writes CSV. A
// failed Parquet write falls back to CSV next to the requested path rather
// than aborting.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

// row is the flat export schema: one audit table row.
type row struct {
	AbsPath      string `parquet:"abs_path"`
	RelPath      string `parquet:"rel_path"`
	Parent       string `parquet:"parent"`
	Name         string `parquet:"name"`
	Suffix       string `parquet:"suffix"`
	SizeBytes    int64  `parquet:"size_bytes"`
	MTime        string `parquet:"mtime"`
	CTime        string `parquet:"ctime"`
	ATime        string `parquet:"atime"`
	ModeOctal    string `parquet:"mode_octal"`
	UID          uint32 `parquet:"uid"`
	GID          uint32 `parquet:"gid"`
	TotalLines   int32  `parquet:"total_lines"`
	BlankLines   int32  `parquet:"blank_lines"`
	CommentLines int32  `parquet:"comment_lines"`
	FunctionDefs int32  `parquet:"function_defs"`
	PrepareStmts int32  `parquet:"prepare_stmts"`
	ExecuteStmts int32  `parquet:"execute_stmts"`
	RunStmts     int32  `parquet:"run_stmts"`
	CallStmts    int32  `parquet:"call_stmts"`
	Tracked      bool   `parquet:"tracked"`
	Modified     bool   `parquet:"modified"`
	Staged       bool   `parquet:"staged"`
	Module       string `parquet:"module"`
	ScanID       string `parquet:"scan_id"`
}

func toRow(r fgaudit.FileRecord, scanID string) row {
	return row{
		AbsPath:      r.AbsPath,
		RelPath:      r.RelPath,
		Parent:       r.Parent,
		Name:         r.Name,
		Suffix:       r.Ext,
		SizeBytes:    r.SizeBytes,
		MTime:        r.ModTime,
		CTime:        r.ChangeTime,
		ATime:        r.AccessTime,
		ModeOctal:    r.ModeOctal,
		UID:          r.UID,
		GID:          r.GID,
		TotalLines:   int32(r.Content.TotalLines),
		BlankLines:   int32(r.Content.BlankLines),
		CommentLines: int32(r.Content.CommentLines),
		FunctionDefs: int32(r.Content.FunctionDefs),
		PrepareStmts: int32(r.Content.PrepareStmts),
		ExecuteStmts: int32(r.Content.ExecuteStmts),
		RunStmts:     int32(r.Content.RunStmts),
		CallStmts:    int32(r.Content.CallStmts),
		Tracked:      r.Repo.Tracked,
		Modified:     r.Repo.Modified,
		Staged:       r.Repo.Staged,
		Module:       r.Module,
		ScanID:       scanID,
	}
}

// Write concatenates the per-root results and writes them to path. It
// returns the path actually written, which differs from the request when
// the Parquet write failed and the CSV fallback was taken.
func Write(path string, results []fgaudit.ScanResult, logger fgaudit.Logger) (string, error) {
	var rows []row
	for _, res := range results {
		scanID := res.ScanID.String()
		for _, r := range res.Records {
			rows = append(rows, toRow(r, scanID))
		}
	}

	suffix := strings.ToLower(filepath.Ext(path))
	if suffix == ".parquet" || suffix == ".pq" {
		err := writeParquet(path, rows)
		if err == nil {
			return path, nil
		}
		logger.Error("failed to write Parquet: %v", err)
		logger.Error("falling back to CSV")
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if csvErr := writeCSV(csvPath, rows); csvErr != nil {
			return "", fmt.Errorf("CSV fallback after Parquet failure: %v: %w", csvErr, fgaudit.ErrExportFailed)
		}
		return csvPath, nil
	}

	if err := writeCSV(path, rows); err != nil {
		return "", fmt.Errorf("%v: %w", err, fgaudit.ErrExportFailed)
	}
	return path, nil
}

func writeParquet(path string, rows []row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := parquet.NewGenericWriter[row](f)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// csvHeader matches the parquet column names and order.
var csvHeader = []string{
	"abs_path", "rel_path", "parent", "name", "suffix",
	"size_bytes", "mtime", "ctime", "atime", "mode_octal", "uid", "gid",
	"total_lines", "blank_lines", "comment_lines",
	"function_defs", "prepare_stmts", "execute_stmts", "run_stmts", "call_stmts",
	"tracked", "modified", "staged",
	"module", "scan_id",
}

func writeCSV(path string, rows []row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.AbsPath, r.RelPath, r.Parent, r.Name, r.Suffix,
			strconv.FormatInt(r.SizeBytes, 10), r.MTime, r.CTime, r.ATime, r.ModeOctal,
			strconv.FormatUint(uint64(r.UID), 10), strconv.FormatUint(uint64(r.GID), 10),
			strconv.Itoa(int(r.TotalLines)), strconv.Itoa(int(r.BlankLines)), strconv.Itoa(int(r.CommentLines)),
			strconv.Itoa(int(r.FunctionDefs)), strconv.Itoa(int(r.PrepareStmts)), strconv.Itoa(int(r.ExecuteStmts)),
			strconv.Itoa(int(r.RunStmts)), strconv.Itoa(int(r.CallStmts)),
			strconv.FormatBool(r.Tracked), strconv.FormatBool(r.Modified), strconv.FormatBool(r.Staged),
			r.Module, r.ScanID,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.RelPath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
