package sampledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/okian/quizboard/internal/adapters/source"
	"github.com/okian/quizboard/internal/domain/model"
)

const (
	filePermission      = 0o600
	directoryPermission = 0o750
	defaultSheet        = "Sheet1"
)

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes ds as a header row followed by one record per row.
func WriteCSV(w io.Writer, ds model.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, c := range ds.Columns {
			record[i] = cellText(row[c])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes ds to a single-sheet workbook. An empty sheet keeps the
// excelize default name.
func WriteXLSX(w io.Writer, ds model.Dataset, sheet string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	} else {
		sheet = defaultSheet
	}

	write := func(r int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := write(1, header); err != nil {
		return err
	}
	for r, row := range ds.Rows {
		values := make([]any, len(ds.Columns))
		for i, c := range ds.Columns {
			values[i] = row[c]
		}
		if err := write(r+2, values); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// WriteFile writes ds to path in the format implied by its extension. The
// file is written next to path and renamed into place so a server reading it
// never sees a partial export.
func WriteFile(path string, ds model.Dataset, sheet string) error {
	format, err := source.FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	switch format {
	case source.FormatXLSX:
		err = WriteXLSX(f, ds, sheet)
	default:
		err = WriteCSV(f, ds)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
