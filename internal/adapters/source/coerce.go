package source

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/quizboard/internal/domain/model"
)

// numericCell matches plain decimal literals; hex, "Inf" and "NaN" stay text.
var numericCell = regexp.MustCompile(`^\s*-?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?\s*$`)

// coerce applies the sheet's dynamic typing: empty cells become nil,
// true/false become bool, numeric literals become float64.
func coerce(cell string) any {
	if cell == "" {
		return nil
	}
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	if numericCell.MatchString(cell) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return f
		}
	}
	return cell
}

// blank reports whether every cell of a record is empty.
func blank(record []string) bool {
	for _, c := range record {
		if c != "" {
			return false
		}
	}
	return true
}

// buildDataset turns a header and its records into a Dataset. Blank records
// are skipped, short records leave trailing columns absent and surplus cells
// are ignored. When a header name repeats, the first column owns the key.
func buildDataset(header []string, records [][]string) model.Dataset {
	columns := make([]string, len(header))
	first := make([]bool, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if _, dup := seen[columns[i]]; !dup {
			seen[columns[i]] = struct{}{}
			first[i] = true
		}
	}

	rows := make([]model.RawRow, 0, len(records))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		row := make(model.RawRow, len(columns))
		for i, col := range columns {
			if i >= len(rec) {
				break
			}
			if !first[i] {
				continue
			}
			row[col] = coerce(rec[i])
		}
		rows = append(rows, row)
	}
	return model.Dataset{Columns: columns, Rows: rows}
}
