package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/quizboard/internal/domain/model"
)

// ParseXLSX reads the named sheet, or the first sheet when sheet is empty.
// The first row is the header.
func ParseXLSX(r io.Reader, sheet string) (model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: open workbook: %w", ErrReadSource, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return model.Dataset{}, ErrNoHeader
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: sheet %q: %w", ErrReadSource, sheet, err)
	}
	if len(rows) == 0 {
		return model.Dataset{}, ErrNoHeader
	}
	return buildDataset(rows[0], rows[1:]), nil
}
