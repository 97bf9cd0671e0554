package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/quizboard/internal/domain/model"
)

// ParseCSV reads a comma-separated table whose first record is the header.
func ParseCSV(r io.Reader) (model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Dataset{}, ErrNoHeader
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: header: %w", ErrReadSource, err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	records, err := cr.ReadAll()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	return buildDataset(header, records), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
