// Package normalize converts raw source rows into typed leaderboard entries.
//
// Normalization never fails: a missing or unparsable cell degrades to the
// field's zero value and is reported as a Diagnostic.
package normalize

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/pkg/logger"
)

// Field is a logical entry attribute that is looked up in the source table.
type Field string

// Logical fields read by the Normalizer.
const (
	FieldID            Field = "id"
	FieldParticipation Field = "participation"
	FieldScore         Field = "score"
	FieldImageURL      Field = "image_url"
)

// Mapping lists, per logical field, the column names that may carry it.
// The first candidate present in the dataset header wins.
type Mapping map[Field][]string

// DefaultMapping returns the column names used by the quiz sheets.
func DefaultMapping() Mapping {
	return Mapping{
		FieldID:            {"username", "id/quiz"},
		FieldParticipation: {"partisipasi"},
		FieldScore:         {"score"},
		FieldImageURL:      {"imageurl"},
	}
}

// Diagnostic records one degraded cell.
type Diagnostic struct {
	Row    int    // zero-based row index in the dataset
	Field  Field  // logical field that degraded
	Column string // resolved column name, empty when no candidate column exists
	Value  any    // raw value, nil when missing
	Kind   error  // ErrMissingField or ErrUnparsableNumeric
}

func (d Diagnostic) Error() string {
	if d.Value == nil {
		return fmt.Sprintf("row %d: %s: %v", d.Row, d.Field, d.Kind)
	}
	return fmt.Sprintf("row %d: %s: %v: %v", d.Row, d.Field, d.Kind, d.Value)
}

// Unwrap exposes the sentinel kind to errors.Is.
func (d Diagnostic) Unwrap() error { return d.Kind }

// Normalizer maps raw rows to entries through a field-mapping table.
type Normalizer struct {
	mapping Mapping
	logger  logger.Logger
}

// New creates a Normalizer with the default mapping.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		mapping: DefaultMapping(),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Mapping returns a copy of the active field-mapping table.
func (n *Normalizer) Mapping() Mapping {
	out := make(Mapping, len(n.mapping))
	for f, c := range n.mapping {
		out[f] = append([]string(nil), c...)
	}
	return out
}

// Normalize converts every row of ds into an Entry. No row is dropped; the
// result has exactly len(ds.Rows) entries in input order.
func (n *Normalizer) Normalize(ctx context.Context, ds model.Dataset) ([]model.Entry, []Diagnostic) {
	cols := n.resolve(ds)
	entries := make([]model.Entry, len(ds.Rows))
	var diags []Diagnostic

	report := func(d Diagnostic) {
		diags = append(diags, d)
		n.logger.Debug(ctx, "degraded cell",
			logger.Int("row", d.Row),
			logger.String("field", string(d.Field)),
			logger.String("column", d.Column),
			logger.Error(d.Kind),
		)
	}

	for i, row := range ds.Rows {
		var e model.Entry

		if v, ok := lookup(row, cols[FieldID]); ok {
			e.ID = toString(v)
		} else {
			report(Diagnostic{Row: i, Field: FieldID, Column: cols[FieldID], Kind: ErrMissingField})
		}

		if v, ok := lookup(row, cols[FieldParticipation]); ok {
			e.Participation = toString(v)
		} else {
			report(Diagnostic{Row: i, Field: FieldParticipation, Column: cols[FieldParticipation], Kind: ErrMissingField})
		}

		if v, ok := lookup(row, cols[FieldScore]); ok {
			score, parsed := toNumber(v)
			if !parsed {
				report(Diagnostic{Row: i, Field: FieldScore, Column: cols[FieldScore], Value: v, Kind: ErrUnparsableNumeric})
			}
			e.Score = score
		} else {
			report(Diagnostic{Row: i, Field: FieldScore, Column: cols[FieldScore], Kind: ErrMissingField})
		}

		// Image is optional and never diagnosed.
		if v, ok := lookup(row, cols[FieldImageURL]); ok {
			e.ImageURL = toString(v)
		}

		entries[i] = e
	}
	return entries, diags
}

// resolve picks one column per field, once per dataset. Without a header the
// keys of the rows stand in for it.
func (n *Normalizer) resolve(ds model.Dataset) map[Field]string {
	present := make(map[string]struct{}, len(ds.Columns))
	for _, c := range ds.Columns {
		present[c] = struct{}{}
	}
	if len(ds.Columns) == 0 {
		for _, row := range ds.Rows {
			for k := range row {
				present[k] = struct{}{}
			}
		}
	}

	cols := make(map[Field]string, len(n.mapping))
	for field, candidates := range n.mapping {
		for _, c := range candidates {
			if _, ok := present[c]; ok {
				cols[field] = c
				break
			}
		}
	}
	return cols
}

func lookup(row model.RawRow, col string) (any, bool) {
	if col == "" {
		return nil, false
	}
	v, ok := row[col]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// toNumber reports false when v has no finite numeric reading; the value is then 0.
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
