// Package model contains domain models passed between layers.
package model

import "time"

// RawRow is one record of the source table keyed by column name.
// Values are already coerced by the source: nil, bool, float64 or string.
type RawRow map[string]any

// Dataset is a parsed table: the header row and the records below it.
type Dataset struct {
	Columns []string
	Rows    []RawRow
}

// ColumnCount returns the number of distinct, non-empty column headers.
func (d Dataset) ColumnCount() int {
	seen := make(map[string]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		if c == "" {
			continue
		}
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Entry is one participant's normalized record.
// Rank is 0 until the entry has been ranked.
type Entry struct {
	ID                 string  `json:"id"`
	Participation      string  `json:"participation"`
	Score              float64 `json:"score"`
	Rank               int     `json:"rank,omitempty"`
	ImageURL           string  `json:"image_url,omitempty"`
	ParticipationRatio float64 `json:"participation_ratio"`
}

// TopEntry is the chart projection of a ranked entry.
type TopEntry struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Summary aggregates the score distribution of a leaderboard.
type Summary struct {
	Mean              float64 `json:"mean"`
	StandardDeviation float64 `json:"standard_deviation"`
	Median            float64 `json:"median"`
	Max               float64 `json:"max"`
	TotalParticipants int     `json:"total_participants"`
	TotalQuizzes      int     `json:"total_quizzes"`
}

// Bundle is the pipeline output handed to the presentation layer.
type Bundle struct {
	Entries     []Entry    `json:"entries"`
	Summary     Summary    `json:"summary"`
	Top         []TopEntry `json:"top"`
	Diagnostics int        `json:"diagnostics"`
	GeneratedAt time.Time  `json:"generated_at"`
}
