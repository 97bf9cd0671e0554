// Package stats aggregates the score distribution of a leaderboard.
// Standard deviation is the population form (divide by N). Every aggregate
// of an empty leaderboard is 0.
package stats

import (
	"math"
	"sort"

	"github.com/okian/quizboard/internal/domain/model"
)

// DefaultNonQuizColumns is the number of header columns in the quiz sheet that
// are not quizzes (identity, participation, score, image, timestamp).
const DefaultNonQuizColumns = 5

// Summarize computes the aggregates over entries' scores. columnCount is the
// number of distinct source headers; nonQuizColumns of them are not quizzes.
func Summarize(entries []model.Entry, columnCount, nonQuizColumns int) model.Summary {
	s := model.Summary{
		TotalParticipants: len(entries),
		TotalQuizzes:      TotalQuizzes(columnCount, nonQuizColumns),
	}
	if len(entries) == 0 {
		return s
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.Score
	}

	s.Mean, s.StandardDeviation = MeanStdDev(scores)
	s.Median = Median(scores)
	s.Max = Max(scores)
	return s
}

// TotalQuizzes returns columnCount - nonQuizColumns, clamped at 0.
func TotalQuizzes(columnCount, nonQuizColumns int) int {
	if n := columnCount - nonQuizColumns; n > 0 {
		return n
	}
	return 0
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
func MeanStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / float64(len(values)))
}

// Median sorts a copy of values; values itself is not reordered.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Max returns the largest value.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
