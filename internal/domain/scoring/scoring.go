// Package scoring derives participation-adjusted scores from ranked entries.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/quizboard/internal/domain/model"
)

// ratioScale turns a score/participation quotient into a percentage.
const ratioScale = 100

// leadingFloat matches the longest base-10 numeric prefix, e.g. "3" in "3 quizzes".
var leadingFloat = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseParticipation reads the numeric prefix of a participation token,
// ignoring leading whitespace and locale. It reports false when there is no
// finite number to read.
func ParseParticipation(token string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimLeft(token, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Ratio returns (score / participation) * 100 when participation parses to a
// value greater than zero, and 0 otherwise.
func Ratio(score float64, participation string) float64 {
	p, ok := ParseParticipation(participation)
	if !ok || p <= 0 {
		return 0
	}
	return score / p * ratioScale
}

// WithRatios returns a copy of entries with ParticipationRatio set. Order and
// every other field are preserved.
func WithRatios(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	for i, e := range entries {
		e.ParticipationRatio = Ratio(e.Score, e.Participation)
		out[i] = e
	}
	return out
}
