package sampledata

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/quizboard/internal/domain/model"
)

// Column names of the generated sheet. They match the default field mapping.
const (
	ColTimestamp     = "timestamp"
	ColUsername      = "username"
	ColParticipation = "partisipasi"
	ColScore         = "score"
	ColImageURL      = "imageurl"
)

// Performer tiers, as per-quiz point ranges out of 100.
var tiers = []struct{ min, span float64 }{
	{30, 40}, // average, most common
	{30, 40},
	{70, 20}, // high
	{1, 29},  // low
	{90, 10}, // elite
	{1, 9},   // very low
	{60, 20}, // mid-high
	{20, 20}, // mid-low
}

var baseTime = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var b [8]byte
		_, _ = crand.Read(b[:])
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data
}

// QuizColumn names the i-th quiz column, starting at 1.
func QuizColumn(i int) string { return "quiz " + strconv.Itoa(i) }

// Generate builds a quiz sheet in the shape of the export the server reads.
// Cells carry the same dynamic types the source parser produces.
func Generate(ctx context.Context, cfg *Config) (model.Dataset, error) {
	if err := cfg.validate(); err != nil {
		return model.Dataset{}, err
	}
	rng := newRand(cfg.Seed)

	cols := []string{ColTimestamp, ColUsername, ColParticipation, ColScore, ColImageURL}
	for q := 1; q <= cfg.Quizzes; q++ {
		cols = append(cols, QuizColumn(q))
	}

	rows := make([]model.RawRow, cfg.Participants)
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return model.Dataset{}, fmt.Errorf("generation cancelled at row %d: %w", i, err)
		}
		rows[i] = generateRow(rng, i, cfg)
	}
	return model.Dataset{Columns: cols, Rows: rows}, nil
}

func generateRow(rng *rand.Rand, index int, cfg *Config) model.RawRow {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.New()
	}
	username := "user-" + id.String()[:8]

	row := model.RawRow{
		ColTimestamp: baseTime.Add(time.Duration(index) * time.Minute).Format(time.RFC3339),
		ColUsername:  username,
		ColImageURL:  nil,
	}
	if index%3 == 0 {
		row[ColImageURL] = "https://i.pravatar.cc/150?u=" + username
	}

	tier := tiers[rng.Intn(len(tiers))]
	attempted := 0
	total := 0.0
	for q := 1; q <= cfg.Quizzes; q++ {
		if rng.Intn(4) == 0 {
			row[QuizColumn(q)] = nil
			continue
		}
		points := math.Round(tier.min + rng.Float64()*tier.span)
		row[QuizColumn(q)] = points
		attempted++
		total += points
	}
	row[ColParticipation] = float64(attempted)
	row[ColScore] = total

	if cfg.DirtyEvery > 0 && index%cfg.DirtyEvery == cfg.DirtyEvery-1 {
		if rng.Intn(2) == 0 {
			row[ColScore] = "n/a"
		} else {
			row[ColParticipation] = nil
		}
	}
	return row
}
