package sampledata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/pkg/logger"
)

// Expected is the reference rank and score for one participant.
type Expected struct {
	Rank  int
	Score float64
}

// ReferenceRanks computes competition ranks by counting strictly higher
// scores. It does not share code with the server's ranker. Unparsable
// scores count as 0.
func ReferenceRanks(ds model.Dataset) map[string]Expected {
	scores := make(map[string]float64, len(ds.Rows))
	for _, row := range ds.Rows {
		id, _ := row[ColUsername].(string)
		score, _ := row[ColScore].(float64)
		scores[id] = score
	}
	out := make(map[string]Expected, len(scores))
	for id, s := range scores {
		higher := 0
		for _, other := range scores {
			if other > s {
				higher++
			}
		}
		out[id] = Expected{Rank: higher + 1, Score: s}
	}
	return out
}

// LeaderboardEntry is the part of a served entry that verification checks.
type LeaderboardEntry struct {
	ID    string  `json:"id"`
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// FetchLeaderboard reads GET {baseURL}/leaderboard, retrying while the server
// starts up.
func FetchLeaderboard(ctx context.Context, client *http.Client, baseURL string) ([]LeaderboardEntry, error) {
	var body struct {
		Entries []LeaderboardEntry `json:"entries"`
	}
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/leaderboard", http.NoBody)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusOK {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return fmt.Errorf("GET /leaderboard: status %d: %s", resp.StatusCode, msg)
			}
			return json.NewDecoder(resp.Body).Decode(&body)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return body.Entries, nil
}

// Verify compares the server's leaderboard with ReferenceRanks(ds). Every
// mismatch is reported, joined under ErrMismatch.
func Verify(ctx context.Context, client *http.Client, baseURL string, ds model.Dataset) error {
	entries, err := FetchLeaderboard(ctx, client, baseURL)
	if err != nil {
		return err
	}
	want := ReferenceRanks(ds)

	var problems []error
	if len(entries) != len(want) {
		problems = append(problems, fmt.Errorf("got %d entries, want %d", len(entries), len(want)))
	}
	for i, e := range entries {
		exp, ok := want[e.ID]
		switch {
		case !ok:
			problems = append(problems, fmt.Errorf("unexpected participant %q", e.ID))
		case e.Rank != exp.Rank:
			problems = append(problems, fmt.Errorf("%s: rank %d, want %d", e.ID, e.Rank, exp.Rank))
		case e.Score != exp.Score:
			problems = append(problems, fmt.Errorf("%s: score %v, want %v", e.ID, e.Score, exp.Score))
		}
		if i > 0 && e.Score > entries[i-1].Score {
			problems = append(problems, fmt.Errorf("entry %d scores higher than entry %d", i, i-1))
		}
	}
	if len(problems) > 0 {
		return errors.Join(append([]error{ErrMismatch}, problems...)...)
	}
	logger.Get().Info(ctx, "leaderboard verified", logger.Int("entries", len(entries)))
	return nil
}
