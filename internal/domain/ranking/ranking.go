// Package ranking orders leaderboard entries and assigns competition ranks.
//
// Ordering: score DESC, then id ASC. Equal scores share the rank of the
// first entry of their run; the next lower score takes its 1-based position,
// so a tie at the top yields 1, 1, 3.
package ranking

import (
	"sort"

	"github.com/okian/quizboard/internal/domain/model"
)

// less returns true if a should appear before b on the leaderboard.
func less(a, b model.Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score // higher score ranks earlier
	}
	return a.ID < b.ID // tie-breaker by id asc
}

// Rank returns a sorted copy of entries with Rank assigned. The input is not
// modified and need not be sorted. Entries equal in both score and id keep
// their input order.
func Rank(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	if len(out) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	out[0].Rank = 1
	for i := 1; i < len(out); i++ {
		if out[i].Score == out[i-1].Score {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}

// TopN projects the first min(n, len(ranked)) entries to id and score.
// A non-positive n yields an empty slice.
func TopN(ranked []model.Entry, n int) []model.TopEntry {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	top := make([]model.TopEntry, n)
	for i := range top {
		top[i] = model.TopEntry{ID: ranked[i].ID, Score: ranked[i].Score}
	}
	return top
}
