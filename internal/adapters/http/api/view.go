package api

import (
	"time"

	"github.com/okian/quizboard/internal/domain/model"
)

// Medal names for the podium ranks.
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

// EntryView is a ranked entry plus presentation hints.
type EntryView struct {
	model.Entry
	Medal     string `json:"medal,omitempty" jsonschema:"enum=gold,enum=silver,enum=bronze"`
	AboveMean bool   `json:"above_mean"`
	Highlight bool   `json:"highlight"`
}

// LeaderboardResponse is the body of GET /leaderboard.
type LeaderboardResponse struct {
	Entries     []EntryView      `json:"entries"`
	Summary     model.Summary    `json:"summary"`
	Top         []model.TopEntry `json:"top"`
	Diagnostics int              `json:"diagnostics"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// medal maps ranks 1..3 to a podium medal. Tied entries share the medal of
// their shared rank.
func medal(rank int) string {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return ""
	}
}

func newEntryView(e model.Entry, mean, threshold float64) EntryView {
	return EntryView{
		Entry:     e,
		Medal:     medal(e.Rank),
		AboveMean: e.Score > mean,
		Highlight: e.ParticipationRatio > threshold,
	}
}

func newLeaderboardResponse(b model.Bundle, threshold float64) LeaderboardResponse {
	views := make([]EntryView, len(b.Entries))
	for i, e := range b.Entries {
		views[i] = newEntryView(e, b.Summary.Mean, threshold)
	}
	top := b.Top
	if top == nil {
		top = []model.TopEntry{}
	}
	return LeaderboardResponse{
		Entries:     views,
		Summary:     b.Summary,
		Top:         top,
		Diagnostics: b.Diagnostics,
		GeneratedAt: b.GeneratedAt,
	}
}
