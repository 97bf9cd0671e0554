package ranking_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func sample() []model.Entry {
	return []model.Entry{
		{ID: "a", Score: 50},
		{ID: "b", Score: 70},
		{ID: "c", Score: 70},
		{ID: "d", Score: 30},
	}
}

func ids(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func ranks(entries []model.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

// randomEntries draws scores from a small range so ties are frequent.
func randomEntries(rng *rand.Rand, n int) []model.Entry {
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = model.Entry{
			ID:    "p" + strconv.Itoa(rng.Intn(n)),
			Score: float64(rng.Intn(10)),
		}
	}
	return entries
}

func TestRank(t *testing.T) {
	Convey("Given the four-participant scenario", t, func() {
		input := sample()

		Convey("When ranked", func() {
			ranked := ranking.Rank(input)

			Convey("Then ties on score are broken by id", func() {
				So(ids(ranked), ShouldResemble, []string{"b", "c", "a", "d"})
			})

			Convey("And ranks are positional with inherited ties", func() {
				So(ranks(ranked), ShouldResemble, []int{1, 1, 3, 4})
			})

			Convey("And the input slice is left untouched", func() {
				So(input, ShouldResemble, sample())
			})
		})
	})

	Convey("Given a tie block in the middle", t, func() {
		input := []model.Entry{
			{ID: "e", Score: 10},
			{ID: "d", Score: 20},
			{ID: "c", Score: 20},
			{ID: "b", Score: 20},
			{ID: "a", Score: 90},
		}

		Convey("When ranked", func() {
			ranked := ranking.Rank(input)

			Convey("Then the entry after the block takes its position", func() {
				So(ids(ranked), ShouldResemble, []string{"a", "b", "c", "d", "e"})
				So(ranks(ranked), ShouldResemble, []int{1, 2, 2, 2, 5})
			})
		})
	})

	Convey("Given entries equal in score and id", t, func() {
		input := []model.Entry{
			{ID: "x", Score: 5, Participation: "first"},
			{ID: "x", Score: 5, Participation: "second"},
			{ID: "w", Score: 1, Participation: "third"},
			{ID: "x", Score: 5, Participation: "fourth"},
		}

		Convey("When ranked", func() {
			ranked := ranking.Rank(input)

			Convey("Then they keep their input order and share a rank", func() {
				So(ranked[0].Participation, ShouldEqual, "first")
				So(ranked[1].Participation, ShouldEqual, "second")
				So(ranked[2].Participation, ShouldEqual, "fourth")
				So(ranks(ranked), ShouldResemble, []int{1, 1, 1, 4})
			})
		})
	})

	Convey("Given no entries", t, func() {
		Convey("Then ranking returns an empty slice", func() {
			So(ranking.Rank(nil), ShouldBeEmpty)
			So(ranking.Rank([]model.Entry{}), ShouldBeEmpty)
		})
	})

	Convey("Given random entries with frequent ties", t, func() {
		rng := rand.New(rand.NewSource(7))

		for round := 0; round < 50; round++ {
			ranked := ranking.Rank(randomEntries(rng, 1+rng.Intn(40)))

			So(ranked[0].Rank, ShouldEqual, 1)
			for i := 1; i < len(ranked); i++ {
				prev, cur := ranked[i-1], ranked[i]

				// total ordering
				So(prev.Score > cur.Score || (prev.Score == cur.Score && prev.ID <= cur.ID), ShouldBeTrue)
				// monotonic ranks, shared within a tie
				So(cur.Rank, ShouldBeGreaterThanOrEqualTo, prev.Rank)
				if prev.Score == cur.Score {
					So(cur.Rank, ShouldEqual, prev.Rank)
				} else {
					So(cur.Rank, ShouldEqual, i+1)
				}
			}

			// idempotence after stripping ranks
			stripped := make([]model.Entry, len(ranked))
			copy(stripped, ranked)
			for i := range stripped {
				stripped[i].Rank = 0
			}
			So(ranking.Rank(stripped), ShouldResemble, ranked)
		}
	})
}

func TestTopN(t *testing.T) {
	Convey("Given the ranked four-participant scenario", t, func() {
		ranked := ranking.Rank(sample())

		Convey("When projecting the top two", func() {
			top := ranking.TopN(ranked, 2)

			Convey("Then the tied leaders are returned in rank order", func() {
				So(top, ShouldResemble, []model.TopEntry{{ID: "b", Score: 70}, {ID: "c", Score: 70}})
			})
		})

		Convey("When n exceeds the number of entries", func() {
			So(ranking.TopN(ranked, 5), ShouldHaveLength, 4)
		})

		Convey("When n is zero or negative", func() {
			So(ranking.TopN(ranked, 0), ShouldBeEmpty)
			So(ranking.TopN(ranked, -3), ShouldBeEmpty)
		})

		Convey("When there are no entries", func() {
			So(ranking.TopN(nil, 5), ShouldBeEmpty)
		})
	})
}
