package stats_test

import (
	"math"
	"testing"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func entriesWithScores(scores ...float64) []model.Entry {
	out := make([]model.Entry, len(scores))
	for i, s := range scores {
		out[i] = model.Entry{ID: string(rune('a' + i)), Score: s}
	}
	return out
}

func TestSummarize(t *testing.T) {
	Convey("Given the four-participant scenario", t, func() {
		entries := entriesWithScores(70, 70, 50, 30)

		Convey("When summarized with nine columns", func() {
			s := stats.Summarize(entries, 9, stats.DefaultNonQuizColumns)

			Convey("Then the aggregates match", func() {
				So(s.Mean, ShouldEqual, 55)
				So(s.Median, ShouldEqual, 60)
				So(s.Max, ShouldEqual, 70)
				So(s.StandardDeviation, ShouldAlmostEqual, math.Sqrt(275), 1e-9)
				So(s.TotalParticipants, ShouldEqual, 4)
				So(s.TotalQuizzes, ShouldEqual, 4)
			})

			Convey("And the entries keep their rank order", func() {
				So(entries[0].Score, ShouldEqual, 70)
				So(entries[3].Score, ShouldEqual, 30)
			})
		})
	})

	Convey("Given an odd number of scores", t, func() {
		s := stats.Summarize(entriesWithScores(9, 1, 5), 5, stats.DefaultNonQuizColumns)

		Convey("Then the median is the middle value", func() {
			So(s.Median, ShouldEqual, 5)
			So(s.TotalQuizzes, ShouldEqual, 0)
		})
	})

	Convey("Given identical scores", t, func() {
		s := stats.Summarize(entriesWithScores(42, 42, 42, 42, 42), 6, stats.DefaultNonQuizColumns)

		Convey("Then the distribution collapses to the score", func() {
			So(s.Mean, ShouldEqual, 42)
			So(s.StandardDeviation, ShouldEqual, 0)
			So(s.Median, ShouldEqual, 42)
			So(s.Max, ShouldEqual, 42)
		})
	})

	Convey("Given negative scores only", t, func() {
		s := stats.Summarize(entriesWithScores(-3, -1, -2), 0, stats.DefaultNonQuizColumns)

		Convey("Then max is the largest negative value", func() {
			So(s.Max, ShouldEqual, -1)
		})
	})

	Convey("Given no entries", t, func() {
		s := stats.Summarize(nil, 3, stats.DefaultNonQuizColumns)

		Convey("Then every aggregate is a defined zero", func() {
			So(s, ShouldResemble, model.Summary{})
			So(math.IsNaN(s.Mean), ShouldBeFalse)
			So(math.IsInf(s.Max, 0), ShouldBeFalse)
		})
	})
}

func TestTotalQuizzes(t *testing.T) {
	Convey("Given header column counts", t, func() {
		So(stats.TotalQuizzes(12, 5), ShouldEqual, 7)
		So(stats.TotalQuizzes(5, 5), ShouldEqual, 0)
		So(stats.TotalQuizzes(2, 5), ShouldEqual, 0)
		So(stats.TotalQuizzes(8, 0), ShouldEqual, 8)
	})
}
