package pipeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/normalize"
	"github.com/okian/quizboard/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func scenario() model.Dataset {
	return model.Dataset{
		Columns: []string{"timestamp", "username", "partisipasi", "score", "imageurl", "quiz 1", "quiz 2", "quiz 3"},
		Rows: []model.RawRow{
			{"username": "a", "partisipasi": float64(2), "score": float64(50)},
			{"username": "b", "partisipasi": float64(100), "score": float64(70), "imageurl": "https://img/b.png"},
			{"username": "c", "partisipasi": "0", "score": float64(70)},
			{"username": "d", "partisipasi": "", "score": float64(30)},
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	Convey("Given a pipeline with a fixed clock", t, func() {
		p := pipeline.New(pipeline.WithClock(func() time.Time { return fixedNow }))
		ctx := context.Background()

		Convey("When running the four-participant scenario", func() {
			bundle, diags := p.Run(ctx, scenario())

			Convey("Then entries are ranked with ratios", func() {
				So(bundle.Entries, ShouldHaveLength, 4)
				So(bundle.Entries[0].ID, ShouldEqual, "b")
				So(bundle.Entries[0].Rank, ShouldEqual, 1)
				So(bundle.Entries[0].ParticipationRatio, ShouldEqual, 70)
				So(bundle.Entries[0].ImageURL, ShouldEqual, "https://img/b.png")
				So(bundle.Entries[1].ID, ShouldEqual, "c")
				So(bundle.Entries[1].Rank, ShouldEqual, 1)
				So(bundle.Entries[1].ParticipationRatio, ShouldEqual, 0)
				So(bundle.Entries[2].ID, ShouldEqual, "a")
				So(bundle.Entries[2].Rank, ShouldEqual, 3)
				So(bundle.Entries[2].ParticipationRatio, ShouldEqual, 2500)
				So(bundle.Entries[3].ID, ShouldEqual, "d")
				So(bundle.Entries[3].Rank, ShouldEqual, 4)
			})

			Convey("And the summary is computed over all scores", func() {
				So(bundle.Summary.Mean, ShouldEqual, 55)
				So(bundle.Summary.Median, ShouldEqual, 60)
				So(bundle.Summary.Max, ShouldEqual, 70)
				So(bundle.Summary.TotalParticipants, ShouldEqual, 4)
				So(bundle.Summary.TotalQuizzes, ShouldEqual, 3)
			})

			Convey("And the top projection holds every entry in rank order", func() {
				So(bundle.Top, ShouldResemble, []model.TopEntry{
					{ID: "b", Score: 70}, {ID: "c", Score: 70}, {ID: "a", Score: 50}, {ID: "d", Score: 30},
				})
			})

			Convey("And the run is clean and stamped", func() {
				So(diags, ShouldBeEmpty)
				So(bundle.Diagnostics, ShouldEqual, 0)
				So(bundle.GeneratedAt, ShouldEqual, fixedNow)
			})
		})

		Convey("When running an empty dataset", func() {
			bundle, diags := p.Run(ctx, model.Dataset{Columns: []string{"username", "score"}})

			Convey("Then the bundle is empty with a zero summary", func() {
				So(diags, ShouldBeEmpty)
				So(bundle.Entries, ShouldBeEmpty)
				So(bundle.Top, ShouldBeEmpty)
				So(bundle.Summary, ShouldResemble, model.Summary{})
			})
		})

		Convey("When rows are degraded", func() {
			ds := model.Dataset{
				Columns: []string{"username", "score"},
				Rows:    []model.RawRow{{"username": "x", "score": "oops"}},
			}
			bundle, diags := p.Run(ctx, ds)

			Convey("Then the run still completes and counts diagnostics", func() {
				So(bundle.Entries, ShouldHaveLength, 1)
				So(bundle.Entries[0].Score, ShouldEqual, 0)
				So(bundle.Entries[0].Rank, ShouldEqual, 1)
				So(diags, ShouldHaveLength, 2)
				So(bundle.Diagnostics, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a pipeline with custom top size and offset", t, func() {
		p := pipeline.New(
			pipeline.WithTopN(1),
			pipeline.WithNonQuizColumns(2),
			pipeline.WithNormalizer(normalize.New(normalize.WithMapping(normalize.Mapping{
				normalize.FieldID: {"name"},
			}))),
		)

		Convey("When running", func() {
			ds := model.Dataset{
				Columns: []string{"name", "partisipasi", "score", "q1"},
				Rows: []model.RawRow{
					{"name": "low", "partisipasi": "1", "score": float64(1)},
					{"name": "high", "partisipasi": "1", "score": float64(9)},
				},
			}
			bundle, _ := p.Run(context.Background(), ds)

			Convey("Then the options are honored", func() {
				So(p.TopN(), ShouldEqual, 1)
				So(bundle.Top, ShouldResemble, []model.TopEntry{{ID: "high", Score: 9}})
				So(bundle.Summary.TotalQuizzes, ShouldEqual, 2)
			})
		})
	})

	Convey("Given concurrent runs over the same dataset", t, func() {
		p := pipeline.New(pipeline.WithClock(func() time.Time { return fixedNow }))
		ds := scenario()
		want, _ := p.Run(context.Background(), ds)

		results := make([]model.Bundle, 16)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = p.Run(context.Background(), ds)
			}(i)
		}
		wg.Wait()

		Convey("Then every run yields the same bundle", func() {
			for _, got := range results {
				So(got, ShouldResemble, want)
			}
		})
	})
}
