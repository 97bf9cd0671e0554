package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	service "github.com/okian/quizboard/internal/app"
	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/pipeline"
	"github.com/okian/quizboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fakeLoader hands out a fixed dataset or error and counts calls.
type fakeLoader struct {
	mu    sync.Mutex
	ds    model.Dataset
	err   error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) (model.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	return f.ds, f.err
}

func (f *fakeLoader) set(ds model.Dataset, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ds, f.err = ds, err
}

func (f *fakeLoader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quizSheet() model.Dataset {
	return model.Dataset{
		Columns: []string{"timestamp", "username", "partisipasi", "score", "imageurl", "quiz 1", "quiz 2"},
		Rows: []model.RawRow{
			{"username": "a", "partisipasi": float64(2), "score": float64(50)},
			{"username": "b", "partisipasi": float64(100), "score": float64(70)},
			{"username": "c", "partisipasi": "0", "score": float64(70)},
			{"username": "d", "score": float64(30)},
		},
	}
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service over a loader", t, func() {
		loader := &fakeLoader{ds: quizSheet()}
		svc := service.New(loader)
		ctx := context.Background()

		Convey("When it has not been started", func() {
			_, err := svc.Leaderboard(ctx)

			Convey("Then requests are refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When it is started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then a warm-up load has run", func() {
				So(loader.count(), ShouldEqual, 1)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["runs"], ShouldEqual, int64(1))
				So(stats["lastEntries"], ShouldEqual, 4)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(loader.count(), ShouldEqual, 1)
			})

			Convey("And stopping refuses further requests", func() {
				svc.Stop()
				_, err := svc.Summary(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When the warm-up load fails", func() {
			loader.set(model.Dataset{}, errors.New("disk gone"))
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then the service still starts", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["failures"], ShouldEqual, int64(1))
			})
		})
	})

	Convey("Given a service without a source", t, func() {
		svc := service.New(nil)

		Convey("Then Start fails", func() {
			So(errors.Is(svc.Start(context.Background()), service.ErrLoadDataset), ShouldBeTrue)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service", t, func() {
		loader := &fakeLoader{ds: quizSheet()}
		svc := service.New(loader, service.WithPipeline(pipeline.New(pipeline.WithTopN(2))))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When requesting the leaderboard", func() {
			bundle, err := svc.Leaderboard(ctx)

			Convey("Then it carries ranks, ratios and the configured top", func() {
				So(err, ShouldBeNil)
				So(bundle.Entries[0].ID, ShouldEqual, "b")
				So(bundle.Entries[1].Rank, ShouldEqual, 1)
				So(bundle.Entries[2].ParticipationRatio, ShouldEqual, 2500)
				So(bundle.Top, ShouldHaveLength, 2)
				So(svc.DefaultTopN(), ShouldEqual, 2)
			})
		})

		Convey("When requesting an explicit top size", func() {
			top, err := svc.TopN(ctx, 3)
			So(err, ShouldBeNil)
			So(top, ShouldResemble, []model.TopEntry{{ID: "b", Score: 70}, {ID: "c", Score: 70}, {ID: "a", Score: 50}})

			all, err := svc.TopN(ctx, 50)
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, 4)

			none, err := svc.TopN(ctx, -1)
			So(err, ShouldBeNil)
			So(none, ShouldBeEmpty)
		})

		Convey("When looking up a participant", func() {
			before := loader.count()
			e, sum, err := svc.Standing(ctx, "a")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 3)
			So(sum.Mean, ShouldEqual, 55)
			So(loader.count()-before, ShouldEqual, 1)

			_, _, err = svc.Standing(ctx, "zed")
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When requesting the summary", func() {
			sum, err := svc.Summary(ctx)
			So(err, ShouldBeNil)
			So(sum.Mean, ShouldEqual, 55)
			So(sum.TotalQuizzes, ShouldEqual, 2)
		})

		Convey("When the dataset changes between requests", func() {
			loader.set(model.Dataset{
				Columns: []string{"username", "score"},
				Rows:    []model.RawRow{{"username": "new", "score": float64(1)}},
			}, nil)
			bundle, err := svc.Leaderboard(ctx)

			Convey("Then the next request sees it", func() {
				So(err, ShouldBeNil)
				So(bundle.Entries, ShouldHaveLength, 1)
				So(bundle.Entries[0].ID, ShouldEqual, "new")
			})
		})

		Convey("When the loader fails", func() {
			loader.set(model.Dataset{}, errors.New("locked"))
			_, err := svc.Leaderboard(ctx)

			Convey("Then the error wraps ErrLoadDataset", func() {
				So(errors.Is(err, service.ErrLoadDataset), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithTimeout(ctx, time.Nanosecond)
			defer cancel()
			time.Sleep(time.Millisecond)
			_, err := svc.Leaderboard(cctx)

			Convey("Then the load error surfaces", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})
	})
}
