package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/quizboard/internal/config"
	"github.com/okian/quizboard/pkg/logger"
	"github.com/okian/quizboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a config pointing at a quiz sheet", t, func() {
		path := filepath.Join(t.TempDir(), "board.csv")
		convey.So(os.WriteFile(path, []byte(
			"timestamp,username,partisipasi,score,imageurl,q1,q2\n"+
				"t,alice,4,80,,1,1\n"+
				"t,bob,2,60,,1,\n"), 0o600), convey.ShouldBeNil)

		_ = os.Setenv("QUIZBOARD_DATA_PATH", path)
		_ = os.Setenv("QUIZBOARD_TOP_N", "1")
		defer func() {
			_ = os.Unsetenv("QUIZBOARD_DATA_PATH")
			_ = os.Unsetenv("QUIZBOARD_TOP_N")
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		svc := newService(cfg, logger.Nop())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler := newHandler(ctx, cfg, svc, logger.Nop())

		convey.Convey("When the leaderboard is requested over HTTP", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

			var body struct {
				Entries []struct {
					ID    string `json:"id"`
					Rank  int    `json:"rank"`
					Medal string `json:"medal"`
				} `json:"entries"`
				Top []struct {
					ID string `json:"id"`
				} `json:"top"`
			}
			convey.So(json.NewDecoder(w.Body).Decode(&body), convey.ShouldBeNil)

			convey.Convey("Then the configured data path and top size are used", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(body.Entries, convey.ShouldHaveLength, 2)
				convey.So(body.Entries[0].ID, convey.ShouldEqual, "alice")
				convey.So(body.Entries[0].Medal, convey.ShouldEqual, "gold")
				convey.So(body.Top, convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			convey.Convey("Then the OpenAPI document is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When running the system metrics updater until cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating system metrics directly", func() {
			convey.So(func() {
				updateSystemMetrics()
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When creating a metrics manager on a custom registry", func() {
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given an empty listen address", t, func() {
		_ = os.Setenv("QUIZBOARD_ADDR", "")
		defer func() { _ = os.Unsetenv("QUIZBOARD_ADDR") }()

		convey.Convey("Then configuration loading should fail", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}
