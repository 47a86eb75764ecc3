package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/source"
)

var testNow = time.Date(2026, time.January, 20, 17, 0, 0, 0, time.UTC)

// sheetServer serves the fixture exports as <dataset>.csv.
func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.FileServer(http.Dir("../../testdata/sheets")))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.Sources = config.Sources{
		Teams:             baseURL + "/teams.csv",
		Schedule:          baseURL + "/schedule.csv",
		Standings:         baseURL + "/standings.csv",
		StandingsView:     baseURL + "/standings_view.csv",
		PlayerGameStats:   baseURL + "/player_game_stats.csv",
		PlayerSeasonStats: baseURL + "/player_season_stats.csv",
	}
	cfg.HTTP.RequestsPerSecond = 0
	cfg.Site.Title = "Test League"
	return cfg
}

func testLoader(cfg *config.Config, opts ...LoaderOption) *Loader {
	fetcher := source.New(cfg.HTTP, source.WithLogger(logger.New(logger.LevelError, nil)))
	opts = append([]LoaderOption{WithNow(func() time.Time { return testNow })}, opts...)
	return NewLoader(fetcher, cfg, opts...)
}

func loadAll(t *testing.T, opts ...LoaderOption) *Data {
	t.Helper()
	server := sheetServer(t)
	data, err := testLoader(testConfig(server.URL), opts...).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return data
}
