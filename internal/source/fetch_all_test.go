package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("team_id,team_name\nfox,Foxes\nwolf,Wolves\n")) // nolint:errcheck
	})
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("match_id,home_team_id,away_team_id\nM1,fox,wolf\n")) // nolint:errcheck
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><title>Sign in</title></html>")) // nolint:errcheck
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchAll(t *testing.T) {
	server := sheetServer(t)

	tables, err := testFetcher(true).FetchAll(context.Background(), map[Dataset]string{
		Teams:    server.URL + "/teams",
		Schedule: server.URL + "/schedule",
	})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if got := len(tables.Rows(Teams)); got != 2 {
		t.Errorf("teams rows = %d, want 2", got)
	}
	if got := len(tables.Rows(Schedule)); got != 1 {
		t.Errorf("schedule rows = %d, want 1", got)
	}
	if tables.Rows(Standings) != nil {
		t.Error("Rows() of a dataset that was not loaded should be nil")
	}
}

func TestFetchAll_Metrics(t *testing.T) {
	server := sheetServer(t)
	f := testFetcher(true)

	for _, plan := range []map[Dataset]string{
		{Teams: server.URL + "/teams", Schedule: server.URL + "/schedule"},
		{Teams: server.URL + "/teams"},
	} {
		if _, err := f.FetchAll(context.Background(), plan); err != nil {
			t.Fatalf("FetchAll() error = %v", err)
		}
	}

	s := f.Metrics().Snapshot()
	if got := s.Gauges["load.datasets"]; got != 1 {
		t.Errorf("load.datasets gauge = %v, want 1 (the latest load)", got)
	}
	if _, ok := s.Gauges["load.last_duration_ms"]; !ok {
		t.Error("load.last_duration_ms gauge not set")
	}
	if got := s.Counters["load.count"]; got != 2 {
		t.Errorf("load.count = %d, want 2", got)
	}
	if got := s.Counters["fetch.requests"]; got != 3 {
		t.Errorf("fetch.requests = %d, want 3", got)
	}
	if got := s.Counters["rows.teams"]; got != 4 {
		t.Errorf("rows.teams = %d, want 4", got)
	}
}

func TestFetchAll_OneFailureFailsTheLoad(t *testing.T) {
	server := sheetServer(t)

	tables, err := testFetcher(true).FetchAll(context.Background(), map[Dataset]string{
		Teams:     server.URL + "/teams",
		Schedule:  server.URL + "/login",
		Standings: server.URL + "/missing",
	})
	if err == nil {
		t.Fatal("FetchAll() expected error")
	}
	if tables != nil {
		t.Error("FetchAll() should not return partial tables")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) && !errors.Is(err, tabular.ErrNotCSV) {
		t.Errorf("FetchAll() error = %v, want a status or not-CSV failure", err)
	}
}

func TestPlan(t *testing.T) {
	sources := config.Sources{
		Teams:     "https://example.com/teams",
		Standings: "https://example.com/standings",
	}

	plan, err := Plan(sources, Teams, StandingsView)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan[StandingsView] != sources.Standings {
		t.Errorf("StandingsView = %q, want the full standings fallback", plan[StandingsView])
	}

	if _, err := Plan(sources, Schedule); !errors.Is(err, config.ErrMissingSource) {
		t.Errorf("Plan(schedule) error = %v, want ErrMissingSource", err)
	}
}

func TestParseDataset(t *testing.T) {
	if d, err := ParseDataset("player_game_stats"); err != nil || d != PlayerGameStats {
		t.Errorf("ParseDataset() = %q, %v", d, err)
	}
	if _, err := ParseDataset("fixtures"); !errors.Is(err, config.ErrUnknownDataset) {
		t.Errorf("ParseDataset(fixtures) error = %v", err)
	}
}
