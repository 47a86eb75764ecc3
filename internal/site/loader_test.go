package site

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/source"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

func TestLoad_AllPages(t *testing.T) {
	data := loadAll(t)

	if data.Title != "Test League" {
		t.Errorf("Title = %q, want %q", data.Title, "Test League")
	}
	if got := len(data.Teams); got != 4 {
		t.Errorf("teams = %d, want 4", got)
	}
	if got := len(data.Schedule); got != 5 {
		t.Errorf("schedule = %d, want 5", got)
	}
	if data.Schedule[0].Home.Name != "Foxes" {
		t.Errorf("first match home = %q, want Foxes", data.Schedule[0].Home.Name)
	}

	var order []string
	for _, s := range data.Standings {
		order = append(order, s.TeamID)
	}
	if got := strings.Join(order, ","); got != "fox,wolf,bear,owl" {
		t.Errorf("standings order = %s, want fox,wolf,bear,owl", got)
	}

	if data.Hub == nil || data.Hub.Next == nil {
		t.Fatal("hub should have a next match night")
	}
	if data.Hub.Next.DateKey != "2026-01-24" {
		t.Errorf("next match night = %s, want 2026-01-24", data.Hub.Next.DateKey)
	}
	var top []string
	for _, s := range data.Hub.Top {
		top = append(top, s.TeamID)
	}
	if got := strings.Join(top, ","); got != "fox,wolf,bear,elk" {
		t.Errorf("hub top = %s, want fox,wolf,bear,elk", got)
	}

	if data.StatsSource != StatsFromGames {
		t.Errorf("StatsSource = %q, want game", data.StatsSource)
	}
	if got := len(data.Stats); got != 3 {
		t.Fatalf("stats lines = %d, want 3", got)
	}
	if ace := data.Stats[0]; ace.Player != "ace" || ace.GP != 2 || ace.Score != 800 || ace.Ping != 31 {
		t.Errorf("ace = %+v, want GP 2, score 800, ping 31", ace)
	}
}

func TestLoad_SeasonStats(t *testing.T) {
	data := loadAll(t, WithStatsSource(StatsFromSeason))
	if data.StatsSource != StatsFromSeason {
		t.Errorf("StatsSource = %q, want season", data.StatsSource)
	}
	if got := len(data.Stats); got != 3 {
		t.Fatalf("stats lines = %d, want 3", got)
	}
	if data.Stats[0].GP != 2 || data.Stats[0].Score != 800 {
		t.Errorf("season line = %+v", data.Stats[0])
	}
}

func TestLoad_OnlyRequestedPages(t *testing.T) {
	server := sheetServer(t)
	cfg := testConfig(server.URL)
	// The stats sheets are broken; loading teams alone must not touch them.
	cfg.Sources.PlayerGameStats = server.URL + "/missing.csv"

	data, err := testLoader(cfg).Load(context.Background(), PageTeams)
	if err != nil {
		t.Fatalf("Load(teams) error = %v", err)
	}
	if !data.Has(PageTeams) || data.Has(PageStats) {
		t.Errorf("Pages = %v, want only teams", data.Pages)
	}
	if data.Schedule != nil || data.Stats != nil || data.Hub != nil {
		t.Error("unrequested view models should stay empty")
	}
}

func TestLoad_Failure(t *testing.T) {
	server := sheetServer(t)
	cfg := testConfig(server.URL)
	cfg.Sources.Schedule = server.URL + "/missing.csv"

	_, err := testLoader(cfg).Load(context.Background(), PageSchedule)
	var statusErr *source.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Load() error = %v, want *source.StatusError", err)
	}
	if statusErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestLoad_MissingSource(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Sources.Teams = ""

	_, err := testLoader(cfg).Load(context.Background(), PageTeams)
	if !errors.Is(err, config.ErrMissingSource) {
		t.Errorf("Load() error = %v, want ErrMissingSource", err)
	}
}

func TestAssemble_HubFallsBackToStandings(t *testing.T) {
	cfg := testConfig("http://unused")
	standings, err := tabular.Parse("team_id,W,L\nowl,1,0\nfox,2,0\n")
	if err != nil {
		t.Fatal(err)
	}
	data := testLoader(cfg).Assemble(source.Tables{source.StandingsView: standings}, PageHub)
	if data.Hub == nil || data.Hub.Next != nil {
		t.Fatalf("hub = %+v, want no next match night", data.Hub)
	}
	if len(data.Hub.Top) != 2 || data.Hub.Top[0].TeamID != "fox" {
		t.Errorf("hub top = %+v, want fox first", data.Hub.Top)
	}
}

func TestPlan(t *testing.T) {
	cfg := testConfig("http://sheets")
	plan, err := testLoader(cfg).Plan(PageHub, PageSchedule)
	if err != nil {
		t.Fatal(err)
	}
	want := map[source.Dataset]string{
		source.Teams:         "http://sheets/teams.csv",
		source.Schedule:      "http://sheets/schedule.csv",
		source.StandingsView: "http://sheets/standings_view.csv",
	}
	if len(plan) != len(want) {
		t.Fatalf("plan = %v, want %v", plan, want)
	}
	for d, url := range want {
		if plan[d] != url {
			t.Errorf("plan[%s] = %q, want %q", d, plan[d], url)
		}
	}
}

func TestParsePageAndStatsSource(t *testing.T) {
	if p, err := ParsePage(" Stats "); err != nil || p != PageStats {
		t.Errorf("ParsePage(Stats) = %q, %v", p, err)
	}
	if _, err := ParsePage("admin"); err == nil {
		t.Error("ParsePage(admin) should fail")
	}

	tests := []struct {
		in      string
		want    StatsSource
		wantErr bool
	}{
		{"", StatsFromGames, false},
		{"games", StatsFromGames, false},
		{"Season", StatsFromSeason, false},
		{"career", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatsSource(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStatsSource(%q) = %q, %v", tt.in, got, err)
		}
	}
}
