package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/rlol/internal/league"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.HTTP.Timeout.Duration != 30*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if !cfg.HTTP.CacheBust {
		t.Error("HTTP.CacheBust should default to true")
	}
	if cfg.League.Policy() != league.PolicyWins {
		t.Errorf("League.Policy() = %q, want wins", cfg.League.Policy())
	}
	if cfg.League.MatchDefaults() != league.DefaultMatchDefaults {
		t.Errorf("MatchDefaults() = %+v", cfg.League.MatchDefaults())
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "rlol.yaml", `
sources:
  schedule: https://example.com/schedule.csv
  standings_view: ""
http:
  timeout: 5s
  cache_bust: false
league:
  rank_policy: points
  snapshot_size: 6
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.Schedule != "https://example.com/schedule.csv" {
		t.Errorf("Sources.Schedule = %q", cfg.Sources.Schedule)
	}
	if cfg.Sources.Teams != Default().Sources.Teams {
		t.Error("unset sources should keep their defaults")
	}
	if cfg.HTTP.Timeout.Duration != 5*time.Second || cfg.HTTP.CacheBust {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.League.Policy() != league.PolicyPoints || cfg.League.SnapshotSize != 6 {
		t.Errorf("League = %+v", cfg.League)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}

	snap, err := cfg.Sources.StandingsSnapshotURL()
	if err != nil || snap != cfg.Sources.Standings {
		t.Errorf("StandingsSnapshotURL() = %q, %v, want the standings URL", snap, err)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "rlol.toml", `
[sources]
teams = "https://example.com/teams.csv"

[http]
timeout = "2s"
requests_per_second = 0.0

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sources.Teams != "https://example.com/teams.csv" {
		t.Errorf("Sources.Teams = %q", cfg.Sources.Teams)
	}
	if cfg.HTTP.Timeout.Duration != 2*time.Second || cfg.HTTP.RequestsPerSecond != 0 {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unknown format", file: "rlol.json", content: "{}", wantErr: "unsupported config format"},
		{name: "unknown yaml field", file: "rlol.yaml", content: "sourcez:\n  teams: x\n", wantErr: "parsing"},
		{name: "bad duration", file: "rlol.toml", content: "[http]\ntimeout = \"soon\"\n", wantErr: "parsing"},
		{name: "bad policy", file: "rlol.yaml", content: "league:\n  rank_policy: elo\n", wantErr: "invalid rank policy"},
		{name: "bad url", file: "rlol.yaml", content: "sources:\n  teams: ftp://example.com/x\n", wantErr: "sources.teams"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RLOL_SCHEDULE_CSV", "https://example.com/env-schedule.csv")
	t.Setenv("RLOL_RANK_POLICY", "points")
	t.Setenv("RLOL_LOG_LEVEL", "warn")
	t.Setenv("RLOL_ADDR", ":7070")
	t.Setenv("RLOL_STANDINGS_VIEW_CSV", "  ")

	path := writeFile(t, "rlol.yaml", "sources:\n  schedule: https://example.com/file.csv\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sources.Schedule != "https://example.com/env-schedule.csv" {
		t.Errorf("environment should win over the file, got %q", cfg.Sources.Schedule)
	}
	if cfg.League.RankPolicy != "points" || cfg.Log.Level != "warn" || cfg.Server.Addr != ":7070" {
		t.Errorf("overrides not applied: %+v %+v %+v", cfg.League, cfg.Log, cfg.Server)
	}
	if cfg.Sources.StandingsView != Default().Sources.StandingsView {
		t.Error("blank environment values should be ignored")
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("RLOL_TEST_FROM_FILE", "")
	os.Unsetenv("RLOL_TEST_FROM_FILE")
	t.Setenv("RLOL_TEST_PRESET", "kept")

	path := writeFile(t, ".env", "RLOL_TEST_FROM_FILE=loaded\nRLOL_TEST_PRESET=replaced\n")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	if got := os.Getenv("RLOL_TEST_FROM_FILE"); got != "loaded" {
		t.Errorf("RLOL_TEST_FROM_FILE = %q, want loaded", got)
	}
	if got := os.Getenv("RLOL_TEST_PRESET"); got != "kept" {
		t.Errorf("existing variables should win, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("LoadEnvFile(\"\") error = %v", err)
	}
}

func TestSources_URL(t *testing.T) {
	s := Sources{Teams: "https://example.com/teams.csv"}

	if got, err := s.URL(DatasetTeams); err != nil || got != s.Teams {
		t.Errorf("URL(teams) = %q, %v", got, err)
	}
	if _, err := s.URL(DatasetSchedule); !errors.Is(err, ErrMissingSource) {
		t.Errorf("URL(schedule) error = %v, want ErrMissingSource", err)
	}
	if _, err := s.URL("fixtures"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("URL(fixtures) error = %v, want ErrUnknownDataset", err)
	}
	if _, err := s.StandingsSnapshotURL(); !errors.Is(err, ErrMissingSource) {
		t.Errorf("StandingsSnapshotURL() error = %v, want ErrMissingSource", err)
	}

	s.StandingsView = "https://example.com/view.csv"
	if got, _ := s.StandingsSnapshotURL(); got != s.StandingsView {
		t.Errorf("StandingsSnapshotURL() = %q, want the view", got)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Timeout = Duration{}
	cfg.League.SnapshotSize = 0
	cfg.Log.Level = "loud"
	cfg.Site.OutputDir = ""
	cfg.League.Location = "Mars/Olympus"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"http.timeout", "league.snapshot_size", "log.invalid log level", "site.output_dir", "league.location"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q: %v", want, err)
		}
	}
}

func TestLeagueConfig_Today(t *testing.T) {
	l := LeagueConfig{Location: "America/New_York"}
	// 02:00 UTC on Jan 25 is still Jan 24 in New York.
	now := time.Date(2026, time.January, 25, 2, 0, 0, 0, time.UTC)
	if got := league.DateKey(l.Today(now)); got != "2026-01-24" {
		t.Errorf("Today() = %s, want 2026-01-24", got)
	}
	if got := league.DateKey(LeagueConfig{}.Today(now)); got != "2026-01-25" {
		t.Errorf("Today() without location = %s, want 2026-01-25", got)
	}
}

func TestLeagueConfig_TimeLocation(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"America/Chicago", "America/Chicago"},
		{"", "UTC"},
		{"Mars/Olympus", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got := LeagueConfig{Location: tt.location}.TimeLocation()
			if got.String() != tt.want {
				t.Errorf("TimeLocation() = %s, want %s", got, tt.want)
			}
		})
	}
}
