package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/pfrederiksen/rlol/internal/league"
)

// Dataset names accepted by Sources.URL.
const (
	DatasetTeams             = "teams"
	DatasetSchedule          = "schedule"
	DatasetStandings         = "standings"
	DatasetStandingsView     = "standings_view"
	DatasetPlayerGameStats   = "player_game_stats"
	DatasetPlayerSeasonStats = "player_season_stats"
)

var (
	// ErrMissingSource is returned for a dataset with no configured URL.
	ErrMissingSource = errors.New("no source URL configured")
	// ErrUnknownDataset is returned for a dataset name that is not recognized.
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Config holds all rlol settings.
type Config struct {
	Sources Sources      `yaml:"sources" toml:"sources"`
	HTTP    HTTPConfig   `yaml:"http" toml:"http"`
	League  LeagueConfig `yaml:"league" toml:"league"`
	Log     LogConfig    `yaml:"log" toml:"log"`
	Server  ServerConfig `yaml:"server" toml:"server"`
	Site    SiteConfig   `yaml:"site" toml:"site"`
}

// Sources maps each dataset to its published CSV export URL.
type Sources struct {
	Teams             string `yaml:"teams" toml:"teams"`
	Schedule          string `yaml:"schedule" toml:"schedule"`
	Standings         string `yaml:"standings" toml:"standings"`
	StandingsView     string `yaml:"standings_view" toml:"standings_view"`
	PlayerGameStats   string `yaml:"player_game_stats" toml:"player_game_stats"`
	PlayerSeasonStats string `yaml:"player_season_stats" toml:"player_season_stats"`
}

// HTTPConfig controls how sheets are fetched.
type HTTPConfig struct {
	Timeout   Duration `yaml:"timeout" toml:"timeout"`
	UserAgent string   `yaml:"user_agent" toml:"user_agent"`
	// CacheBust appends a timestamp parameter to every request.
	CacheBust bool `yaml:"cache_bust" toml:"cache_bust"`
	// RequestsPerSecond limits outgoing requests; 0 disables the limit.
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
}

// LeagueConfig holds league presentation policy.
type LeagueConfig struct {
	Name            string `yaml:"name" toml:"name"`
	RankPolicy      string `yaml:"rank_policy" toml:"rank_policy"`
	DefaultTime     string `yaml:"default_time" toml:"default_time"`
	DefaultTimezone string `yaml:"default_timezone" toml:"default_timezone"`
	// Location is the IANA zone used to decide what "today" is.
	Location     string `yaml:"location" toml:"location"`
	SnapshotSize int    `yaml:"snapshot_size" toml:"snapshot_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// SiteConfig holds static site build settings.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	Title     string `yaml:"title" toml:"title"`
}

const sheetBase = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQCnxfwBylnd5H8jHc_g9Gtv7wyhzelCLixlK3-Bi_Uw0pVJga8MPtgYf5740Csm7hbfLTJhHGdWzh/pub"

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Sources: Sources{
			Teams:             "https://docs.google.com/spreadsheets/d/e/2PACX-1vQCQnxfwBylnd5H8jHc_g9Gtv7wyhzelCLixlK3-Bi_Uw0pVJga8MPtgYf5740Csm7hbfLTJhHGdWzh/pub?gid=0&single=true&output=csv",
			Schedule:          sheetBase + "?gid=907396704&single=true&output=csv",
			Standings:         sheetBase + "?gid=128420471&single=true&output=csv",
			StandingsView:     "https://docs.google.com/spreadsheets/d/1x3AjIDdP0iskwZ7YGWMWIP_h3wmGM75dK6Nr_ZcS-n0/gviz/tq?tqx=out:csv&gid=1039937861",
			PlayerGameStats:   sheetBase + "?gid=1283136814&single=true&output=csv",
			PlayerSeasonStats: sheetBase + "?gid=939885276&single=true&output=csv",
		},
		HTTP: HTTPConfig{
			Timeout:           Duration{30 * time.Second},
			UserAgent:         "rlol/1.0 (+https://github.com/pfrederiksen/rlol)",
			CacheBust:         true,
			RequestsPerSecond: 5,
			Burst:             3,
		},
		League: LeagueConfig{
			Name:            "RLOL",
			RankPolicy:      string(league.PolicyWins),
			DefaultTime:     league.DefaultMatchDefaults.Time,
			DefaultTimezone: league.DefaultMatchDefaults.Timezone,
			Location:        "America/New_York",
			SnapshotSize:    league.SnapshotSize,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Site: SiteConfig{
			OutputDir: "dist",
			Title:     "RLOL",
		},
	}
}

// URL returns the source URL for a dataset name.
func (s Sources) URL(dataset string) (string, error) {
	var url string
	switch dataset {
	case DatasetTeams:
		url = s.Teams
	case DatasetSchedule:
		url = s.Schedule
	case DatasetStandings:
		url = s.Standings
	case DatasetStandingsView:
		url = s.StandingsView
	case DatasetPlayerGameStats:
		url = s.PlayerGameStats
	case DatasetPlayerSeasonStats:
		url = s.PlayerSeasonStats
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	if url == "" {
		return "", fmt.Errorf("%w for %s", ErrMissingSource, dataset)
	}
	return url, nil
}

// StandingsSnapshotURL returns the standings view source, or the full
// standings source when no view is configured. Both share one shape.
func (s Sources) StandingsSnapshotURL() (string, error) {
	if s.StandingsView != "" {
		return s.StandingsView, nil
	}
	return s.URL(DatasetStandings)
}

// Policy returns the parsed rank policy. Validate has already checked it.
func (l LeagueConfig) Policy() league.RankPolicy {
	p, err := league.ParseRankPolicy(l.RankPolicy)
	if err != nil {
		return league.PolicyWins
	}
	return p
}

// MatchDefaults returns the stream time and zone for undated sheet cells.
func (l LeagueConfig) MatchDefaults() league.MatchDefaults {
	return league.MatchDefaults{Time: l.DefaultTime, Timezone: l.DefaultTimezone}
}

// TimeLocation returns the league's location, or UTC when it is unset or
// unknown.
func (l LeagueConfig) TimeLocation() *time.Location {
	if l.Location != "" {
		if loc, err := time.LoadLocation(l.Location); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Today returns the current date in the league's location.
func (l LeagueConfig) Today(now time.Time) time.Time {
	if l.Location != "" {
		if loc, err := time.LoadLocation(l.Location); err == nil {
			now = now.In(loc)
		}
	}
	return league.Day(now)
}
