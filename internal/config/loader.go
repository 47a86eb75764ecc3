package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/logger"
)

// envOverrides maps environment variables onto config fields.
var envOverrides = map[string]func(*Config, string){
	"RLOL_TEAMS_CSV":               func(c *Config, v string) { c.Sources.Teams = v },
	"RLOL_SCHEDULE_CSV":            func(c *Config, v string) { c.Sources.Schedule = v },
	"RLOL_STANDINGS_CSV":           func(c *Config, v string) { c.Sources.Standings = v },
	"RLOL_STANDINGS_VIEW_CSV":      func(c *Config, v string) { c.Sources.StandingsView = v },
	"RLOL_PLAYER_GAME_STATS_CSV":   func(c *Config, v string) { c.Sources.PlayerGameStats = v },
	"RLOL_PLAYER_SEASON_STATS_CSV": func(c *Config, v string) { c.Sources.PlayerSeasonStats = v },
	"RLOL_LOG_LEVEL":               func(c *Config, v string) { c.Log.Level = v },
	"RLOL_RANK_POLICY":             func(c *Config, v string) { c.League.RankPolicy = v },
	"RLOL_ADDR":                    func(c *Config, v string) { c.Server.Addr = v },
	"RLOL_USER_AGENT":              func(c *Config, v string) { c.HTTP.UserAgent = v },
	"RLOL_SITE_DIR":                func(c *Config, v string) { c.Site.OutputDir = v },
}

// Load builds the configuration: defaults, then the file at path (if path
// is non-empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile reads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml, or .toml)", ext)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for key, set := range envOverrides {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			set(c, strings.TrimSpace(v))
		}
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	sources := map[string]string{
		DatasetTeams:             c.Sources.Teams,
		DatasetSchedule:          c.Sources.Schedule,
		DatasetStandings:         c.Sources.Standings,
		DatasetStandingsView:     c.Sources.StandingsView,
		DatasetPlayerGameStats:   c.Sources.PlayerGameStats,
		DatasetPlayerSeasonStats: c.Sources.PlayerSeasonStats,
	}
	for _, name := range []string{
		DatasetTeams, DatasetSchedule, DatasetStandings,
		DatasetStandingsView, DatasetPlayerGameStats, DatasetPlayerSeasonStats,
	} {
		raw := sources[name]
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("sources.%s must be an http(s) URL, got %q", name, raw))
		}
	}

	if c.HTTP.Timeout.Duration <= 0 {
		errs = append(errs, "http.timeout must be positive")
	}
	if c.HTTP.RequestsPerSecond < 0 {
		errs = append(errs, "http.requests_per_second must be non-negative")
	}
	if c.HTTP.RequestsPerSecond > 0 && c.HTTP.Burst <= 0 {
		errs = append(errs, "http.burst must be positive when a request rate is set")
	}

	if _, err := league.ParseRankPolicy(c.League.RankPolicy); err != nil {
		errs = append(errs, "league."+err.Error())
	}
	if c.League.SnapshotSize <= 0 {
		errs = append(errs, "league.snapshot_size must be positive")
	}
	if c.League.Location != "" {
		if _, err := time.LoadLocation(c.League.Location); err != nil {
			errs = append(errs, fmt.Sprintf("league.location %q is not a known time zone", c.League.Location))
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, "log."+err.Error())
	}

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	if c.Site.OutputDir == "" {
		errs = append(errs, "site.output_dir is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
