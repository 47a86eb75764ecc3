package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/source"
)

// Page names one page of the site.
type Page string

const (
	PageHub       Page = "hub"
	PageTeams     Page = "teams"
	PageSchedule  Page = "schedule"
	PageStandings Page = "standings"
	PageStats     Page = "stats"
)

// Pages lists every page in navigation order.
var Pages = []Page{PageHub, PageSchedule, PageStandings, PageStats, PageTeams}

// ParsePage checks a page name.
func ParsePage(s string) (Page, error) {
	for _, p := range Pages {
		if string(p) == strings.ToLower(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// StatsSource selects which sheet feeds the stats page.
type StatsSource string

const (
	// StatsFromGames aggregates the per-game sheet.
	StatsFromGames StatsSource = "game"
	// StatsFromSeason reads the pre-aggregated season sheet.
	StatsFromSeason StatsSource = "season"
)

// ParseStatsSource accepts "game", "games", "season"; "" is game.
func ParseStatsSource(s string) (StatsSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "game", "games":
		return StatsFromGames, nil
	case "season":
		return StatsFromSeason, nil
	}
	return "", fmt.Errorf("invalid stats source %q: must be game or season", s)
}

// Datasets returns the sheets a page is built from.
func (p Page) Datasets(stats StatsSource) []source.Dataset {
	switch p {
	case PageHub:
		return []source.Dataset{source.Teams, source.Schedule, source.StandingsView}
	case PageTeams:
		return []source.Dataset{source.Teams}
	case PageSchedule:
		return []source.Dataset{source.Teams, source.Schedule}
	case PageStandings:
		return []source.Dataset{source.Teams, source.Standings}
	case PageStats:
		if stats == StatsFromSeason {
			return []source.Dataset{source.PlayerSeasonStats}
		}
		return []source.Dataset{source.PlayerGameStats}
	}
	return nil
}

// Data is everything the pages render.
type Data struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	Today       time.Time           `json:"-"`
	Policy      league.RankPolicy   `json:"rank_policy"`
	Pages       []Page              `json:"pages"`
	Teams       []league.Team       `json:"teams,omitempty"`
	Schedule    []league.Match      `json:"schedule,omitempty"`
	Standings   []league.Standing   `json:"standings,omitempty"`
	Stats       []league.PlayerLine `json:"stats,omitempty"`
	StatsSource StatsSource         `json:"stats_source,omitempty"`
	Hub         *league.Hub         `json:"hub,omitempty"`
}

// Has reports whether the page was loaded.
func (d *Data) Has(p Page) bool {
	for _, q := range d.Pages {
		if q == p {
			return true
		}
	}
	return false
}

// Loader fetches datasets and assembles page data.
type Loader struct {
	fetcher *source.Fetcher
	cfg     *config.Config
	stats   StatsSource
	now     func() time.Time
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStatsSource selects the stats sheet.
func WithStatsSource(s StatsSource) LoaderOption {
	return func(l *Loader) { l.stats = s }
}

// WithNow sets the clock used for "today".
func WithNow(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// NewLoader creates a Loader.
func NewLoader(f *source.Fetcher, cfg *config.Config, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher: f,
		cfg:     cfg,
		stats:   StatsFromGames,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Plan returns the URLs needed by pages.
func (l *Loader) Plan(pages ...Page) (map[source.Dataset]string, error) {
	seen := make(map[source.Dataset]bool)
	var datasets []source.Dataset
	for _, p := range pages {
		for _, d := range p.Datasets(l.stats) {
			if !seen[d] {
				seen[d] = true
				datasets = append(datasets, d)
			}
		}
	}
	return source.Plan(l.cfg.Sources, datasets...)
}

// Load fetches the sheets behind pages and builds their view models.
// Any failed sheet fails the whole load.
func (l *Loader) Load(ctx context.Context, pages ...Page) (*Data, error) {
	if len(pages) == 0 {
		pages = Pages
	}
	plan, err := l.Plan(pages...)
	if err != nil {
		return nil, err
	}
	tables, err := l.fetcher.FetchAll(ctx, plan)
	if err != nil {
		return nil, err
	}
	return l.Assemble(tables, pages...), nil
}

// Assemble builds page data from already decoded tables.
func (l *Loader) Assemble(tables source.Tables, pages ...Page) *Data {
	now := l.now()
	policy := l.cfg.League.Policy()
	data := &Data{
		Title:       l.cfg.Site.Title,
		GeneratedAt: now,
		Today:       l.cfg.League.Today(now),
		Policy:      policy,
		Pages:       pages,
	}

	teams := league.BuildTeams(tables.Rows(source.Teams))
	teamMap := league.NewTeamMap(teams)
	if data.Has(PageTeams) {
		data.Teams = teams
	}

	if data.Has(PageSchedule) || data.Has(PageHub) {
		data.Schedule = league.BuildSchedule(tables.Rows(source.Schedule), teamMap, l.cfg.League.MatchDefaults())
	}

	if data.Has(PageStandings) {
		data.Standings = league.BuildStandings(tables.Rows(source.Standings), teamMap, policy)
	}

	if data.Has(PageHub) {
		snapshot := league.BuildStandings(tables.Rows(source.StandingsView), teamMap, policy)
		hub := league.BuildHub(data.Schedule, snapshot, data.Today, policy, l.cfg.League.SnapshotSize)
		data.Hub = &hub
	}

	if data.Has(PageStats) {
		data.StatsSource = l.stats
		if l.stats == StatsFromSeason {
			data.Stats = league.BuildSeasonStats(tables.Rows(source.PlayerSeasonStats))
		} else {
			data.Stats = league.AggregateGameStats(tables.Rows(source.PlayerGameStats))
		}
	}

	return data
}
