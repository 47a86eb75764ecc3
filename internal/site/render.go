package site

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/pfrederiksen/rlol/internal/filter"
	"github.com/pfrederiksen/rlol/internal/league"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"num": league.FormatNumber,
}

var templates = map[string]*template.Template{
	"hub":       parse("hub"),
	"teams":     parse("teams"),
	"schedule":  parse("schedule"),
	"standings": parse("standings"),
	"stats":     parse("stats"),
	"error":     parse("error"),
}

func parse(name string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
}

// Options controls how pages link to each other.
type Options struct {
	// Base prefixes every internal link: "/" on the server, "../" or "./"
	// for static pages depending on their depth.
	Base string
	// Interactive renders filter forms and sortable headers.
	Interactive bool
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

// frame is the data every page shares with the layout.
type frame struct {
	SiteTitle   string
	Heading     string
	Base        string
	Nav         []navLink
	Generated   string
	Interactive bool
}

var pageTitles = map[Page]string{
	PageHub:       "Hub",
	PageSchedule:  "Schedule",
	PageStandings: "Standings",
	PageStats:     "Stats",
	PageTeams:     "Teams",
}

// Path returns the page's directory relative to the site root.
func (p Page) Path() string {
	if p == PageHub {
		return ""
	}
	return string(p) + "/"
}

func newFrame(data *Data, page Page, opts Options) frame {
	title := data.Title
	if title == "" {
		title = "RLOL"
	}
	f := frame{
		SiteTitle:   title,
		Heading:     pageTitles[page],
		Base:        opts.Base,
		Generated:   data.GeneratedAt.Format(time.RFC1123),
		Interactive: opts.Interactive,
	}
	for _, p := range Pages {
		f.Nav = append(f.Nav, navLink{
			Label:  pageTitles[p],
			Href:   opts.Base + p.Path(),
			Active: p == page,
		})
	}
	return f
}

type hubPage struct {
	frame
	Hub league.Hub
}

// RenderHub writes the landing page.
func RenderHub(w io.Writer, data *Data, opts Options) error {
	page := hubPage{frame: newFrame(data, PageHub, opts)}
	if data.Hub != nil {
		page.Hub = *data.Hub
	}
	return templates["hub"].ExecuteTemplate(w, "layout", page)
}

type teamsPage struct {
	frame
	Teams []league.Team
}

// RenderTeams writes the teams grid.
func RenderTeams(w io.Writer, data *Data, opts Options) error {
	page := teamsPage{frame: newFrame(data, PageTeams, opts), Teams: data.Teams}
	return templates["teams"].ExecuteTemplate(w, "layout", page)
}

type schedulePage struct {
	frame
	Filter     league.ScheduleFilter
	FilterText string
	Status     string
	Dates      string
	Statuses   []string
	Weeks      []string
	Groups     []league.WeekGroup
	Counts     league.ScheduleCounts
	Today      time.Time
}

// RenderSchedule writes the schedule grouped by week. dates is the raw
// date range text echoed back into the form.
func RenderSchedule(w io.Writer, data *Data, f league.ScheduleFilter, dates string, opts Options) error {
	shown := f.Apply(data.Schedule)
	status := f.Status
	if status == "" {
		status = "all"
	}
	page := schedulePage{
		frame:      newFrame(data, PageSchedule, opts),
		Filter:     f,
		FilterText: filter.Describe(f),
		Status:     status,
		Dates:      dates,
		Statuses:   filter.StatusChoices(),
		Weeks:      league.Weeks(data.Schedule),
		Groups:     league.GroupByWeek(shown),
		Counts:     league.CountMatches(data.Schedule, shown),
		Today:      data.Today,
	}
	return templates["schedule"].ExecuteTemplate(w, "layout", page)
}

// column is a sortable table header.
type column struct {
	Label string
	Href  string
	Arrow string
}

func sortColumn(label, key string, current string, dir league.Direction, next league.Direction, extra url.Values) column {
	q := url.Values{}
	for k, v := range extra {
		if len(v) > 0 && v[0] != "" {
			q.Set(k, v[0])
		}
	}
	q.Set("sort", key)
	q.Set("dir", string(next))
	c := column{Label: label, Href: "?" + q.Encode()}
	if key == current {
		if dir == league.Asc {
			c.Arrow = " ▲"
		} else {
			c.Arrow = " ▼"
		}
	}
	return c
}

type standingsPage struct {
	frame
	View    league.StandingsView
	Columns []column
	Rows    []league.Standing
}

var standingsColumns = []struct {
	Label string
	Key   league.SortKey
}{
	{"#", league.SortRank},
	{"Team", league.SortTeam},
	{"Record", league.SortW},
	{"GP", league.SortGP},
	{"GD", league.SortGD},
	{"GF", league.SortGF},
	{"GA", league.SortGA},
	{"PTS", league.SortPTS},
}

// RenderStandings writes the standings table in the view's order.
func RenderStandings(w io.Writer, data *Data, v league.StandingsView, opts Options) error {
	if v.Key == "" {
		v.Key = league.SortRank
	}
	if v.Dir == "" {
		v.Dir = league.DefaultDirection(v.Key)
	}
	page := standingsPage{
		frame: newFrame(data, PageStandings, opts),
		View:  v,
		Rows:  v.Apply(data.Standings),
	}
	extra := url.Values{"q": {v.Query}}
	for _, c := range standingsColumns {
		next := league.DefaultDirection(c.Key)
		if c.Key == v.Key {
			next = v.Dir.Toggle()
		}
		page.Columns = append(page.Columns, sortColumn(c.Label, string(c.Key), string(v.Key), v.Dir, next, extra))
	}
	return templates["standings"].ExecuteTemplate(w, "layout", page)
}

type leaderCard struct {
	Label string
	Line  league.PlayerLine
	Value string
	Found bool
}

type statsPage struct {
	frame
	View     league.StatsView
	Leaders  []leaderCard
	Teams    []string
	Keys     []league.StatKey
	Columns  []column
	Rows     []league.PlayerLine
	TopLimit int
}

// RenderStats writes the leader cards and the player table.
func RenderStats(w io.Writer, data *Data, v league.StatsView, opts Options) error {
	if v.Key == "" {
		v.Key = league.StatScore
	}
	if v.Dir == "" {
		v.Dir = v.Key.DefaultDirection()
	}
	page := statsPage{
		frame:    newFrame(data, PageStats, opts),
		View:     v,
		Teams:    league.StatTeams(data.Stats),
		Keys:     league.StatKeys,
		Rows:     v.Apply(data.Stats),
		TopLimit: league.TopLimit,
	}
	for _, m := range league.Leaders {
		line, ok := league.Leader(data.Stats, m.Key)
		card := leaderCard{Label: m.Label, Line: line, Found: ok}
		if ok {
			card.Value = line.Text(m.Key)
		}
		page.Leaders = append(page.Leaders, card)
	}
	extra := url.Values{"q": {v.Query}, "team": {v.Team}}
	if v.TopOnly {
		extra.Set("top", "1")
	}
	for _, k := range league.StatKeys {
		next := k.DefaultDirection()
		if k == v.Key {
			next = v.Dir.Toggle()
		}
		page.Columns = append(page.Columns, sortColumn(string(k), string(k), string(v.Key), v.Dir, next, extra))
	}
	return templates["stats"].ExecuteTemplate(w, "layout", page)
}

type errorPage struct {
	frame
	What    string
	Message string
}

// RenderError writes the "Failed to load" page for a page whose sheets
// could not be loaded.
func RenderError(w io.Writer, title string, page Page, err error, opts Options) error {
	p := errorPage{
		frame: newFrame(&Data{Title: title, GeneratedAt: time.Now()}, page, opts),
		What:  pageTitles[page],
	}
	if p.What == "" {
		p.What = "page"
	}
	if err != nil {
		p.Message = err.Error()
	}
	return templates["error"].ExecuteTemplate(w, "layout", p)
}
