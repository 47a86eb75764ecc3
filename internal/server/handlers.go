package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pfrederiksen/rlol/internal/calendar"
	"github.com/pfrederiksen/rlol/internal/filter"
	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/site"
)

var htmlOptions = site.Options{Base: "/", Interactive: true}

// badRequest marks errors caused by query parameters.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func (s *Server) load(r *http.Request, page site.Page, stats site.StatsSource) (*site.Data, error) {
	loader := site.NewLoader(s.fetcher, s.cfg,
		site.WithNow(s.now),
		site.WithStatsSource(stats),
	)
	return loader.Load(r.Context(), page)
}

// renderPage loads page and renders it into a buffer so a failure never
// leaves a half-written 200 response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page site.Page, stats site.StatsSource,
	render func(*bytes.Buffer, *site.Data) error) {
	data, err := s.load(r, page, stats)
	if err != nil {
		s.failPage(w, r, page, http.StatusBadGateway, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, data); err != nil {
		s.failPage(w, r, page, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes()) // nolint:errcheck
}

func (s *Server) failPage(w http.ResponseWriter, r *http.Request, page site.Page, status int, err error) {
	s.log.Error("Page failed", logger.Fields{
		"request_id": chiRequestID(r),
		"page":       string(page),
		"status":     status,
	}, err)

	var buf bytes.Buffer
	if rerr := site.RenderError(&buf, s.cfg.Site.Title, page, err, htmlOptions); rerr != nil {
		http.Error(w, "Failed to load "+string(page), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) // nolint:errcheck
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, site.PageHub, site.StatsFromGames, func(buf *bytes.Buffer, data *site.Data) error {
		return site.RenderHub(buf, data, htmlOptions)
	})
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, site.PageTeams, site.StatsFromGames, func(buf *bytes.Buffer, data *site.Data) error {
		return site.RenderTeams(buf, data, htmlOptions)
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	f, dates, err := s.scheduleFilter(r)
	if err != nil {
		s.failPage(w, r, site.PageSchedule, http.StatusBadRequest, err)
		return
	}
	s.renderPage(w, r, site.PageSchedule, site.StatsFromGames, func(buf *bytes.Buffer, data *site.Data) error {
		return site.RenderSchedule(buf, data, f, dates, htmlOptions)
	})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	view, err := standingsView(r)
	if err != nil {
		s.failPage(w, r, site.PageStandings, http.StatusBadRequest, err)
		return
	}
	s.renderPage(w, r, site.PageStandings, site.StatsFromGames, func(buf *bytes.Buffer, data *site.Data) error {
		return site.RenderStandings(buf, data, view, htmlOptions)
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	view, src, err := statsView(r)
	if err != nil {
		s.failPage(w, r, site.PageStats, http.StatusBadRequest, err)
		return
	}
	s.renderPage(w, r, site.PageStats, src, func(buf *bytes.Buffer, data *site.Data) error {
		return site.RenderStats(buf, data, view, htmlOptions)
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	data, err := s.load(r, site.PageSchedule, site.StatsFromGames)
	if err != nil {
		s.log.Error("Calendar failed", logger.Fields{"request_id": chiRequestID(r)}, err)
		http.Error(w, "Failed to load schedule", http.StatusBadGateway)
		return
	}
	ics := calendar.GenerateICS(data.Schedule, calendar.Options{
		Name:     s.cfg.Site.Title,
		Now:      s.now(),
		URL:      "http://" + r.Host + "/schedule",
		Location: s.cfg.League.TimeLocation(),
	})
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write([]byte(ics)) // nolint:errcheck
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n")) // nolint:errcheck
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fetcher.Metrics().Snapshot())
}

// handleAPI serves the view models as JSON with the same query parameters
// as the pages.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	page, err := site.ParsePage(chi.URLParam(r, "view"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.apiResult(r, page)
	if err != nil {
		status := http.StatusBadGateway
		var bad badRequest
		if errors.As(err, &bad) {
			status = http.StatusBadRequest
		}
		s.log.Error("API request failed", logger.Fields{
			"request_id": chiRequestID(r),
			"view":       string(page),
			"status":     status,
		}, err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) apiResult(r *http.Request, page site.Page) (interface{}, error) {
	switch page {
	case site.PageHub:
		data, err := s.load(r, page, site.StatsFromGames)
		if err != nil {
			return nil, err
		}
		return data.Hub, nil

	case site.PageTeams:
		data, err := s.load(r, page, site.StatsFromGames)
		if err != nil {
			return nil, err
		}
		return data.Teams, nil

	case site.PageSchedule:
		f, _, err := s.scheduleFilter(r)
		if err != nil {
			return nil, err
		}
		data, err := s.load(r, page, site.StatsFromGames)
		if err != nil {
			return nil, err
		}
		shown := f.Apply(data.Schedule)
		return map[string]interface{}{
			"filter": filter.Describe(f),
			"counts": league.CountMatches(data.Schedule, shown),
			"weeks":  league.GroupByWeek(shown),
		}, nil

	case site.PageStandings:
		view, err := standingsView(r)
		if err != nil {
			return nil, err
		}
		data, err := s.load(r, page, site.StatsFromGames)
		if err != nil {
			return nil, err
		}
		return view.Apply(data.Standings), nil

	case site.PageStats:
		view, src, err := statsView(r)
		if err != nil {
			return nil, err
		}
		data, err := s.load(r, page, src)
		if err != nil {
			return nil, err
		}
		return view.Apply(data.Stats), nil
	}
	return nil, badRequest{errors.New("unknown view")}
}

func (s *Server) scheduleFilter(r *http.Request) (league.ScheduleFilter, string, error) {
	q := r.URL.Query()
	dates := q.Get("dates")
	f, err := filter.Schedule(filter.Options{
		Status: q.Get("status"),
		Week:   q.Get("week"),
		Query:  q.Get("q"),
		Dates:  dates,
	}, s.cfg.League.Today(s.now()))
	if err != nil {
		return league.ScheduleFilter{}, "", badRequest{err}
	}
	return f, dates, nil
}

func standingsView(r *http.Request) (league.StandingsView, error) {
	q := r.URL.Query()
	key, err := league.ParseSortKey(q.Get("sort"))
	if err != nil {
		return league.StandingsView{}, badRequest{err}
	}
	dir, err := league.ParseDirection(q.Get("dir"), league.DefaultDirection(key))
	if err != nil {
		return league.StandingsView{}, badRequest{err}
	}
	view := league.StandingsView{Key: key, Dir: dir, Query: q.Get("q")}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return league.StandingsView{}, badRequest{errors.New("limit must be a non-negative integer")}
		}
		view.Limit = n
	}
	return view, nil
}

func statsView(r *http.Request) (league.StatsView, site.StatsSource, error) {
	q := r.URL.Query()
	src, err := site.ParseStatsSource(q.Get("source"))
	if err != nil {
		return league.StatsView{}, "", badRequest{err}
	}
	key, err := league.ParseStatKey(q.Get("sort"))
	if err != nil {
		return league.StatsView{}, "", badRequest{err}
	}
	dir, err := league.ParseDirection(q.Get("dir"), key.DefaultDirection())
	if err != nil {
		return league.StatsView{}, "", badRequest{err}
	}
	top, err := parseTop(q.Get("top"))
	if err != nil {
		return league.StatsView{}, "", badRequest{err}
	}
	return league.StatsView{
		Key:     key,
		Dir:     dir,
		Query:   q.Get("q"),
		Team:    q.Get("team"),
		TopOnly: top,
	}, src, nil
}

// parseTop reads the top-rows toggle. Besides booleans it accepts the
// stats page view selector values "top" and "all".
func parseTop(raw string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "all":
		return false, nil
	case "top":
		return true, nil
	}
	top, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid top %q: must be top, all or a boolean", raw)
	}
	return top, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v) // nolint:errcheck
}
