package site

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/rlol/internal/calendar"
	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/logger"
)

// CalendarFile is the feed written next to index.html.
const CalendarFile = "schedule.ics"

// Build writes the static site for every loaded page into dir and
// returns the paths written, relative to dir.
func Build(dir string, data *Data, cal calendar.Options) ([]string, error) {
	var written []string
	write := func(rel string, content []byte) error {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		written = append(written, filepath.ToSlash(rel))
		return nil
	}

	for _, page := range Pages {
		if !data.Has(page) {
			continue
		}
		opts := Options{Base: "../"}
		if page == PageHub {
			opts.Base = "./"
		}

		var buf bytes.Buffer
		if err := RenderPage(&buf, page, data, opts); err != nil {
			return written, fmt.Errorf("rendering %s: %w", page, err)
		}
		if err := write(filepath.Join(page.Path(), "index.html"), buf.Bytes()); err != nil {
			return written, err
		}
	}

	if data.Has(PageSchedule) {
		if cal.Name == "" {
			cal.Name = data.Title
		}
		ics := calendar.GenerateICS(data.Schedule, cal)
		if err := write(CalendarFile, []byte(ics)); err != nil {
			return written, err
		}
	}

	logger.Info("Site built", logger.Fields{"dir": dir, "files": len(written)})
	return written, nil
}

// RenderPage renders a page with its default view.
func RenderPage(w io.Writer, page Page, data *Data, opts Options) error {
	switch page {
	case PageHub:
		return RenderHub(w, data, opts)
	case PageTeams:
		return RenderTeams(w, data, opts)
	case PageSchedule:
		return RenderSchedule(w, data, league.ScheduleFilter{}, "", opts)
	case PageStandings:
		return RenderStandings(w, data, league.StandingsView{}, opts)
	case PageStats:
		return RenderStats(w, data, league.DefaultStatsView, opts)
	}
	return fmt.Errorf("unknown page %q", page)
}
