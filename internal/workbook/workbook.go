package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/site"
)

// Sheet names, in workbook order.
const (
	SheetStandings = "Standings"
	SheetSchedule  = "Schedule"
	SheetStats     = "Stats"
)

var (
	standingsHeader = []interface{}{"Rank", "Team", "Abbr", "W", "L", "GP", "GD", "GF", "GA", "PTS"}
	scheduleHeader  = []interface{}{"Match", "Week", "Date", "Time", "Timezone", "Home", "Away", "Home Score", "Away Score", "Series", "Status"}
)

// New builds the workbook from loaded data. Tables that were not loaded
// get a header row only.
func New(data *site.Data) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetStandings); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetSchedule, SheetStats} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRows(f, SheetStandings, bold, standingsHeader, standingsRows(data.Standings)); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetSchedule, bold, scheduleHeader, scheduleRows(data.Schedule)); err != nil {
		return nil, err
	}
	statsHeader := make([]interface{}, len(league.StatKeys))
	for i, k := range league.StatKeys {
		statsHeader[i] = string(k)
	}
	if err := writeRows(f, SheetStats, bold, statsHeader, statsRows(data.Stats)); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, data *site.Data) error {
	f, err := New(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Save builds the workbook and saves it at path.
func Save(path string, data *site.Data) error {
	f, err := New(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 14); err != nil {
		return fmt.Errorf("sizing %s columns: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func standingsRows(standings []league.Standing) [][]interface{} {
	rows := make([][]interface{}, 0, len(standings))
	for _, s := range standings {
		var rank interface{}
		if s.Ranked {
			rank = s.Rank
		}
		rows = append(rows, []interface{}{
			rank, s.Label(), s.Abbr, s.W, s.L, s.GP, s.GD, s.GF, s.GA, s.PTS,
		})
	}
	return rows
}

func scheduleRows(matches []league.Match) [][]interface{} {
	rows := make([][]interface{}, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []interface{}{
			m.ID, m.Week, m.DateKey, m.Time, m.Timezone,
			m.Home.Label(), m.Away.Label(), m.HomeScore, m.AwayScore, m.Series, string(m.Status),
		})
	}
	return rows
}

func statsRows(lines []league.PlayerLine) [][]interface{} {
	rows := make([][]interface{}, 0, len(lines))
	for _, l := range lines {
		row := make([]interface{}, len(league.StatKeys))
		for i, k := range league.StatKeys {
			if k.Numeric() {
				row[i] = l.Value(k)
			} else {
				row[i] = l.Text(k)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
