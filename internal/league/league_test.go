package league

import (
	"testing"

	"github.com/pfrederiksen/rlol/internal/tabular"
)

func rowsOf(t *testing.T, text string) []tabular.Row {
	t.Helper()
	rows, err := tabular.ParseRows(text)
	if err != nil {
		t.Fatalf("ParseRows() error: %v", err)
	}
	return rows
}

func testTeams(t *testing.T) TeamMap {
	t.Helper()
	return NewTeamMap(BuildTeams(rowsOf(t,
		"team_id,team_name,abbr,captain,logo_url\n"+
			"fox,Foxes,FOX,Ann,https://example.com/fox.png\n"+
			"wolf,Wolves,WLF,,\n"+
			"bear,Bears,,,\n")))
}
