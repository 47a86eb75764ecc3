package league

import (
	"strings"
	"testing"
)

const standingsCSV = "team_id,team_name,GP,W,L,GF,GA,GD,PTS\n" +
	"bear,Bears,6,2,4,9,15,-6,6\n" +
	"fox,Fox Sheet,,5,1,20,10,10,15\n" +
	"owl,Owls,6,2,4,12,12,0,7\n" +
	"wolf,Wolves,6,5,1,18,10,8,15\n"

func teamIDs(rows []Standing) string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	return strings.Join(ids, ",")
}

func testStandings(t *testing.T) []Standing {
	t.Helper()
	return BuildStandings(rowsOf(t, standingsCSV), testTeams(t), PolicyWins)
}

func TestBuildStandings(t *testing.T) {
	rows := testStandings(t)

	if got := teamIDs(rows); got != "fox,wolf,owl,bear" {
		t.Fatalf("BuildStandings() order = %s, want fox,wolf,owl,bear", got)
	}
	for i, r := range rows {
		if r.Rank != i+1 || !r.Ranked {
			t.Errorf("rows[%d].Rank = %d (ranked %v), want %d", i, r.Rank, r.Ranked, i+1)
		}
	}

	fox := rows[0]
	if fox.Team != "Foxes" {
		t.Errorf("Team = %q, want the teams sheet name Foxes", fox.Team)
	}
	if fox.Logo != "https://example.com/fox.png" || fox.Abbr != "FOX" {
		t.Errorf("logo/abbr = %q/%q, want them from the teams sheet", fox.Logo, fox.Abbr)
	}
	if fox.GP != 6 {
		t.Errorf("GP = %v, want W+L = 6", fox.GP)
	}
	if fox.Record() != "5-1" {
		t.Errorf("Record() = %q, want 5-1", fox.Record())
	}
	if rows[3].GD != -6 {
		t.Errorf("bear GD = %v, want -6", rows[3].GD)
	}
}

func TestBuildStandings_RankColumn(t *testing.T) {
	rows := BuildStandings(rowsOf(t, "rank,team,W,L\n2,Foxes,5,1\n1,Wolves,6,0\n,Owls,0,6\n"), NewTeamMap(nil), PolicyWins)

	if len(rows) != 3 {
		t.Fatalf("BuildStandings() returned %d rows, want 3", len(rows))
	}
	if rows[0].Team != "Foxes" || rows[0].Rank != 2 || !rows[0].Ranked {
		t.Errorf("rows[0] = %+v, want sheet rank 2 kept in sheet order", rows[0])
	}
	if rows[2].Ranked || rows[2].RankText() != "" {
		t.Errorf("row without rank should be unranked, got %q", rows[2].RankText())
	}
	if rows[1].RankText() != "1" {
		t.Errorf("RankText() = %q, want 1", rows[1].RankText())
	}
}

func TestRank(t *testing.T) {
	base := []Standing{
		{TeamID: "a", Team: "A", W: 3, PTS: 9, GD: 1},
		{TeamID: "b", Team: "B", W: 2, PTS: 10, GD: 5},
		{TeamID: "c", Team: "C", W: 3, PTS: 9, GD: 1, GF: 4},
		{TeamID: "d", Team: "D", W: 3, PTS: 9, GD: 1, GF: 4},
	}

	tests := []struct {
		policy RankPolicy
		want   string
	}{
		{PolicyWins, "c,d,a,b"},
		{PolicyPoints, "b,a,c,d"},
		{PolicySheet, "a,b,c,d"},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			rows := append([]Standing(nil), base...)
			Rank(rows, tt.policy)
			if got := teamIDs(rows); got != tt.want {
				t.Errorf("Rank(%s) = %s, want %s", tt.policy, got, tt.want)
			}
			if rows[0].Rank != 1 || rows[3].Rank != 4 {
				t.Errorf("ranks = %d..%d, want 1..4", rows[0].Rank, rows[3].Rank)
			}
		})
	}
}

func TestParseRankPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    RankPolicy
		wantErr bool
	}{
		{"", PolicyWins, false},
		{"wins", PolicyWins, false},
		{" Points ", PolicyPoints, false},
		{"sheet", PolicySheet, false},
		{"goals", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRankPolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRankPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRankPolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSortStandings(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		dir  Direction
		want string
	}{
		{name: "rank asc", key: SortRank, dir: Asc, want: "fox,wolf,owl,bear"},
		{name: "team desc", key: SortTeam, dir: Desc, want: "wolf,owl,fox,bear"},
		{name: "losses asc ties on goal difference", key: SortL, dir: Asc, want: "fox,wolf,owl,bear"},
		{name: "goals against desc", key: SortGA, dir: Desc, want: "bear,owl,fox,wolf"},
		{name: "points asc", key: SortPTS, dir: Asc, want: "bear,owl,fox,wolf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := testStandings(t)
			SortStandings(rows, tt.key, tt.dir)
			if got := teamIDs(rows); got != tt.want {
				t.Errorf("SortStandings(%s, %s) = %s, want %s", tt.key, tt.dir, got, tt.want)
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortRank, false},
		{"GD", SortGD, false},
		{"record", SortW, false},
		{"elo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseSortKey(%q) = %q, %v", tt.input, got, err)
		}
	}

	if DefaultDirection(SortTeam) != Asc || DefaultDirection(SortPTS) != Desc {
		t.Error("DefaultDirection() should be asc for team and desc for counts")
	}
	if d, err := ParseDirection("", Desc); err != nil || d != Desc {
		t.Errorf("ParseDirection(\"\") = %q, %v", d, err)
	}
	if _, err := ParseDirection("up", Asc); err == nil {
		t.Error("ParseDirection(up) should fail")
	}
	if Asc.Toggle() != Desc {
		t.Error("Toggle() should flip asc to desc")
	}
}

func TestSearchStandings(t *testing.T) {
	rows := testStandings(t)

	tests := []struct {
		query string
		want  string
	}{
		{"", "fox,wolf,owl,bear"},
		{"wol", "wolf"},
		{"FOX", "fox"},
		{"wlf", "wolf"},
		{"zzz", ""},
	}
	for _, tt := range tests {
		if got := teamIDs(SearchStandings(rows, tt.query)); got != tt.want {
			t.Errorf("SearchStandings(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	rows := testStandings(t)
	SortStandings(rows, SortTeam, Asc)

	top := Snapshot(rows, PolicyWins, 2)
	if got := teamIDs(top); got != "fox,wolf" {
		t.Errorf("Snapshot() = %s, want fox,wolf", got)
	}
	if got := teamIDs(rows); got != "bear,fox,owl,wolf" {
		t.Errorf("Snapshot() modified its input: %s", got)
	}
}

func TestStandingsView_Apply(t *testing.T) {
	rows := testStandings(t)

	got := StandingsView{Key: SortGA, Limit: 2}.Apply(rows)
	if ids := teamIDs(got); ids != "bear,owl" {
		t.Errorf("Apply() = %s, want bear,owl", ids)
	}

	got = StandingsView{Query: "o"}.Apply(rows)
	if ids := teamIDs(got); ids != "fox,wolf,owl" {
		t.Errorf("Apply() = %s, want fox,wolf,owl", ids)
	}
}
