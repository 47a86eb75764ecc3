package league

import "testing"

func TestBuildTeams(t *testing.T) {
	rows := rowsOf(t, "team_id,team_name,abbr,captain,logo_url\n"+
		"fox,Foxes,FOX,Ann,https://example.com/fox.png\n"+
		",,,,\n"+
		"wolf,,WLF,,\n"+
		",Bears,,,\n")

	teams := BuildTeams(rows)
	if len(teams) != 3 {
		t.Fatalf("BuildTeams() returned %d teams, want 3", len(teams))
	}

	want := []Team{
		{ID: "fox", Name: "Foxes", Abbr: "FOX", Captain: "Ann", Logo: "https://example.com/fox.png"},
		{ID: "wolf", Name: "wolf", Abbr: "WLF"},
		{ID: "Bears", Name: "Bears"},
	}
	for i, w := range want {
		if teams[i] != w {
			t.Errorf("teams[%d] = %+v, want %+v", i, teams[i], w)
		}
	}
}

func TestBuildTeams_HeaderVariants(t *testing.T) {
	rows := rowsOf(t, "Team ID,Team,Owner\nfox,Foxes,Ann\n")
	teams := BuildTeams(rows)
	if len(teams) != 1 {
		t.Fatalf("BuildTeams() returned %d teams, want 1", len(teams))
	}
	if teams[0].ID != "fox" || teams[0].Name != "Foxes" || teams[0].Captain != "Ann" {
		t.Errorf("BuildTeams() = %+v", teams[0])
	}
}

func TestTeamMap_Resolve(t *testing.T) {
	m := testTeams(t)

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "known team", id: "fox", want: "Foxes"},
		{name: "unknown id shows id", id: "ghost", want: "ghost"},
		{name: "empty id", id: "", want: "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Resolve(tt.id).Name; got != tt.want {
				t.Errorf("Resolve(%q).Name = %q, want %q", tt.id, got, tt.want)
			}
		})
	}

	if _, ok := m.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) should report false")
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestTeam_Label(t *testing.T) {
	tests := []struct {
		team Team
		want string
	}{
		{Team{ID: "fox", Name: "Foxes", Abbr: "FOX"}, "Foxes"},
		{Team{ID: "fox", Abbr: "FOX"}, "FOX"},
		{Team{ID: "fox"}, "fox"},
		{Team{}, "TBD"},
	}
	for _, tt := range tests {
		if got := tt.team.Label(); got != tt.want {
			t.Errorf("%+v.Label() = %q, want %q", tt.team, got, tt.want)
		}
	}
}
