package league

import "github.com/pfrederiksen/rlol/internal/tabular"

// Team is one entry of the teams sheet.
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Abbr    string `json:"abbr,omitempty"`
	Captain string `json:"captain,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// Label returns the best display name for the team.
func (t Team) Label() string {
	switch {
	case t.Name != "":
		return t.Name
	case t.Abbr != "":
		return t.Abbr
	case t.ID != "":
		return t.ID
	}
	return "TBD"
}

// BuildTeams reads the teams sheet. A row without an id is keyed by its
// name; rows with neither are skipped.
func BuildTeams(rows []tabular.Row) []Team {
	teams := make([]Team, 0, len(rows))
	for _, row := range rows {
		name := FieldTeamName.String(row, "")
		id := FieldTeamID.String(row, name)
		if id == "" {
			continue
		}
		teams = append(teams, Team{
			ID:      id,
			Name:    FieldTeamName.String(row, id),
			Abbr:    FieldAbbr.String(row, ""),
			Captain: FieldCaptain.String(row, ""),
			Logo:    FieldLogo.String(row, ""),
		})
	}
	return teams
}

// TeamMap indexes teams by id. The zero value is an empty map.
type TeamMap struct {
	byID map[string]Team
}

// NewTeamMap indexes teams; a later duplicate id replaces an earlier one.
func NewTeamMap(teams []Team) TeamMap {
	m := TeamMap{byID: make(map[string]Team, len(teams))}
	for _, t := range teams {
		m.byID[t.ID] = t
	}
	return m
}

// Lookup returns the team with the given id.
func (m TeamMap) Lookup(id string) (Team, bool) {
	t, ok := m.byID[id]
	return t, ok
}

// Resolve returns the team for id, or a placeholder named after the id
// ("TBD" when id is empty).
func (m TeamMap) Resolve(id string) Team {
	if t, ok := m.byID[id]; ok {
		return t
	}
	name := id
	if name == "" {
		name = "TBD"
	}
	return Team{ID: id, Name: name}
}

// Len returns the number of teams.
func (m TeamMap) Len() int {
	return len(m.byID)
}
