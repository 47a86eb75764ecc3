package source

import (
	"fmt"

	"github.com/pfrederiksen/rlol/internal/config"
)

// Dataset names one published sheet.
type Dataset string

const (
	Teams             Dataset = config.DatasetTeams
	Schedule          Dataset = config.DatasetSchedule
	Standings         Dataset = config.DatasetStandings
	StandingsView     Dataset = config.DatasetStandingsView
	PlayerGameStats   Dataset = config.DatasetPlayerGameStats
	PlayerSeasonStats Dataset = config.DatasetPlayerSeasonStats
)

// Datasets lists every dataset in a stable order.
var Datasets = []Dataset{Teams, Schedule, Standings, StandingsView, PlayerGameStats, PlayerSeasonStats}

// ParseDataset checks a dataset name.
func ParseDataset(s string) (Dataset, error) {
	for _, d := range Datasets {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", config.ErrUnknownDataset, s)
}

// Plan resolves the URLs for the given datasets. The standings view falls
// back to the full standings source when it is not configured.
func Plan(sources config.Sources, datasets ...Dataset) (map[Dataset]string, error) {
	plan := make(map[Dataset]string, len(datasets))
	for _, d := range datasets {
		var (
			url string
			err error
		)
		if d == StandingsView {
			url, err = sources.StandingsSnapshotURL()
		} else {
			url, err = sources.URL(string(d))
		}
		if err != nil {
			return nil, err
		}
		plan[d] = url
	}
	return plan, nil
}
