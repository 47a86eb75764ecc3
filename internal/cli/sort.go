package cli

import (
	"fmt"

	"github.com/pfrederiksen/rlol/internal/league"
)

// standingsOrder resolves --sort/--dir for the standings table. An empty
// direction takes the column's natural order.
func standingsOrder(sortKey, dir string) (league.SortKey, league.Direction, error) {
	key, err := league.ParseSortKey(sortKey)
	if err != nil {
		return "", "", err
	}
	d, err := league.ParseDirection(dir, league.DefaultDirection(key))
	if err != nil {
		return "", "", err
	}
	return key, d, nil
}

// statsOrder resolves --sort/--dir for the stats table.
func statsOrder(sortKey, dir string) (league.StatKey, league.Direction, error) {
	key, err := league.ParseStatKey(sortKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: must be one of %v", err, league.StatKeys)
	}
	d, err := league.ParseDirection(dir, key.DefaultDirection())
	if err != nil {
		return "", "", err
	}
	return key, d, nil
}
