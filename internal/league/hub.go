package league

import "time"

// SnapshotSize is the number of standings rows on the hub.
const SnapshotSize = 4

// Hub is the landing page: the next match night and the top of the table.
type Hub struct {
	Next *MatchNight `json:"next,omitempty"`
	Top  []Standing  `json:"top"`
}

// BuildHub assembles the hub from already built view models.
func BuildHub(schedule []Match, standings []Standing, today time.Time, policy RankPolicy, size int) Hub {
	if size <= 0 {
		size = SnapshotSize
	}
	var hub Hub
	if night, ok := NextMatchNight(schedule, today); ok {
		hub.Next = night
	}
	hub.Top = Snapshot(standings, policy, size)
	return hub
}
