package wows

import (
	"context"

	"wows_recent_stats/internal/stats"
)

// StatsFetcher pulls a player's live cumulative ship statistics.
type StatsFetcher interface {
	AccountShips(ctx context.Context, region stats.Region, uid uint64) (stats.ShipStatsCollection, error)
}

// BaselineFetcher pulls the per-ship expected reference table.
type BaselineFetcher interface {
	ExpectedStats(ctx context.Context) (*stats.ExpectedStats, error)
}

// LeaderboardRow is one scraped row of a ship leaderboard, treated as opaque
// by the core. The scraper itself lives outside this module.
type LeaderboardRow struct {
	Rank    uint64
	Clan    string
	IGN     string
	UID     uint64
	Battles uint64
	Winrate float64
	Frags   float64
	Dmg     float64
	PR      float64
	Exp     float64
}

// LeaderboardFetcher pulls the top players for one ship in one region.
type LeaderboardFetcher interface {
	ShipLeaderboard(ctx context.Context, region stats.Region, shipID stats.ShipID) ([]LeaderboardRow, error)
}
