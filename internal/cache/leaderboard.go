package cache

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"wows_recent_stats/internal/stats"
	"wows_recent_stats/internal/storage"
)

// LeaderboardFreshness is how long a cached ship leaderboard stays servable
// when the caller enforces freshness.
const LeaderboardFreshness = 3600 * time.Second

// PlayerRow is one row of a ship's top-player leaderboard, kept in the shape
// the renderer consumes.
type PlayerRow struct {
	Rank    uint64               `json:"rank"`
	Clan    string               `json:"clan"`
	IGN     string               `json:"ign"`
	UID     uint64               `json:"uid"`
	Battles uint64               `json:"battles"`
	PR      stats.StatisticValue `json:"pr"`
	Winrate stats.StatisticValue `json:"winrate"`
	Frags   stats.StatisticValue `json:"frags"`
	Dmg     stats.StatisticValue `json:"dmg"`
	Exp     stats.StatisticValue `json:"exp"`
}

// LeaderboardEntry is the cached top-N list for one ship in one region.
type LeaderboardEntry struct {
	Players       []PlayerRow `json:"players"`
	LastUpdatedAt int64       `json:"last_updated_at"`
}

type leaderboardMap map[stats.Region]map[stats.ShipID]LeaderboardEntry

// LeaderboardCache holds ship leaderboards keyed by region and ship,
// write-through persisted as one file. Staleness is a read-time filter: an
// old entry is reported absent but never evicted, so callers that tolerate
// stale data can still read it.
type LeaderboardCache struct {
	mu   sync.Mutex
	path string
	data leaderboardMap
	now  func() time.Time
}

// NewLeaderboardCache loads the persisted leaderboard map from dataDir.
// A missing file starts empty; a corrupt one is an integrity fault.
func NewLeaderboardCache(dataDir string) (*LeaderboardCache, error) {
	c := &LeaderboardCache{
		path: filepath.Join(dataDir, "cache", "leaderboard.json"),
		data: make(leaderboardMap),
		now:  time.Now,
	}

	found, err := storage.Load(c.path, &c.data)
	if err != nil {
		return nil, err
	}
	if found {
		log.Debug().Str("path", c.path).Int("regions", len(c.data)).Msg("Loaded leaderboard cache")
	}
	return c, nil
}

// GetShip returns the cached player list for a ship. With enforceFreshness
// an entry older than LeaderboardFreshness is treated as absent, forcing the
// caller to refetch.
func (c *LeaderboardCache) GetShip(region stats.Region, shipID stats.ShipID, enforceFreshness bool) ([]PlayerRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[region][shipID]
	if !ok {
		leaderboardMisses.Inc()
		return nil, false
	}

	age := c.now().Unix() - entry.LastUpdatedAt
	if enforceFreshness && age > int64(LeaderboardFreshness/time.Second) {
		log.Debug().
			Str("region", region.Lower()).
			Uint64("ship_id", uint64(shipID)).
			Int64("age_seconds", age).
			Msg("Leaderboard cache entry stale, treating as absent")
		leaderboardMisses.Inc()
		return nil, false
	}

	leaderboardHits.Inc()
	players := make([]PlayerRow, len(entry.Players))
	copy(players, entry.Players)
	return players, true
}

// Insert stores a freshly fetched leaderboard and persists the whole map.
func (c *LeaderboardCache) Insert(region stats.Region, shipID stats.ShipID, players []PlayerRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data[region] == nil {
		c.data[region] = make(map[stats.ShipID]LeaderboardEntry)
	}
	c.data[region][shipID] = LeaderboardEntry{
		Players:       players,
		LastUpdatedAt: c.now().Unix(),
	}

	if err := storage.Save(c.path, c.data); err != nil {
		return err
	}

	log.Debug().
		Str("region", region.Lower()).
		Uint64("ship_id", uint64(shipID)).
		Int("players", len(players)).
		Msg("Leaderboard cache updated")
	return nil
}
