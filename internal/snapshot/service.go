package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"wows_recent_stats/internal/stats"
	"wows_recent_stats/internal/wows"
)

// LoadResult is what a recent-stats request needs from the store layer: the
// player's history, the freshly fetched collection, and whether the player
// had any history before this request.
type LoadResult struct {
	Store   *Store
	Current stats.ShipStatsCollection
	// IsNew marks a player whose store was just initialized. Their first
	// snapshot was captured by this request, so there is no baseline yet and
	// the caller surfaces a "play a battle first" message.
	IsNew bool
	// IsActive is false when the player's last request fell out of the
	// tracking window, which the caller reports alongside empty results.
	IsActive bool
}

// Service owns every player's snapshot store and the freshness policy around
// them. Network fetches run outside the store lock, deduplicated per player,
// so slow upstream calls never serialize unrelated requests.
type Service struct {
	dataDir string
	fetcher wows.StatsFetcher

	mu       sync.Mutex
	inFlight singleflight.Group
	now      func() time.Time
}

// NewService creates the snapshot service rooted at dataDir.
func NewService(dataDir string, fetcher wows.StatsFetcher) *Service {
	return &Service{
		dataDir: dataDir,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// GetOrCreate runs the full read-triggering sequence for a player: fetch the
// current stats, load or initialize the store, mark the request, capture a
// snapshot when the stored history has gone stale, and persist. Concurrent
// requests for the same player share one upstream fetch; the last writer
// wins on the store itself.
func (s *Service) GetOrCreate(ctx context.Context, key PlayerKey, exempt bool) (*LoadResult, error) {
	current, err := s.fetchCurrent(ctx, key)
	if err != nil {
		return nil, err
	}

	// Only the in-memory and disk mutation happens under the lock; the
	// network round-trip above stays outside it.
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()

	store, err := Load(s.dataDir, key)
	if err != nil {
		log.Error().Err(err).Str("player", key.String()).Msg("Snapshot store is corrupt")
		return nil, err
	}
	isNew := store == nil
	if isNew {
		store = Init(key)
		log.Info().Str("player", key.String()).Msg("Initialized snapshot store for new player")
	}

	isActive := !isNew && store.IsActive(now)
	store.MarkRequest(now, exempt)

	if store.IsStale(now) {
		store.Insert(now, current)
		snapshotsInserted.Inc()
	}

	if err := store.Save(s.dataDir); err != nil {
		return nil, err
	}

	return &LoadResult{
		Store:    store,
		Current:  current,
		IsNew:    isNew,
		IsActive: isActive,
	}, nil
}

// fetchCurrent pulls the player's live cumulative stats, coalescing
// concurrent requests for the same player into one upstream call.
func (s *Service) fetchCurrent(ctx context.Context, key PlayerKey) (stats.ShipStatsCollection, error) {
	result, err, shared := s.inFlight.Do(key.String(), func() (any, error) {
		return s.fetcher.AccountShips(ctx, key.Region, key.UID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current stats for %s: %w", key, err)
	}
	if shared {
		fetchesDeduplicated.Inc()
	}
	return result.(stats.ShipStatsCollection), nil
}

// RecentDelta computes the delta between the current collection and the
// nearest stored snapshot at-or-after target, applying the ship filter to
// both sides. It returns the matched timestamp and nil when nothing in the
// window changed; a (0, nil) pair means no snapshot satisfied the target at
// all. Pure on top of the store: no locks, no I/O.
func RecentDelta(result *LoadResult, target int64, filter stats.Filter) (int64, stats.ShipStatsCollection) {
	matchedAt, baseline, ok := result.Store.Nearest(target)
	if !ok {
		return 0, nil
	}

	current := result.Current.Clone()
	current.Retain(filter)
	baseline.Retain(filter)

	return matchedAt, stats.Compare(current, baseline)
}
