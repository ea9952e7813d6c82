package snapshot

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"wows_recent_stats/internal/stats"
	"wows_recent_stats/internal/storage"
)

// SnapshotMaxAge is the freshness window: a new snapshot is only captured
// when the most recent stored one is older than this many seconds.
const SnapshotMaxAge int64 = 86400

// RequestWindowDays is how long a non-exempt player stays tracked after
// their last request.
const RequestWindowDays int64 = 14

// PlayerKey identifies one player's store on disk.
type PlayerKey struct {
	Region stats.Region
	UID    uint64
}

func (k PlayerKey) String() string {
	return fmt.Sprintf("%s:%d", k.Region.Lower(), k.UID)
}

// LastRequest records when the player last asked for recent stats. Exempt
// players are never considered inactive.
type LastRequest struct {
	Exempt bool
	Since  int64
}

// MarshalJSON encodes either the literal "exempt" or {"since": N}.
func (r LastRequest) MarshalJSON() ([]byte, error) {
	if r.Exempt {
		return json.Marshal("exempt")
	}
	return json.Marshal(struct {
		Since int64 `json:"since"`
	}{Since: r.Since})
}

// UnmarshalJSON accepts both encodings.
func (r *LastRequest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "exempt" {
			return fmt.Errorf("unknown last_request marker %q", s)
		}
		*r = LastRequest{Exempt: true}
		return nil
	}
	var obj struct {
		Since int64 `json:"since"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = LastRequest{Since: obj.Since}
	return nil
}

// Store is the timestamp-ordered snapshot history of exactly one player.
type Store struct {
	key PlayerKey

	LastUpdateAt int64                               `json:"last_update_at"`
	LastRequest  LastRequest                         `json:"last_request"`
	Data         map[int64]stats.ShipStatsCollection `json:"data"`
}

// Init creates an empty store for a player with no history yet.
func Init(key PlayerKey) *Store {
	return &Store{
		key:  key,
		Data: make(map[int64]stats.ShipStatsCollection),
	}
}

// Load reads the player's store from dataDir. A missing file means the
// player is new and yields (nil, nil); a present but undecodable file is an
// integrity fault and surfaces the storage.ErrCorrupt chain.
func Load(dataDir string, key PlayerKey) (*Store, error) {
	store := Init(key)
	found, err := storage.Load(storePath(dataDir, key), store)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	snapshotsLoaded.Inc()
	if store.Data == nil {
		store.Data = make(map[int64]stats.ShipStatsCollection)
	}
	return store, nil
}

// Save persists the full store under the player's key, replacing any prior
// content in one atomic write.
func (s *Store) Save(dataDir string) error {
	if err := storage.Save(storePath(dataDir, s.key), s); err != nil {
		return fmt.Errorf("failed to save snapshot store for %s: %w", s.key, err)
	}
	snapshotsSaved.Inc()
	return nil
}

func storePath(dataDir string, key PlayerKey) string {
	return filepath.Join(dataDir, "players", key.Region.Lower(), fmt.Sprintf("%d.json", key.UID))
}

// Insert stores a snapshot under its capture timestamp, overwriting an equal
// timestamp, and advances last_update_at. The collection is cloned so later
// caller mutations cannot reach stored history.
func (s *Store) Insert(capturedAt int64, ships stats.ShipStatsCollection) {
	s.Data[capturedAt] = ships.Clone()
	s.LastUpdateAt = capturedAt

	log.Debug().
		Str("player", s.key.String()).
		Int64("captured_at", capturedAt).
		Int("ships", len(ships)).
		Msg("Inserted snapshot")
}

// Nearest returns the snapshot at the target timestamp, or failing an exact
// match, the earliest one at-or-after it. Searching moves forward from the
// target toward now because snapshots are cumulative: any later capture still
// contains the target window's baseline.
func (s *Store) Nearest(target int64) (int64, stats.ShipStatsCollection, bool) {
	if ships, ok := s.Data[target]; ok {
		return target, ships.Clone(), true
	}

	found := false
	var best int64
	for ts := range s.Data {
		if ts < target {
			continue
		}
		if !found || ts < best {
			best = ts
			found = true
		}
	}
	if !found {
		return 0, nil, false
	}
	return best, s.Data[best].Clone(), true
}

// AvailableEarlier lists all stored timestamps strictly before target,
// ascending, for offering fallback choices to the caller.
func (s *Store) AvailableEarlier(target int64) []int64 {
	var out []int64
	for ts := range s.Data {
		if ts < target {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Latest returns the most recent snapshot.
func (s *Store) Latest() (int64, stats.ShipStatsCollection, bool) {
	found := false
	var best int64
	for ts := range s.Data {
		if !found || ts > best {
			best = ts
			found = true
		}
	}
	if !found {
		return 0, nil, false
	}
	return best, s.Data[best], true
}

// IsStale reports whether the newest stored snapshot is older than the
// freshness window at the given time.
func (s *Store) IsStale(now int64) bool {
	return now-s.LastUpdateAt > SnapshotMaxAge
}

// IsActive reports whether the player is still being tracked: exempt players
// always are, others only while their last request is inside the window.
func (s *Store) IsActive(now int64) bool {
	if s.LastRequest.Exempt {
		return true
	}
	return now-s.LastRequest.Since < RequestWindowDays*86400
}

// MarkRequest records that the player asked for stats now. Exempt status is
// granted externally and sticks until revoked by the same path.
func (s *Store) MarkRequest(now int64, exempt bool) {
	if exempt {
		s.LastRequest = LastRequest{Exempt: true}
		return
	}
	s.LastRequest = LastRequest{Since: now}
}
