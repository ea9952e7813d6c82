package cache

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"wows_recent_stats/internal/stats"
	"wows_recent_stats/internal/storage"
)

const (
	// SearchHistoryUsers bounds how many users' histories stay in memory.
	SearchHistoryUsers = 50
	// SearchHistorySelections bounds the per-user selection list.
	SearchHistorySelections = 15
)

// Selection is one autocomplete pick a user made.
type Selection struct {
	Region stats.Region `json:"region"`
	UID    uint64       `json:"uid"`
	IGN    string       `json:"ign"`
}

// UserSearchHistory is the per-user file: the user's recent autocomplete
// selections in recency order.
type UserSearchHistory struct {
	UserID     string                  `json:"user_id"`
	Selections *RecencyList[Selection] `json:"recent_selections"`
}

// NewUserSearchHistory creates an empty history for a user.
func NewUserSearchHistory(userID string) *UserSearchHistory {
	return &UserSearchHistory{
		UserID:     userID,
		Selections: NewRecencyList[Selection](SearchHistorySelections),
	}
}

// snapshot deep-copies the history so a flush can marshal it off the lock
// while the live copy keeps taking selections.
func (h *UserSearchHistory) snapshot() *UserSearchHistory {
	return &UserSearchHistory{
		UserID:     h.UserID,
		Selections: h.Selections.clone(),
	}
}

// SearchHistoryCache keeps recently active users' histories in a bounded
// in-memory cache. A user evicted by LRU pressure is flushed to their file
// off the caller's path, so eviction loses residency, never data. Histories
// whose eviction flush has not landed yet stay reachable through pending, so
// a re-request never reads a stale or missing file past a live copy.
type SearchHistoryCache struct {
	mu       sync.Mutex
	dataDir  string
	users    *BoundedCache[string, *UserSearchHistory]
	pending  map[string]pendingFlush
	flushSeq uint64
	flushes  sync.WaitGroup
}

// pendingFlush tracks one evicted history between eviction and its write
// landing. The sequence number lets a completed write tell whether a newer
// flush for the same user superseded it; done gates the next flush for the
// same user so writes land in eviction order.
type pendingFlush struct {
	history *UserSearchHistory
	seq     uint64
	done    chan struct{}
}

// NewSearchHistoryCache creates the cache rooted at dataDir.
func NewSearchHistoryCache(dataDir string) *SearchHistoryCache {
	return &SearchHistoryCache{
		dataDir: dataDir,
		users:   NewBoundedCache[string, *UserSearchHistory](SearchHistoryUsers),
		pending: make(map[string]pendingFlush),
	}
}

func (c *SearchHistoryCache) userPath(userID string) string {
	return filepath.Join(c.dataDir, "cache", "user_search_history", fmt.Sprintf("%s.json", userID))
}

// getOrLoad finds the user's history in memory, then among pending eviction
// flushes, then on disk, then creates a fresh one. Caller holds c.mu.
func (c *SearchHistoryCache) getOrLoad(userID string) (*UserSearchHistory, error) {
	if history, ok := c.users.Get(userID); ok {
		searchHistoryHits.Inc()
		return history, nil
	}
	searchHistoryMisses.Inc()

	// An evicted history whose flush has not completed is still the live
	// copy; reading the file here could resurrect stale or missing data.
	if entry, ok := c.pending[userID]; ok {
		if evictedID, evicted, evictedOK := c.users.Put(userID, entry.history); evictedOK && evictedID != userID {
			c.flushAsync(evictedID, evicted)
		}
		log.Debug().Str("user_id", userID).Msg("Reinstated search history from a pending flush")
		return entry.history, nil
	}

	history := NewUserSearchHistory(userID)
	found, err := storage.Load(c.userPath(userID), history)
	if err != nil {
		return nil, err
	}
	if found {
		history.UserID = userID
		log.Debug().Str("user_id", userID).Msg("Loaded search history from disk")
	}
	if history.Selections == nil {
		history.Selections = NewRecencyList[Selection](SearchHistorySelections)
	}

	if evictedID, evicted, ok := c.users.Put(userID, history); ok && evictedID != userID {
		c.flushAsync(evictedID, evicted)
	}
	return history, nil
}

// flushAsync persists an evicted history on the blocking-I/O boundary so the
// caller never waits on disk. The history stays in pending until the write
// lands, keeping it reachable for getOrLoad. Caller holds c.mu.
func (c *SearchHistoryCache) flushAsync(userID string, history *UserSearchHistory) {
	c.flushSeq++
	seq := c.flushSeq
	var prev chan struct{}
	if entry, ok := c.pending[userID]; ok {
		prev = entry.done
	}
	done := make(chan struct{})
	c.pending[userID] = pendingFlush{history: history, seq: seq, done: done}
	snapshot := history.snapshot()
	c.flushes.Add(1)
	go func() {
		defer c.flushes.Done()
		defer close(done)
		if prev != nil {
			// An older flush for this user is still writing; let it land
			// first so the newer snapshot is the last writer.
			<-prev
		}
		err := storage.Save(c.userPath(userID), snapshot)

		// Keep the entry when the write failed or a newer flush for this
		// user is still in flight, so the live copy stays reachable.
		c.mu.Lock()
		if entry, ok := c.pending[userID]; ok && entry.seq == seq && err == nil {
			delete(c.pending, userID)
		}
		c.mu.Unlock()

		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to flush evicted search history")
			return
		}
		searchHistoryFlushes.Inc()
		log.Debug().Str("user_id", userID).Msg("Flushed evicted search history to disk")
	}()
}

// History returns a copy of the user's recent selections, most recent first.
// A user with no in-memory or on-disk history gets an empty list.
func (c *SearchHistoryCache) History(userID string) ([]Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	history, err := c.getOrLoad(userID)
	if err != nil {
		return nil, err
	}
	return history.Selections.Items(), nil
}

// RecordSelection marks a selection as the user's most recent pick.
func (c *SearchHistoryCache) RecordSelection(userID string, selection Selection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	history, err := c.getOrLoad(userID)
	if err != nil {
		return err
	}
	history.Selections.Put(selection)
	return nil
}

// Close flushes every resident history to disk, retries pending evictions
// whose write never landed, and waits for in-flight eviction writes. Call on
// shutdown.
func (c *SearchHistoryCache) Close() error {
	// Let in-flight eviction writes land before snapshotting, so the final
	// resident state is the last writer for every user.
	c.flushes.Wait()

	c.mu.Lock()
	var g errgroup.Group
	c.users.Each(func(userID string, history *UserSearchHistory) bool {
		snapshot := history.snapshot()
		path := c.userPath(userID)
		g.Go(func() error {
			return storage.Save(path, snapshot)
		})
		return true
	})
	for userID, entry := range c.pending {
		if c.users.Contains(userID) {
			continue
		}
		snapshot := entry.history.snapshot()
		path := c.userPath(userID)
		g.Go(func() error {
			return storage.Save(path, snapshot)
		})
	}
	c.mu.Unlock()

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to flush search histories: %w", err)
	}
	log.Info().Msg("Saved users' search history cache")
	return nil
}
