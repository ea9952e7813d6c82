package stats

import (
	"encoding/json"
	"sync"
)

// ShipExpected holds the per-ship reference averages used to normalize PR and
// the ship-relative damage tier.
type ShipExpected struct {
	Damage  float64 `json:"average_damage_dealt"`
	Frags   float64 `json:"average_frags"`
	Winrate float64 `json:"win_rate"`
}

// ExpectedStats is the reference table of per-ship expected values, refreshed
// periodically from upstream. Safe for concurrent readers and the refresher.
type ExpectedStats struct {
	mu   sync.RWMutex
	time int64
	data map[ShipID]ShipExpected
}

// NewExpectedStats returns an empty table; every lookup misses until the
// first Replace.
func NewExpectedStats() *ExpectedStats {
	return &ExpectedStats{data: make(map[ShipID]ShipExpected)}
}

// Get looks up the expected values for a ship.
func (e *ExpectedStats) Get(shipID ShipID) (ShipExpected, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.data[shipID]
	return v, ok
}

// Len returns the number of ships with reference values.
func (e *ExpectedStats) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.data)
}

// Replace swaps in a freshly fetched table.
func (e *ExpectedStats) Replace(time int64, data map[ShipID]ShipExpected) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.time = time
	e.data = data
}

// UpdatedAt returns the upstream timestamp of the current table.
func (e *ExpectedStats) UpdatedAt() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.time
}

type expectedFile struct {
	Time int64                      `json:"time"`
	Data map[ShipID]json.RawMessage `json:"data"`
}

// MarshalJSON snapshots the table in the upstream wire shape.
func (e *ExpectedStats) MarshalJSON() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return json.Marshal(struct {
		Time int64                   `json:"time"`
		Data map[ShipID]ShipExpected `json:"data"`
	}{Time: e.time, Data: e.data})
}

// UnmarshalJSON accepts the upstream table, skipping entries that are not
// objects (the feed pads some ship ids with bare numbers).
func (e *ExpectedStats) UnmarshalJSON(data []byte) error {
	var raw expectedFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed := make(map[ShipID]ShipExpected, len(raw.Data))
	for shipID, blob := range raw.Data {
		var v ShipExpected
		if err := json.Unmarshal(blob, &v); err != nil {
			continue
		}
		parsed[shipID] = v
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.time = raw.Time
	e.data = parsed
	return nil
}
