package stats

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ShipID identifies a warship across all regions.
type ShipID uint64

// ShipStatRecord holds the cumulative counters for one ship in one mode.
// Counters only ever grow on a real account; Battles == 0 is represented by
// omitting the record entirely, never stored explicitly.
type ShipStatRecord struct {
	Battles      uint64 `json:"battles_count"`
	Wins         uint64 `json:"wins"`
	Damage       uint64 `json:"damage_dealt"`
	Frags        uint64 `json:"frags"`
	PlanesKilled uint64 `json:"planes_killed"`
	Exp          uint64 `json:"original_exp"`
	MainShots    uint64 `json:"shots_by_main"`
	MainHits     uint64 `json:"hits_by_main"`
	Scouting     uint64 `json:"scouting_damage"`
	Potential    uint64 `json:"art_agro"`
}

// diff subtracts baseline from current once the battles gate passes. A pair
// with current.Battles <= baseline.Battles contributes nothing: equal counts
// mean no activity, lower counts mean an account rollback, and both are
// silently skipped rather than treated as errors.
func (r ShipStatRecord) diff(baseline ShipStatRecord, shipID ShipID, mode Mode) (ShipStatRecord, bool) {
	if r.Battles <= baseline.Battles {
		return ShipStatRecord{}, false
	}
	return ShipStatRecord{
		Battles:      r.Battles - baseline.Battles,
		Wins:         clampSub(r.Wins, baseline.Wins, shipID, mode, "wins"),
		Damage:       clampSub(r.Damage, baseline.Damage, shipID, mode, "damage"),
		Frags:        clampSub(r.Frags, baseline.Frags, shipID, mode, "frags"),
		PlanesKilled: clampSub(r.PlanesKilled, baseline.PlanesKilled, shipID, mode, "planes_killed"),
		Exp:          clampSub(r.Exp, baseline.Exp, shipID, mode, "exp"),
		MainShots:    clampSub(r.MainShots, baseline.MainShots, shipID, mode, "main_shots"),
		MainHits:     clampSub(r.MainHits, baseline.MainHits, shipID, mode, "main_hits"),
		Scouting:     clampSub(r.Scouting, baseline.Scouting, shipID, mode, "scouting"),
		Potential:    clampSub(r.Potential, baseline.Potential, shipID, mode, "potential"),
	}, true
}

// clampSub clamps an individual field rollback to zero instead of wrapping.
// The battles gate already passed at this point, so a lower current value
// means the field itself went backwards upstream.
func clampSub(current, baseline uint64, shipID ShipID, mode Mode, field string) uint64 {
	if current < baseline {
		log.Warn().
			Uint64("ship_id", uint64(shipID)).
			Str("mode", string(mode)).
			Str("field", field).
			Uint64("current", current).
			Uint64("baseline", baseline).
			Msg("Counter rolled back while battles advanced, clamping delta to zero")
		return 0
	}
	return current - baseline
}

// ShipModeStats maps each game mode to the ship's cumulative record for it.
// A missing mode means no battles in that mode.
type ShipModeStats map[Mode]ShipStatRecord

// UnmarshalJSON treats an empty object for a mode as "no data", which is how
// the upstream API encodes a ship that was never played in that mode.
func (s *ShipModeStats) UnmarshalJSON(data []byte) error {
	var raw map[Mode]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ShipModeStats, len(raw))
	for mode, blob := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(blob, &fields); err != nil {
			return fmt.Errorf("mode %s: %w", mode, err)
		}
		if len(fields) == 0 {
			continue
		}
		var record ShipStatRecord
		if err := json.Unmarshal(blob, &record); err != nil {
			return fmt.Errorf("mode %s: %w", mode, err)
		}
		out[mode] = record
	}
	*s = out
	return nil
}

// ShipStatsCollection maps every ship on an account to its per-mode records.
type ShipStatsCollection map[ShipID]ShipModeStats

// Clone deep-copies the collection so stored snapshots never alias live data.
func (c ShipStatsCollection) Clone() ShipStatsCollection {
	out := make(ShipStatsCollection, len(c))
	for shipID, modes := range c {
		cloned := make(ShipModeStats, len(modes))
		for mode, record := range modes {
			cloned[mode] = record
		}
		out[shipID] = cloned
	}
	return out
}

// IsEmpty reports whether no ship carries any mode data. A ship entry with an
// empty inner map counts as absent.
func (c ShipStatsCollection) IsEmpty() bool {
	for _, modes := range c {
		if len(modes) > 0 {
			return false
		}
	}
	return true
}

// Ship returns the per-mode records for one ship, nil if the ship is absent.
func (c ShipStatsCollection) Ship(shipID ShipID) ShipModeStats {
	return c[shipID]
}
