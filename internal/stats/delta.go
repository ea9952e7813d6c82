package stats

// Filter describes which ships a caller is interested in: everything, or a
// single ship. Consumers switch on the variant instead of invoking an opaque
// predicate.
type Filter struct {
	shipID ShipID
	single bool
}

// FilterAllShips keeps every ship.
func FilterAllShips() Filter {
	return Filter{}
}

// FilterSingleShip keeps only the given ship.
func FilterSingleShip(id ShipID) Filter {
	return Filter{shipID: id, single: true}
}

// Matches reports whether the filter keeps the given ship.
func (f Filter) Matches(id ShipID) bool {
	return !f.single || f.shipID == id
}

// Retain drops every ship the filter rejects, in place.
func (c ShipStatsCollection) Retain(f Filter) {
	if !f.single {
		return
	}
	for shipID := range c {
		if !f.Matches(shipID) {
			delete(c, shipID)
		}
	}
}

// Compare computes the per-ship, per-mode difference between two cumulative
// collections. A missing baseline record counts as all-zero. Ships and modes
// that fail the battles gate or yield no field differences are omitted; a
// fully empty result is returned as nil, which callers surface as "no battles
// in the requested window". Pure function, no I/O.
func Compare(current, baseline ShipStatsCollection) ShipStatsCollection {
	result := make(ShipStatsCollection)

	for shipID, modes := range current {
		baselineModes := baseline[shipID]

		diffModes := make(ShipModeStats)
		for mode, record := range modes {
			delta, ok := record.diff(baselineModes[mode], shipID, mode)
			if !ok {
				continue
			}
			diffModes[mode] = delta
		}
		if len(diffModes) > 0 {
			result[shipID] = diffModes
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
