package stats

import (
	"math"
	"sort"
)

// RecentOmitLimit caps how many per-ship rows a summary listing carries.
const RecentOmitLimit = 50

// StatisticValue pairs a displayable number with its performance tier.
type StatisticValue struct {
	Value float64 `json:"value"`
	Tier  Tier    `json:"color"`
}

// GreyValue is the neutral placeholder for a metric with no data.
func GreyValue() StatisticValue {
	return StatisticValue{Value: 0, Tier: TierGrey}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// WinrateValue classifies a winrate percentage (e.g. 55.3 for 55.3%).
func WinrateValue(value float64) StatisticValue {
	return StatisticValue{Value: round2(value), Tier: classify(value, winrateTable)}
}

// FragsValue classifies average frags per battle.
func FragsValue(value float64) StatisticValue {
	return StatisticValue{Value: round2(value), Tier: classify(value, fragsTable)}
}

// PlanesValue classifies average planes killed per battle.
func PlanesValue(value float64) StatisticValue {
	return StatisticValue{Value: round2(value), Tier: classify(value, planesTable)}
}

// ExpValue classifies average base experience per battle.
func ExpValue(value float64) StatisticValue {
	return StatisticValue{Value: math.Round(value), Tier: classify(value, expTable)}
}

// OverallDmgValue classifies average damage against the account-wide table.
func OverallDmgValue(value float64) StatisticValue {
	return StatisticValue{Value: math.Round(value), Tier: classify(value, overallDmgTable)}
}

// PRValue classifies a performance rating. A nil rating means the ships
// involved have no expected baseline and renders as Grey / N/A.
func PRValue(value *float64) StatisticValue {
	if value == nil {
		return GreyValue()
	}
	return StatisticValue{Value: math.Round(*value), Tier: classify(*value, prTable)}
}

// ShipDmgValue classifies average damage relative to the ship's own expected
// damage. Without a baseline the tier is Grey while the raw value still shows.
func ShipDmgValue(expected *ExpectedStats, shipID ShipID, value float64) StatisticValue {
	exp, ok := expected.Get(shipID)
	if !ok || exp.Damage <= 0 {
		return StatisticValue{Value: math.Round(value), Tier: TierGrey}
	}
	normalized := math.Max(0, value/exp.Damage-0.4) / 0.6
	return StatisticValue{Value: math.Round(value), Tier: classify(normalized, shipDmgTable)}
}

// performanceRating combines winrate, damage and frags against expected
// totals. All inputs are summed over the same set of battles; expected wins
// come pre-scaled from percent.
func performanceRating(wins, damage, frags, expWins, expDamage, expFrags float64) float64 {
	rWins := wins / expWins
	rDamage := damage / expDamage
	rFrags := frags / expFrags

	nWins := math.Max(0, rWins-0.7) / 0.3
	nDamage := math.Max(0, rDamage-0.4) / 0.6
	nFrags := math.Max(0, rFrags-0.1) / 0.9

	return 700*nDamage + 300*nFrags + 150*nWins
}

// Statistic is the rendered summary for one mode: battle count plus a tiered
// value for each displayable metric. Ephemeral, produced per request.
type Statistic struct {
	Battles   uint64         `json:"battles"`
	Winrate   StatisticValue `json:"winrate"`
	Dmg       StatisticValue `json:"dmg"`
	Frags     StatisticValue `json:"frags"`
	Planes    StatisticValue `json:"planes"`
	PR        StatisticValue `json:"pr"`
	Exp       StatisticValue `json:"exp"`
	Potential uint64         `json:"potential"`
	Scouting  uint64         `json:"scout"`
	Hitrate   float64        `json:"hitrate"`
}

// EmptyStatistic is the zero-battle summary with every tier Grey.
func EmptyStatistic() Statistic {
	return Statistic{
		Winrate: GreyValue(),
		Dmg:     GreyValue(),
		Frags:   GreyValue(),
		Planes:  GreyValue(),
		PR:      GreyValue(),
		Exp:     GreyValue(),
	}
}

type statTotals struct {
	battles, wins, damage, frags, planes, exp, shots, hits, scouting, potential float64
	// PR totals only cover ships that have reference values, on both the
	// actual and the expected side.
	prWins, prDamage, prFrags    float64
	expWins, expDamage, expFrags float64
}

func (t *statTotals) add(record ShipStatRecord, exp ShipExpected, hasExp bool) {
	t.battles += float64(record.Battles)
	t.wins += float64(record.Wins)
	t.damage += float64(record.Damage)
	t.frags += float64(record.Frags)
	t.planes += float64(record.PlanesKilled)
	t.exp += float64(record.Exp)
	t.shots += float64(record.MainShots)
	t.hits += float64(record.MainHits)
	t.scouting += float64(record.Scouting)
	t.potential += float64(record.Potential)

	if hasExp {
		battles := float64(record.Battles)
		t.prWins += float64(record.Wins)
		t.prDamage += float64(record.Damage)
		t.prFrags += float64(record.Frags)
		t.expWins += exp.Winrate / 100 * battles
		t.expDamage += exp.Damage * battles
		t.expFrags += exp.Frags * battles
	}
}

func (t *statTotals) toStatistic(dmgValue func(float64) StatisticValue) Statistic {
	if t.battles == 0 {
		return EmptyStatistic()
	}

	var pr *float64
	if t.expWins > 0 && t.expDamage > 0 && t.expFrags > 0 {
		value := performanceRating(
			t.prWins, t.prDamage, t.prFrags,
			t.expWins, t.expDamage, t.expFrags,
		)
		pr = &value
	}

	var hitrate float64
	if t.shots > 0 {
		hitrate = round2(t.hits / t.shots * 100)
	}

	return Statistic{
		Battles:   uint64(t.battles),
		Winrate:   WinrateValue(t.wins / t.battles * 100),
		Dmg:       dmgValue(t.damage / t.battles),
		Frags:     FragsValue(t.frags / t.battles),
		Planes:    PlanesValue(t.planes / t.battles),
		PR:        PRValue(pr),
		Exp:       ExpValue(t.exp / t.battles),
		Potential: uint64(t.potential),
		Scouting:  uint64(t.scouting),
		Hitrate:   hitrate,
	}
}

// ToStatistic folds every ship's record for one mode into a single summary.
func (c ShipStatsCollection) ToStatistic(expected *ExpectedStats, mode Mode) Statistic {
	var totals statTotals
	for shipID, modes := range c {
		record, ok := modes[mode]
		if !ok {
			continue
		}
		exp, hasExp := expected.Get(shipID)
		totals.add(record, exp, hasExp)
	}
	return totals.toStatistic(OverallDmgValue)
}

// ToStatistic summarizes a single ship for one mode, with the damage tier
// normalized against the ship's own expected damage. Returns false when the
// ship has no record for the mode.
func (s ShipModeStats) ToStatistic(shipID ShipID, expected *ExpectedStats, mode Mode) (Statistic, bool) {
	record, ok := s[mode]
	if !ok || record.Battles == 0 {
		return Statistic{}, false
	}

	var totals statTotals
	exp, hasExp := expected.Get(shipID)
	totals.add(record, exp, hasExp)

	return totals.toStatistic(func(avg float64) StatisticValue {
		return ShipDmgValue(expected, shipID, avg)
	}), true
}

// ShipStatisticEntry is one row of a per-ship summary listing.
type ShipStatisticEntry struct {
	ShipID ShipID
	Stats  Statistic
}

// SortedShipStatistics lists per-ship summaries for a mode, most-played
// first, capped at RecentOmitLimit rows.
func SortedShipStatistics(c ShipStatsCollection, expected *ExpectedStats, mode Mode) []ShipStatisticEntry {
	entries := make([]ShipStatisticEntry, 0, len(c))
	for shipID, modes := range c {
		stat, ok := modes.ToStatistic(shipID, expected, mode)
		if !ok {
			continue
		}
		entries = append(entries, ShipStatisticEntry{ShipID: shipID, Stats: stat})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Battles != entries[j].Stats.Battles {
			return entries[i].Stats.Battles > entries[j].Stats.Battles
		}
		return entries[i].ShipID < entries[j].ShipID
	})

	if len(entries) > RecentOmitLimit {
		entries = entries[:RecentOmitLimit]
	}
	return entries
}
