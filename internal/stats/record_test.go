package stats

import (
	"encoding/json"
	"testing"
)

func TestShipModeStatsUnmarshalSkipsEmptyModes(t *testing.T) {
	blob := []byte(`{
		"pvp": {"battles_count": 12, "wins": 7, "damage_dealt": 480000},
		"pvp_solo": {},
		"rank_solo": {"battles_count": 3, "wins": 1}
	}`)

	var modes ShipModeStats
	if err := json.Unmarshal(blob, &modes); err != nil {
		t.Fatalf("Unmarshal() returned error: %v", err)
	}

	if len(modes) != 2 {
		t.Fatalf("got %d modes, want 2 (empty object dropped)", len(modes))
	}
	if _, ok := modes[ModeSolo]; ok {
		t.Error("empty pvp_solo object kept as a record")
	}
	if modes[ModePvp].Battles != 12 || modes[ModePvp].Wins != 7 {
		t.Errorf("pvp record = %+v", modes[ModePvp])
	}
}

func TestShipStatsCollectionCloneIsDeep(t *testing.T) {
	original := ShipStatsCollection{
		1: {ModePvp: {Battles: 10, Wins: 5}},
	}

	clone := original.Clone()
	clone[1][ModePvp] = ShipStatRecord{Battles: 99}

	if original[1][ModePvp].Battles != 10 {
		t.Error("mutating the clone changed the original")
	}
}

func TestIsEmptyTreatsEmptyInnerMapAsAbsent(t *testing.T) {
	tests := []struct {
		name string
		c    ShipStatsCollection
		want bool
	}{
		{"nil collection", nil, true},
		{"no ships", ShipStatsCollection{}, true},
		{"ship with empty modes", ShipStatsCollection{1: ShipModeStats{}}, true},
		{"ship with data", ShipStatsCollection{1: {ModePvp: {Battles: 1}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShipStatsCollectionJSONRoundTrip(t *testing.T) {
	original := ShipStatsCollection{
		4276041424: {
			ModePvp:  {Battles: 100, Wins: 60, Damage: 4_000_000, MainShots: 500, MainHits: 150},
			ModeRank: {Battles: 9, Wins: 5, Damage: 300_000},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var decoded ShipStatsCollection
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded[4276041424][ModePvp] != original[4276041424][ModePvp] {
		t.Errorf("pvp record mismatch after round trip: %+v", decoded[4276041424][ModePvp])
	}
	if decoded[4276041424][ModeRank].Battles != 9 {
		t.Errorf("rank record mismatch: %+v", decoded[4276041424][ModeRank])
	}
}
