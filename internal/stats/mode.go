package stats

import "fmt"

// Mode is a game-mode partition of ship statistics.
type Mode string

const (
	ModePvp  Mode = "pvp"
	ModeSolo Mode = "pvp_solo"
	ModeDiv2 Mode = "pvp_div2"
	ModeDiv3 Mode = "pvp_div3"
	ModeRank Mode = "rank_solo"
)

// AllModes lists every tracked mode in display order.
var AllModes = []Mode{ModePvp, ModeSolo, ModeDiv2, ModeDiv3, ModeRank}

// ParseMode maps a user-facing or API mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pvp":
		return ModePvp, nil
	case "solo", "pvp_solo":
		return ModeSolo, nil
	case "div2", "pvp_div2":
		return ModeDiv2, nil
	case "div3", "pvp_div3":
		return ModeDiv3, nil
	case "rank", "rank_solo":
		return ModeRank, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// RenderName returns the short name used in user-facing output.
func (m Mode) RenderName() string {
	switch m {
	case ModePvp:
		return "pvp"
	case ModeSolo:
		return "solo"
	case ModeDiv2:
		return "div2"
	case ModeDiv3:
		return "div3"
	case ModeRank:
		return "rank"
	}
	return string(m)
}
