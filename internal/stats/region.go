package stats

import (
	"fmt"
	"strings"
)

// Region is a game realm. Player accounts are keyed by region + account id.
type Region string

const (
	RegionAsia Region = "asia"
	RegionEU   Region = "eu"
	RegionNA   Region = "na"
)

// ParseRegion accepts both upper and lower case realm names.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(s) {
	case "asia":
		return RegionAsia, nil
	case "eu":
		return RegionEU, nil
	case "na":
		return RegionNA, nil
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Lower returns the lower-case realm name used in file paths.
func (r Region) Lower() string {
	return string(r)
}

// Upper returns the display realm name.
func (r Region) Upper() string {
	return strings.ToUpper(string(r))
}

// VortexDomain is the realm-specific host suffix of the stats API.
func (r Region) VortexDomain() string {
	switch r {
	case RegionEU:
		return "eu"
	case RegionNA:
		return "com"
	default:
		return "asia"
	}
}
