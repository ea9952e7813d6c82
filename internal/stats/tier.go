package stats

// Tier is a discrete performance classification. Tiers serialize as the hex
// color the renderer paints them with.
type Tier string

const (
	TierSuperUnicum  Tier = "#9D42F3"
	TierUnicum       Tier = "#D042F3"
	TierGreat        Tier = "#02C9B3"
	TierVeryGood     Tier = "#318000"
	TierGood         Tier = "#44B300"
	TierAverage      Tier = "#FFC71F"
	TierBelowAverage Tier = "#FE7903"
	TierBad          Tier = "#FE0E00"
	// TierGrey marks a metric with no data to classify.
	TierGrey Tier = "#999999"
	// TierWhite marks a value above every threshold on the scale.
	TierWhite Tier = "#FFFFFF"
)

// rank orders tiers from worst to best for monotonicity checks. Grey and
// White sit outside the ladder.
func (t Tier) rank() int {
	switch t {
	case TierBad:
		return 0
	case TierBelowAverage:
		return 1
	case TierAverage:
		return 2
	case TierGood:
		return 3
	case TierVeryGood:
		return 4
	case TierGreat:
		return 5
	case TierUnicum:
		return 6
	case TierSuperUnicum:
		return 7
	case TierWhite:
		return 8
	}
	return -1
}

// threshold is one row of a descending-order classification table.
type threshold struct {
	min  float64
	tier Tier
}

// The tables run from best to worst; the first row whose minimum the value
// meets or exceeds wins, and the trailing sentinel guarantees a match for any
// non-negative value. A value above even the top row classifies as White.
var (
	winrateTable = []threshold{
		{65, TierSuperUnicum},
		{60, TierUnicum},
		{56, TierGreat},
		{54, TierVeryGood},
		{52, TierGood},
		{49, TierAverage},
		{47, TierBelowAverage},
		{-1, TierBad},
	}
	fragsTable = []threshold{
		{1.44, TierUnicum},
		{1.2, TierGreat},
		{0.9, TierGood},
		{0.73, TierAverage},
		{0.51, TierBelowAverage},
		{-1, TierBad},
	}
	planesTable = []threshold{
		{6.06, TierUnicum},
		{3.7, TierGreat},
		{1.8, TierGood},
		{0.97, TierAverage},
		{0.22, TierBelowAverage},
		{-1, TierBad},
	}
	prTable = []threshold{
		{2450, TierSuperUnicum},
		{2100, TierUnicum},
		{1750, TierGreat},
		{1550, TierVeryGood},
		{1350, TierGood},
		{1100, TierAverage},
		{750, TierBelowAverage},
		{-1, TierBad},
	}
	overallDmgTable = []threshold{
		{48500, TierUnicum},
		{38000, TierGreat},
		{28500, TierGood},
		{23000, TierAverage},
		{16000, TierBelowAverage},
		{-1, TierBad},
	}
	shipDmgTable = []threshold{
		{1.7, TierUnicum},
		{1.3, TierGreat},
		{0.9, TierGood},
		{0.65, TierAverage},
		{0.35, TierBelowAverage},
		{-1, TierBad},
	}
	expTable = []threshold{
		{1500, TierSuperUnicum},
		{1350, TierUnicum},
		{1200, TierGreat},
		{1050, TierVeryGood},
		{900, TierGood},
		{750, TierAverage},
		{600, TierBelowAverage},
		{-1, TierBad},
	}
)

func classify(value float64, table []threshold) Tier {
	for _, row := range table {
		if value >= row.min {
			return row.tier
		}
	}
	return TierWhite
}
