package snapshot

import (
	"fmt"
	"sort"
)

// MaxSelectionChoices caps how many fallback days are offered at once.
const MaxSelectionChoices = 25

// SelectionState is the phase of a fallback-day negotiation.
type SelectionState int

const (
	// AwaitingSelection means the requested day had no usable data and the
	// caller is being offered earlier alternatives.
	AwaitingSelection SelectionState = iota
	// Resolved means a day was settled on.
	Resolved
	// Cancelled means the caller gave up or no alternatives existed.
	Cancelled
)

func (s SelectionState) String() string {
	switch s {
	case AwaitingSelection:
		return "awaiting_selection"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// DaySelection drives the pick-an-earlier-day negotiation as a plain state
// machine. The interactive surface (chat buttons, timeouts) lives entirely
// in the command layer, which feeds chosen days back in; the delta engine
// itself is a single-shot computation and never loops.
type DaySelection struct {
	state   SelectionState
	day     int64
	maxDay  int64
	choices []int64
}

// NewDaySelection starts a negotiation at the requested day, bounded by the
// caller's maximum allowed window.
func NewDaySelection(requestedDay, maxDay int64) *DaySelection {
	return &DaySelection{
		state:  AwaitingSelection,
		day:    requestedDay,
		maxDay: maxDay,
	}
}

// State returns the current phase.
func (d *DaySelection) State() SelectionState {
	return d.state
}

// Day returns the currently targeted day.
func (d *DaySelection) Day() int64 {
	return d.day
}

// Choices returns the fallback days currently on offer.
func (d *DaySelection) Choices() []int64 {
	return d.choices
}

// Resolve marks the current day as satisfied.
func (d *DaySelection) Resolve() {
	if d.state == AwaitingSelection {
		d.state = Resolved
	}
}

// Offer presents earlier alternative days after a miss. Days are deduped,
// sorted ascending and capped; an empty offer cancels the negotiation
// because there is nothing left to choose.
func (d *DaySelection) Offer(availableDays []int64) {
	if d.state != AwaitingSelection {
		return
	}

	seen := make(map[int64]struct{}, len(availableDays))
	choices := make([]int64, 0, len(availableDays))
	for _, day := range availableDays {
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		choices = append(choices, day)
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i] < choices[j] })
	if len(choices) > MaxSelectionChoices {
		choices = choices[:MaxSelectionChoices]
	}

	if len(choices) == 0 {
		d.state = Cancelled
		d.choices = nil
		return
	}
	d.choices = choices
}

// Choose retargets the negotiation at one of the offered days. Choosing a
// day that was never offered or that exceeds the allowed window is rejected.
func (d *DaySelection) Choose(day int64) error {
	if d.state != AwaitingSelection {
		return fmt.Errorf("selection already %s", d.state)
	}
	if day > d.maxDay {
		return fmt.Errorf("day %d exceeds maximum %d", day, d.maxDay)
	}
	for _, offered := range d.choices {
		if offered == day {
			d.day = day
			d.choices = nil
			return nil
		}
	}
	return fmt.Errorf("day %d was not offered", day)
}

// Cancel abandons the negotiation.
func (d *DaySelection) Cancel() {
	if d.state == AwaitingSelection {
		d.state = Cancelled
	}
}
