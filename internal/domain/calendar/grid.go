package calendar

import "fmt"

// Display window constants. The grid shows hourly rows from 09:00 through
// 23:00, plus a terminal "00:00" row that holds the last fragment of any
// session running up to or past midnight.
const (
	FirstHour = 9
	LastHour  = 24

	// TerminalSlot labels the final row. It sorts after "23:00" and is
	// treated as minute 1440, not 0.
	TerminalSlot = "00:00"
)

// slots is built once; the slot list never varies by event content.
var slots = buildSlots()

// Slots returns the ordered, fixed sequence of display slot labels:
// "09:00".."23:00" followed by "00:00". Sixteen labels in total.
// PRE: none
// POST: returned slice must not be mutated by callers
func Slots() []string {
	return slots
}

func buildSlots() []string {
	out := make([]string, 0, LastHour-FirstHour+1)
	for hour := FirstHour; hour < LastHour; hour++ {
		out = append(out, fmt.Sprintf("%02d:00", hour))
	}
	return append(out, TerminalSlot)
}

// SlotMinutes normalizes a slot label to minutes since midnight.
// The terminal "00:00" slot maps to 1440 so it represents the tail end of
// the visible day rather than the start of the next.
// PRE: label is one of Slots()
// POST: returns minutes in [540, 1440]
func SlotMinutes(label string) int {
	if label == TerminalSlot {
		return 24 * 60
	}
	minutes, err := ParseClock(label)
	if err != nil {
		return 0
	}
	return minutes
}
