package calendar

// Segment is the portion of one event's time block falling within one hourly
// slot. Segments are ephemeral: recomputed on every render and discarded.
// INVARIANT: for a single event, its segments partition the visible duration
// into contiguous chunks of at most 60 minutes aligned to slot boundaries;
// exactly one segment has IsStart=true and, unless the event runs past the
// terminal slot, exactly one has IsEnd=true.
type Segment struct {
	Event

	// SegmentDuration is the minutes of the event visible within this one
	// slot-hour, capped at 60.
	SegmentDuration int

	// IsStart is true iff the event's true start minute falls inside this slot.
	IsStart bool

	// IsEnd is true iff the duration remaining from this slot's start is <= 60.
	IsEnd bool
}

// SegmentsFor computes the segments occupying one (date, slot) cell.
// An event matches iff its date equals dateStr and its time block overlaps
// the slot's hour. Matches keep the input collection's relative order: two
// events sharing a slot are rendered side by side in original list order,
// never re-sorted or deduplicated. Events with an unparsable time are
// skipped rather than corrupting slot arithmetic.
//
// No slot beyond the terminal "00:00" exists, so a duration extending past
// it is displayed but truncated there.
// PRE: slotLabel is one of Slots()
// POST: pure function of its inputs; returns nil when no event matches
func SegmentsFor(dateStr, slotLabel string, events []Event) []Segment {
	slotStart := SlotMinutes(slotLabel)
	slotEnd := slotStart + 60

	var out []Segment
	for _, ev := range events {
		if ev.Date != dateStr {
			continue
		}
		start, err := ev.StartMinutes()
		if err != nil {
			continue
		}
		end := start + ev.Duration
		if start >= slotEnd || end <= slotStart {
			continue
		}
		// remaining counts down from this slot's top; it exceeds the full
		// duration in the start slot of a mid-hour event, which keeps IsEnd
		// off until the slot the event actually ends in.
		remaining := ev.Duration - (slotStart - start)
		seg := Segment{
			Event:           ev,
			SegmentDuration: min(end, slotEnd) - max(start, slotStart),
			IsStart:         start >= slotStart,
			IsEnd:           remaining <= 60,
		}
		out = append(out, seg)
	}
	return out
}
