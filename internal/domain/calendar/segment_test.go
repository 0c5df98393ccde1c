package calendar

import "testing"

func event(id int, date, clock string, duration int) Event {
	return Event{
		ID:       id,
		Date:     date,
		Time:     clock,
		Duration: duration,
		Title:    "Judo",
		Teacher:  "Dana",
		Color:    "#3B82F6",
	}
}

// collectSegments walks every slot for a date and returns the segments found,
// one call per slot as the renderer would make them.
func collectSegments(date string, events []Event) []Segment {
	var all []Segment
	for _, slot := range Slots() {
		all = append(all, SegmentsFor(date, slot, events)...)
	}
	return all
}

// TestSegmentsFor_SingleSlotEvent tests an event exactly filling one slot.
func TestSegmentsFor_SingleSlotEvent(t *testing.T) {
	events := []Event{event(1, "2026-09-02", "13:00", 60)}

	segs := SegmentsFor("2026-09-02", "13:00", events)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	s := segs[0]
	if s.SegmentDuration != 60 || !s.IsStart || !s.IsEnd {
		t.Fatalf("expected 60min start+end segment, got %+v", s)
	}

	// Neighbouring slots stay empty.
	if got := SegmentsFor("2026-09-02", "12:00", events); got != nil {
		t.Fatalf("slot 12:00 should be empty, got %d segments", len(got))
	}
	if got := SegmentsFor("2026-09-02", "14:00", events); got != nil {
		t.Fatalf("slot 14:00 should be empty, got %d segments", len(got))
	}
}

// TestSegmentsFor_MidHourStart tests a 13:30 start with 90 minute duration:
// 30 minutes in the 13:00 slot, 60 in the 14:00 slot.
func TestSegmentsFor_MidHourStart(t *testing.T) {
	events := []Event{event(1, "2026-09-02", "13:30", 90)}

	first := SegmentsFor("2026-09-02", "13:00", events)
	if len(first) != 1 {
		t.Fatalf("expected 1 segment in 13:00, got %d", len(first))
	}
	if first[0].SegmentDuration != 30 || !first[0].IsStart || first[0].IsEnd {
		t.Fatalf("13:00 segment wrong: %+v", first[0])
	}

	second := SegmentsFor("2026-09-02", "14:00", events)
	if len(second) != 1 {
		t.Fatalf("expected 1 segment in 14:00, got %d", len(second))
	}
	if second[0].SegmentDuration != 60 || second[0].IsStart || !second[0].IsEnd {
		t.Fatalf("14:00 segment wrong: %+v", second[0])
	}

	if got := SegmentsFor("2026-09-02", "15:00", events); got != nil {
		t.Fatalf("slot 15:00 should be empty, got %d segments", len(got))
	}
}

// TestSegmentsFor_CrossMidnight tests the terminal slot: a 23:30 event with
// 45 minutes ends inside "00:00" and no slot beyond it exists.
func TestSegmentsFor_CrossMidnight(t *testing.T) {
	events := []Event{event(1, "2026-09-02", "23:30", 45)}

	late := SegmentsFor("2026-09-02", "23:00", events)
	if len(late) != 1 {
		t.Fatalf("expected 1 segment in 23:00, got %d", len(late))
	}
	if late[0].SegmentDuration != 30 || !late[0].IsStart || late[0].IsEnd {
		t.Fatalf("23:00 segment wrong: %+v", late[0])
	}

	terminal := SegmentsFor("2026-09-02", "00:00", events)
	if len(terminal) != 1 {
		t.Fatalf("expected 1 segment in 00:00, got %d", len(terminal))
	}
	if terminal[0].SegmentDuration != 15 || terminal[0].IsStart || !terminal[0].IsEnd {
		t.Fatalf("00:00 segment wrong: %+v", terminal[0])
	}

	all := collectSegments("2026-09-02", events)
	if len(all) != 2 {
		t.Fatalf("expected exactly 2 segments across the whole grid, got %d", len(all))
	}
}

// TestSegmentsFor_PartitionInvariant tests that segment durations partition
// the full duration for boundary-aligned events, with exactly one start and
// one end segment.
func TestSegmentsFor_PartitionInvariant(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		duration int
		slots    int
	}{
		{"one hour", "10:00", 60, 1},
		{"two hours", "10:00", 120, 2},
		{"three hours", "18:00", 180, 3},
		{"into terminal slot", "22:00", 180, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := []Event{event(1, "2026-09-02", tc.clock, tc.duration)}
			all := collectSegments("2026-09-02", events)
			if len(all) != tc.slots {
				t.Fatalf("expected %d segments, got %d", tc.slots, len(all))
			}

			sum, starts, ends := 0, 0, 0
			for _, s := range all {
				sum += s.SegmentDuration
				if s.SegmentDuration < 1 || s.SegmentDuration > 60 {
					t.Fatalf("segment duration out of range: %+v", s)
				}
				if s.IsStart {
					starts++
				}
				if s.IsEnd {
					ends++
				}
			}
			if sum != tc.duration {
				t.Fatalf("segment durations sum to %d, want %d", sum, tc.duration)
			}
			if starts != 1 || ends != 1 {
				t.Fatalf("expected exactly one start and one end, got %d/%d", starts, ends)
			}
		})
	}
}

// TestSegmentsFor_PastTerminalTruncated tests that a duration extending past
// the 00:00 slot is displayed up to the terminal slot and truncated there.
func TestSegmentsFor_PastTerminalTruncated(t *testing.T) {
	events := []Event{event(1, "2026-09-02", "23:30", 120)} // raw end 01:30

	terminal := SegmentsFor("2026-09-02", "00:00", events)
	if len(terminal) != 1 {
		t.Fatalf("expected 1 segment in 00:00, got %d", len(terminal))
	}
	// 90 minutes remain past midnight but only the slot hour is shown,
	// and the tail has not ended yet.
	if terminal[0].SegmentDuration != 60 || terminal[0].IsEnd {
		t.Fatalf("00:00 segment wrong: %+v", terminal[0])
	}
}

// TestSegmentsFor_OverlapOrderPreserved tests that two events sharing a slot
// are both returned, in original input order.
func TestSegmentsFor_OverlapOrderPreserved(t *testing.T) {
	events := []Event{
		event(7, "2026-09-02", "16:00", 60),
		event(3, "2026-09-02", "16:00", 90),
	}

	segs := SegmentsFor("2026-09-02", "16:00", events)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].ID != 7 || segs[1].ID != 3 {
		t.Fatalf("input order not preserved: got ids %d, %d", segs[0].ID, segs[1].ID)
	}
}

// TestSegmentsFor_FiltersDateAndMalformed tests that other dates and events
// with unparsable times are excluded without affecting the rest.
func TestSegmentsFor_FiltersDateAndMalformed(t *testing.T) {
	events := []Event{
		event(1, "2026-09-01", "14:00", 60),
		{ID: 2, Date: "2026-09-02", Time: "garbage", Duration: 60},
		event(3, "2026-09-02", "14:00", 60),
	}

	segs := SegmentsFor("2026-09-02", "14:00", events)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].ID != 3 {
		t.Fatalf("expected event 3, got %d", segs[0].ID)
	}
}

// TestEvent_Validate tests per-event validation used to skip malformed rows.
func TestEvent_Validate(t *testing.T) {
	valid := event(1, "2026-09-02", "14:00", 60)
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(e *Event)
		wantErr error
	}{
		{"empty date", func(e *Event) { e.Date = " " }, ErrEmptyDate},
		{"bad time", func(e *Event) { e.Time = "25:00" }, ErrInvalidTime},
		{"zero duration", func(e *Event) { e.Duration = 0 }, ErrBadDuration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.modify(&e)
			if err := e.Validate(); err != tc.wantErr {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
