package view

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"clubdesk/internal/domain/calendar"
)

// gutterPx is the horizontal gap between side-by-side segments in one slot.
const gutterPx = 4

// gridTemplate lays out the timeline grid. All styling decisions are
// computed in Go; the template only places them.
var gridTemplate = template.Must(template.New("calendar-grid").Parse(`<div class="calendar-timeline-view" dir="{{.Direction}}" style="--days-to-show:{{.DayCount}};">
<div class="calendar-header">
<div class="timeline-header"></div>
{{range .Headers}}<div class="day-header{{if .IsToday}} today{{end}}"><span class="day-name">{{.Name}}</span><span class="day-date">{{.DayNumber}}</span></div>
{{end}}</div>
<div class="calendar-body">
<div class="timeline-column">
{{range .SlotLabels}}<div class="time-slot">{{.}}</div>
{{end}}</div>
{{range .Columns}}<div class="day-column{{if .IsToday}} today{{end}}">
{{range .Cells}}<div class="time-slot-content{{if .NoBorder}} no-border{{end}}"{{if .Multi}} style="flex-direction:row;align-items:stretch;"{{end}}>
{{range .Segments}}<div class="calendar-event {{.RadiusClass}}{{if .Shadow}} shadow{{end}}" data-course-id="{{.CourseID}}" style="{{.Style}}">{{if .Title}}<span class="event-title">{{.Title}}</span>{{end}}</div>
{{end}}</div>
{{end}}</div>
{{end}}</div>
</div>
`))

// Grid is the fully computed view-model for one render pass.
type Grid struct {
	Direction  Direction
	DayCount   int
	Headers    []DayHeader
	SlotLabels []string
	Columns    []DayColumn
}

// DayHeader is one localized column heading.
type DayHeader struct {
	Name      string
	DayNumber int
	IsToday   bool
}

// DayColumn is one day's stack of slot cells.
type DayColumn struct {
	IsToday bool
	Cells   []Cell
}

// Cell is one (day, slot) cell.
type Cell struct {
	// NoBorder suppresses the dividing line below this cell when a segment
	// continues into the next slot.
	NoBorder bool
	Multi    bool
	Segments []CellSegment
}

// CellSegment is one rendered segment inside a cell.
type CellSegment struct {
	CourseID    int
	Title       string // empty unless this is the start segment
	RadiusClass string
	Shadow      bool
	Style       template.CSS
}

// Renderer composes the slot grid, the segmenter output and the locale
// tables into the calendar markup. It holds no state: identical inputs
// produce identical markup.
type Renderer struct {
	locale Locale
}

// NewRenderer creates a renderer for the given locale.
func NewRenderer(locale Locale) *Renderer {
	return &Renderer{locale: locale}
}

// BuildGrid computes the grid view-model for the given days and events.
// PRE: days is non-empty and in display order
// POST: pure function of its inputs
func (r *Renderer) BuildGrid(days []time.Time, today time.Time, events []calendar.Event) Grid {
	g := Grid{
		Direction:  r.locale.Direction(),
		DayCount:   len(days),
		SlotLabels: calendar.Slots(),
	}

	for _, day := range days {
		isToday := sameDate(day, today)
		g.Headers = append(g.Headers, DayHeader{
			Name:      r.locale.DayName(day.Weekday()),
			DayNumber: day.Day(),
			IsToday:   isToday,
		})

		col := DayColumn{IsToday: isToday}
		dateStr := day.Format("2006-01-02")
		for _, slot := range g.SlotLabels {
			col.Cells = append(col.Cells, buildCell(dateStr, slot, events))
		}
		g.Columns = append(g.Columns, col)
	}
	return g
}

// Render executes the grid template over the computed view-model.
// POST: deterministic markup for deterministic input order
func (r *Renderer) Render(days []time.Time, today time.Time, events []calendar.Event) (template.HTML, error) {
	var buf bytes.Buffer
	if err := gridTemplate.Execute(&buf, r.BuildGrid(days, today, events)); err != nil {
		return "", fmt.Errorf("render calendar grid: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// MonthHeader returns the localized heading above the grid: month + year in
// week mode, month + day + year in day mode.
func (r *Renderer) MonthHeader(anchor time.Time, mode Mode) string {
	month := r.locale.MonthName(anchor.Month())
	if mode == ModeDay {
		return fmt.Sprintf("%s %d, %d", month, anchor.Day(), anchor.Year())
	}
	return fmt.Sprintf("%s %d", month, anchor.Year())
}

// HeaderCorrection computes the padding that keeps the day-header row
// pixel-aligned with the scrollable body below it. The body's vertical
// scrollbar sits on the trailing edge of the active direction, so the
// header is padded on that side.
// PRE: scrollbarWidth >= 0
// POST: exactly one of padLeft/padRight is non-zero when scrollbarWidth > 0
func HeaderCorrection(scrollbarWidth int, dir Direction) (padLeft, padRight int) {
	if scrollbarWidth <= 0 {
		return 0, 0
	}
	if dir == DirectionRTL {
		return scrollbarWidth, 0
	}
	return 0, scrollbarWidth
}

func buildCell(dateStr, slot string, events []calendar.Event) Cell {
	segments := calendar.SegmentsFor(dateStr, slot, events)
	cell := Cell{Multi: len(segments) > 1}
	for _, seg := range segments {
		if !seg.IsEnd {
			cell.NoBorder = true
		}
		cell.Segments = append(cell.Segments, buildSegment(seg, len(segments)))
	}
	return cell
}

// buildSegment derives the per-segment styling. Top and bottom borders only
// render on the start and end segments so consecutive slot cells merge into
// one continuous pill; side borders always carry the event color.
func buildSegment(seg calendar.Segment, count int) CellSegment {
	cs := CellSegment{
		CourseID:    seg.ID,
		RadiusClass: radiusClass(seg),
		Shadow:      seg.IsStart || seg.IsEnd,
	}
	if seg.IsStart {
		cs.Title = seg.Title
	}

	style := ""
	if seg.IsStart {
		style += fmt.Sprintf("border-top:4px solid %s;", seg.Color)
	} else {
		style += "border-top:none;"
	}
	if seg.IsEnd {
		style += fmt.Sprintf("border-bottom:4px solid %s;", seg.Color)
	} else {
		style += "border-bottom:none;"
	}
	style += fmt.Sprintf("border-left:4px solid %s;border-right:4px solid %s;", seg.Color, seg.Color)
	if count > 1 {
		style += fmt.Sprintf("width:calc(%.4f%% - %dpx);margin-inline-end:%dpx;", 100.0/float64(count), gutterPx, gutterPx)
	} else {
		style += "width:100%;"
	}
	style += fmt.Sprintf("height:%dpx;", seg.SegmentDuration)
	cs.Style = template.CSS(style)
	return cs
}

func radiusClass(seg calendar.Segment) string {
	switch {
	case seg.IsStart && seg.IsEnd:
		return "rounded"
	case seg.IsStart:
		return "rounded-top"
	case seg.IsEnd:
		return "rounded-bottom"
	default:
		return "rounded-none"
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
