package view

import (
	"context"
	"html/template"
	"log/slog"
	"sync"

	"clubdesk/internal/domain/calendar"
)

// EventSource supplies calendar events for a visible range. The weekly call
// covers the 7 days starting at startDate; the daily call covers one date.
type EventSource interface {
	WeeklyEvents(ctx context.Context, startDate string) ([]calendar.Event, error)
	DailyEvents(ctx context.Context, date string) ([]calendar.Event, error)
}

// View ties the navigator, the event source and the renderer together.
// Every state change triggers a fresh fetch; only a successful response
// replaces the event list and the rendered grid, wholesale. Each fetch is
// tagged with a generation counter so that when two triggers race (two
// navigation clicks before the first response lands) the stale response is
// discarded instead of overwriting the newer range's render.
type View struct {
	mu         sync.Mutex
	nav        *Navigator
	source     EventSource
	renderer   *Renderer
	generation uint64
	events     []calendar.Event
	grid       template.HTML
}

// New creates a view over the given source, anchored to today in week mode.
func New(locale Locale, source EventSource) *View {
	return &View{
		nav:      NewNavigator(locale),
		source:   source,
		renderer: NewRenderer(locale),
	}
}

// Navigator exposes the navigation state for read access.
func (v *View) Navigator() *Navigator { return v.nav }

// Grid returns the last successfully rendered grid. It stays in place when
// a later fetch fails.
func (v *View) Grid() template.HTML {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid
}

// Events returns the last fetched event list. The slice is replaced
// wholesale on every successful fetch, never patched.
func (v *View) Events() []calendar.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.events
}

// Navigate steps the anchor and refreshes.
func (v *View) Navigate(ctx context.Context, direction int) error {
	v.mu.Lock()
	v.nav.Navigate(direction)
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// SwitchMode changes the view mode, re-anchors to today and refreshes.
func (v *View) SwitchMode(ctx context.Context, mode Mode) error {
	v.mu.Lock()
	if err := v.nav.SwitchMode(mode); err != nil {
		v.mu.Unlock()
		return err
	}
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// GoToToday re-anchors to today and refreshes.
func (v *View) GoToToday(ctx context.Context) error {
	v.mu.Lock()
	v.nav.SetAnchorToToday()
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Refresh fetches events for the current range and re-renders the grid.
// On fetch failure the previously rendered grid remains in place and the
// error is logged; there is no retry. A response belonging to a superseded
// generation is dropped without touching the grid.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	anchor := v.nav.Anchor()
	mode := v.nav.Mode()
	days := v.nav.Days()
	today := v.nav.Today()
	v.mu.Unlock()

	anchorStr := anchor.Format("2006-01-02")
	var events []calendar.Event
	var err error
	if mode == ModeWeek {
		events, err = v.source.WeeklyEvents(ctx, anchorStr)
	} else {
		events, err = v.source.DailyEvents(ctx, anchorStr)
	}
	if err != nil {
		slog.Error("calendar_fetch_failed", "mode", string(mode), "anchor", anchorStr, "error", err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		slog.Debug("calendar_fetch_stale", "generation", gen, "current", v.generation)
		return nil
	}

	grid, err := v.renderer.Render(days, today, events)
	if err != nil {
		slog.Error("calendar_render_failed", "error", err)
		return err
	}
	v.events = events
	v.grid = grid
	return nil
}

// MonthHeader returns the localized heading for the current range.
func (v *View) MonthHeader() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderer.MonthHeader(v.nav.Anchor(), v.nav.Mode())
}
