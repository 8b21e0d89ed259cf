// Package grid lays out bookings and unavailability on a time × resource grid for
// the day and week views and turns cell and block interactions into requests.
package grid

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

type ViewMode string

const (
	ViewDay  ViewMode = "day"
	ViewWeek ViewMode = "week"
)

// ParseViewMode accepts "day" or "week".
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewDay, ViewWeek:
		return ViewMode(s), nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Requester receives the actions the grid asks its owner to perform.
type Requester interface {
	RequestNewBooking(commit drag.Commit)
	RequestEditBooking(b *booking.Booking)
	RequestBlockedFeedback(reason string)
}

// Snapshot is the read-only data a grid is drawn from.
type Snapshot struct {
	Resources      []*resource.Resource
	Bookings       []*booking.Booking
	Unavailability []unavailability.Period
}

// Grid is one day or week view with its gesture state. It is not safe for concurrent use.
type Grid struct {
	slots     *timeslot.Index
	mode      ViewMode
	days      []time.Time
	resources []*resource.Resource
	oracle    *unavailability.Oracle
	bookings  *booking.Index
	drag      *drag.Controller
	requester Requester
}

// New builds a grid showing the day of date, or its week for ViewWeek.
func New(slots *timeslot.Index, mode ViewMode, date time.Time, snap Snapshot, requester Requester) *Grid {
	g := &Grid{
		slots:     slots,
		mode:      mode,
		requester: requester,
	}
	if mode == ViewWeek {
		g.days = slots.Week(date)
	} else {
		g.mode = ViewDay
		g.days = []time.Time{slots.Midnight(date)}
	}
	g.drag = drag.New(slots, g.blocked)
	g.Update(snap)
	return g
}

// Update swaps in a fresh snapshot. An active gesture survives.
func (g *Grid) Update(snap Snapshot) {
	g.resources = snap.Resources
	g.oracle = unavailability.NewOracle(g.slots, snap.Unavailability)
	g.bookings = booking.NewIndex(g.slots, snap.Bookings)
}

func (g *Grid) Mode() ViewMode { return g.mode }

// Days returns the displayed days at midnight.
func (g *Grid) Days() []time.Time { return g.days }

func (g *Grid) Slots() *timeslot.Index { return g.slots }

func (g *Grid) Resources() []*resource.Resource { return g.resources }

func (g *Grid) Oracle() *unavailability.Oracle { return g.oracle }

func (g *Grid) Bookings() *booking.Index { return g.bookings }

func (g *Grid) DragState() drag.State { return g.drag.State() }

func (g *Grid) Selection() (drag.Selection, bool) { return g.drag.Selection() }

// KeyFor returns the gesture key of a column.
func (g *Grid) KeyFor(r *resource.Resource, dayIndex int) drag.Key {
	if g.mode == ViewDay {
		dayIndex = drag.NoDay
	}
	return drag.Key{ResourceID: r.ID, ResourceKind: r.Kind, DayIndex: dayIndex}
}

// DayOf maps a key's day index to a displayed date. ok is false for indexes outside the view.
func (g *Grid) DayOf(dayIndex int) (time.Time, bool) {
	if dayIndex == drag.NoDay {
		return g.days[0], g.mode == ViewDay
	}
	if g.mode == ViewDay || dayIndex < 0 || dayIndex >= len(g.days) {
		return time.Time{}, false
	}
	return g.days[dayIndex], true
}

func (g *Grid) blocked(slot timeslot.Slot, key drag.Key) bool {
	_, blocked := g.blockingPeriod(slot, key)
	return blocked
}

func (g *Grid) blockingPeriod(slot timeslot.Slot, key drag.Key) (unavailability.Period, bool) {
	day, ok := g.DayOf(key.DayIndex)
	if !ok {
		return unavailability.Period{}, false
	}
	return g.oracle.At(key.ResourceID, key.ResourceKind, slot, day)
}

// PressCell starts a gesture. A press on a blocked cell asks for feedback with the
// blocking reason instead.
func (g *Grid) PressCell(slot timeslot.Slot, key drag.Key) bool {
	if _, ok := g.DayOf(key.DayIndex); !ok {
		return false
	}
	if p, blocked := g.blockingPeriod(slot, key); blocked {
		if g.requester != nil {
			g.requester.RequestBlockedFeedback(p.Reason)
		}
		return false
	}
	return g.drag.PointerDown(slot, key)
}

func (g *Grid) EnterCell(slot timeslot.Slot, key drag.Key) bool {
	return g.drag.PointerEnter(slot, key)
}

// Release ends the gesture and requests a booking for the selected range.
func (g *Grid) Release() (drag.Commit, bool) {
	date := g.days[0]
	if sel, ok := g.drag.Selection(); ok {
		if d, ok := g.DayOf(sel.Key.DayIndex); ok {
			date = d
		}
	}
	commit, ok := g.drag.PointerUp(date)
	if ok && g.requester != nil {
		g.requester.RequestNewBooking(commit)
	}
	return commit, ok
}

func (g *Grid) Escape() {
	g.drag.Escape()
}

// ClickBooking asks to edit the booking with id. It reports false for unknown ids.
func (g *Grid) ClickBooking(id string) bool {
	for _, b := range g.bookings.All() {
		if b.ID == id {
			if g.requester != nil {
				g.requester.RequestEditBooking(b)
			}
			return true
		}
	}
	return false
}
