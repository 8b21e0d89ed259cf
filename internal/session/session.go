// Package session keeps interactive grids alive between HTTP requests. Each
// session owns one grid and therefore one drag gesture.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/apperror"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

var (
	ErrSessionNotFound  = apperror.New(http.StatusNotFound, "grid session not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "grid session belongs to another user")
)

type EventKind string

const (
	EventNewBooking      EventKind = "new_booking"
	EventEditBooking     EventKind = "edit_booking"
	EventBlockedFeedback EventKind = "blocked_feedback"
)

// Event is one outbound request the grid emitted during an interaction.
type Event struct {
	Kind    EventKind
	Commit  *drag.Commit
	Booking *booking.Booking
	Reason  string
}

// recorder collects grid requests so they can be returned to the caller.
type recorder struct {
	events []Event
}

func (r *recorder) RequestNewBooking(c drag.Commit) {
	r.events = append(r.events, Event{Kind: EventNewBooking, Commit: &c})
}

func (r *recorder) RequestEditBooking(b *booking.Booking) {
	r.events = append(r.events, Event{Kind: EventEditBooking, Booking: b})
}

func (r *recorder) RequestBlockedFeedback(reason string) {
	r.events = append(r.events, Event{Kind: EventBlockedFeedback, Reason: reason})
}

func (r *recorder) drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// View is what a session displays.
type View struct {
	Mode        grid.ViewMode
	Date        time.Time
	Kind        resource.Kind
	ResourceIDs []string
}

// Session serialises access to its grid.
type Session struct {
	ID        string
	OwnerID   string
	View      View
	CreatedAt time.Time

	mu   sync.Mutex
	grid *grid.Grid
	rec  *recorder
	now  time.Time
}

// Do runs fn against the grid under the session lock and returns the requests it emitted.
func (s *Session) Do(fn func(g *grid.Grid)) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.drain()
	fn(s.grid)
	return s.rec.drain()
}

// Layout computes the grid at the session's current time.
func (s *Session) Layout() grid.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Layout(s.now)
}

// Update swaps in fresh data, keeping any active gesture.
func (s *Session) Update(snap grid.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Update(snap)
}

// SetNow moves the current-time indicator.
func (s *Session) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Session) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
