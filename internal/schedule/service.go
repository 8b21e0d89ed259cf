// Package schedule loads grid data from the directory, booking and
// unavailability collaborators and turns it into day, week and month views.
package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/month"
	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/apperror"
	"github.com/nekogravitycat/flight-schedule-grid/internal/render"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/telemetry"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

var (
	ErrMissingDate     = apperror.New(http.StatusBadRequest, "date is required")
	ErrMissingResource = apperror.New(http.StatusBadRequest, "resource_id is required")
	ErrRenderFailed    = apperror.New(http.StatusInternalServerError, "failed to render grid")
	ErrInvalidDate     = apperror.New(http.StatusBadRequest, "invalid date")
	ErrInvalidMode     = apperror.New(http.StatusBadRequest, "view must be day or week")
	ErrDayIndexNeeded  = apperror.New(http.StatusBadRequest, "day_index is required in week view")
)

// Query selects a day or week view.
type Query struct {
	Mode        grid.ViewMode
	Date        time.Time
	Kind        resource.Kind
	ResourceIDs []string
}

func (q Query) validate() error {
	if q.Date.IsZero() {
		return ErrMissingDate
	}
	if _, err := ParseMode(q.Mode); err != nil {
		return err
	}
	if _, err := resource.ParseKind(string(q.Kind)); err != nil {
		return err
	}
	return nil
}

// ParseMode is grid.ParseViewMode returning ErrInvalidMode.
func ParseMode(mode grid.ViewMode) (grid.ViewMode, error) {
	m, err := grid.ParseViewMode(string(mode))
	if err != nil {
		return "", ErrInvalidMode.WithCause(err)
	}
	return m, nil
}

type Service interface {
	Slots() *timeslot.Index
	// Snapshot loads everything a view of q needs.
	Snapshot(ctx context.Context, q Query) (grid.Snapshot, error)
	Layout(ctx context.Context, q Query, now time.Time) (grid.Layout, error)
	Render(ctx context.Context, q Query, now time.Time, opts render.Options) ([]byte, error)
	Month(ctx context.Context, m time.Time, resourceID string, kind resource.Kind) (month.Calendar, *resource.Resource, error)

	OpenSession(ctx context.Context, ownerID string, q Query, now time.Time) (*session.Session, error)
	Session(id, ownerID string) (*session.Session, error)
	// RefreshSession reloads the session's snapshot, keeping its gesture.
	RefreshSession(ctx context.Context, s *session.Session) error
	CloseSession(id, ownerID string) error
}

type service struct {
	slots          *timeslot.Index
	resources      resource.Service
	bookings       booking.Service
	unavailability unavailability.Source
	sessions       *session.Registry
	logger         *zap.Logger
}

func NewService(
	slots *timeslot.Index,
	resources resource.Service,
	bookings booking.Service,
	unavail unavailability.Source,
	sessions *session.Registry,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		slots:          slots,
		resources:      resources,
		bookings:       bookings,
		unavailability: unavail,
		sessions:       sessions,
		logger:         logger,
	}
}

func (s *service) Slots() *timeslot.Index { return s.slots }

// span returns [from, to) covering the displayed days of q.
func (s *service) span(q Query) (time.Time, time.Time) {
	if q.Mode == grid.ViewWeek {
		week := s.slots.Week(q.Date)
		return week[0], week[len(week)-1].AddDate(0, 0, 1)
	}
	from := s.slots.Midnight(q.Date)
	return from, from.AddDate(0, 0, 1)
}

func (s *service) Snapshot(ctx context.Context, q Query) (grid.Snapshot, error) {
	if err := q.validate(); err != nil {
		return grid.Snapshot{}, err
	}

	resources, err := s.resources.Columns(ctx, q.Kind, q.ResourceIDs)
	if err != nil {
		return grid.Snapshot{}, err
	}

	from, to := s.span(q)
	bookings, err := s.loadBookings(ctx, from, to)
	if err != nil {
		return grid.Snapshot{}, err
	}

	periods, err := s.unavailability.PeriodsBetween(ctx, from, to)
	if err != nil {
		return grid.Snapshot{}, fmt.Errorf("load unavailability failed: %w", err)
	}

	return grid.Snapshot{
		Resources:      resources,
		Bookings:       bookings,
		Unavailability: periods,
	}, nil
}

// loadBookings fetches every booking intersecting [from, to) in one unpaginated
// call so conflict flags see all of them.
func (s *service) loadBookings(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	list, _, err := s.bookings.List(ctx, booking.Filter{StartTime: &from, EndTime: &to})
	if err != nil {
		return nil, fmt.Errorf("load bookings failed: %w", err)
	}
	return list, nil
}

func (s *service) Layout(ctx context.Context, q Query, now time.Time) (grid.Layout, error) {
	snap, err := s.Snapshot(ctx, q)
	if err != nil {
		return grid.Layout{}, err
	}

	timer := time.Now()
	l := grid.New(s.slots, q.Mode, q.Date, snap, nil).Layout(now)
	telemetry.LayoutBuildDuration.WithLabelValues(string(l.Mode)).Observe(time.Since(timer).Seconds())
	return l, nil
}

func (s *service) Render(ctx context.Context, q Query, now time.Time, opts render.Options) ([]byte, error) {
	l, err := s.Layout(ctx, q, now)
	if err != nil {
		return nil, err
	}
	data, err := render.PNG(l, opts)
	if err != nil {
		s.logger.Error("render grid failed", zap.Error(err), zap.String("mode", string(q.Mode)))
		return nil, ErrRenderFailed.WithCause(err)
	}
	return data, nil
}

// Thumbnail scales a rendered grid PNG to width pixels as a JPEG.
func Thumbnail(png []byte, width int) ([]byte, error) {
	data, err := render.Thumbnail(bytes.NewReader(png), width, 0)
	if err != nil {
		return nil, ErrRenderFailed.WithCause(err)
	}
	return data, nil
}

func (s *service) Month(ctx context.Context, m time.Time, resourceID string, kind resource.Kind) (month.Calendar, *resource.Resource, error) {
	if m.IsZero() {
		return month.Calendar{}, nil, ErrMissingDate
	}
	if resourceID == "" {
		return month.Calendar{}, nil, ErrMissingResource
	}

	r, err := s.resources.GetByID(ctx, kind, resourceID)
	if err != nil {
		return month.Calendar{}, nil, err
	}

	from, to := month.Bounds(s.slots, m)
	bookings, err := s.loadBookings(ctx, from, to)
	if err != nil {
		return month.Calendar{}, nil, err
	}

	agg := month.New(s.slots, booking.NewIndex(s.slots, bookings))
	return agg.Calendar(m, r.ID, r.Kind), r, nil
}

func (s *service) OpenSession(ctx context.Context, ownerID string, q Query, now time.Time) (*session.Session, error) {
	snap, err := s.Snapshot(ctx, q)
	if err != nil {
		return nil, err
	}
	view := session.View{Mode: q.Mode, Date: q.Date, Kind: q.Kind, ResourceIDs: q.ResourceIDs}
	sess := s.sessions.Create(ownerID, view, s.slots, snap, now)
	telemetry.GridSessionsActive.Set(float64(s.sessions.Len()))
	return sess, nil
}

func (s *service) Session(id, ownerID string) (*session.Session, error) {
	return s.sessions.Get(id, ownerID)
}

func (s *service) RefreshSession(ctx context.Context, sess *session.Session) error {
	v := sess.View
	snap, err := s.Snapshot(ctx, Query{Mode: v.Mode, Date: v.Date, Kind: v.Kind, ResourceIDs: v.ResourceIDs})
	if err != nil {
		return err
	}
	sess.Update(snap)
	return nil
}

func (s *service) CloseSession(id, ownerID string) error {
	if err := s.sessions.Delete(id, ownerID); err != nil {
		return err
	}
	telemetry.GridSessionsActive.Set(float64(s.sessions.Len()))
	return nil
}
