package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/month"
	"github.com/nekogravitycat/flight-schedule-grid/internal/render"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

type fakeResources struct {
	items []*resource.Resource
}

func (f *fakeResources) GetByID(_ context.Context, kind resource.Kind, id string) (*resource.Resource, error) {
	for _, r := range f.items {
		if r.ID == id && r.Kind == kind {
			return r, nil
		}
	}
	return nil, resource.ErrNotFound
}

func (f *fakeResources) List(context.Context, resource.Filter) ([]*resource.Resource, int, error) {
	return f.items, len(f.items), nil
}

func (f *fakeResources) Columns(_ context.Context, kind resource.Kind, _ []string) ([]*resource.Resource, error) {
	var out []*resource.Resource
	for _, r := range f.items {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBookings struct {
	items   []*booking.Booking
	filters []booking.Filter
}

func (f *fakeBookings) Create(context.Context, booking.CreateRequest) (*booking.Booking, error) {
	return nil, booking.ErrInvalidInput
}

func (f *fakeBookings) GetByID(context.Context, string) (*booking.Booking, error) {
	return nil, booking.ErrNotFound
}

func (f *fakeBookings) List(_ context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	f.filters = append(f.filters, filter)
	return f.items, len(f.items), nil
}

// 2026-03-10 is a Tuesday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func newTestService() (*service, *fakeBookings) {
	cfg := timeslot.DefaultConfig()
	cfg.Location = time.UTC
	bookings := &fakeBookings{items: []*booking.Booking{
		{ID: "b1", AircraftID: "a1", StudentName: "Jamie", StartTime: at(10, 9, 0), EndTime: at(10, 10, 30), Status: booking.StatusConfirmed},
	}}
	resources := &fakeResources{items: []*resource.Resource{
		{ID: "a1", Kind: resource.KindAircraft, Name: "N172SP"},
		{ID: "a2", Kind: resource.KindAircraft, Name: "N28PA"},
		{ID: "i1", Kind: resource.KindInstructor, Name: "Alex"},
	}}
	unavail := unavailability.StaticSource{
		{ResourceID: "a2", ResourceKind: resource.KindAircraft, StartTime: at(10, 12, 0), EndTime: at(10, 14, 0), Reason: "100-hour inspection"},
		{ResourceID: "a2", ResourceKind: resource.KindAircraft, StartTime: at(20, 12, 0), EndTime: at(20, 14, 0), Reason: "Annual"},
	}
	s := NewService(timeslot.MustNew(cfg), resources, bookings, unavail, session.NewRegistry(nil), nil).(*service)
	return s, bookings
}

func TestSnapshotSpan(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mode     grid.ViewMode
		from, to time.Time
	}{
		{"day", grid.ViewDay, at(10, 0, 0), at(11, 0, 0)},
		{"week", grid.ViewWeek, at(9, 0, 0), at(16, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bookings := newTestService()
			snap, err := s.Snapshot(ctx, Query{Mode: tt.mode, Date: at(10, 15, 0), Kind: resource.KindAircraft})
			require.NoError(t, err)

			assert.Len(t, snap.Resources, 2)
			assert.Len(t, snap.Bookings, 1)
			require.Len(t, snap.Unavailability, 1)
			assert.Equal(t, "100-hour inspection", snap.Unavailability[0].Reason)

			require.Len(t, bookings.filters, 1)
			f := bookings.filters[0]
			assert.Zero(t, f.PageSize)
			assert.Equal(t, tt.from, *f.StartTime)
			assert.Equal(t, tt.to, *f.EndTime)
		})
	}
}

func TestSnapshotValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService()

	_, err := s.Snapshot(ctx, Query{Mode: grid.ViewDay, Kind: resource.KindAircraft})
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = s.Snapshot(ctx, Query{Mode: "month", Date: at(10, 0, 0), Kind: resource.KindAircraft})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = s.Snapshot(ctx, Query{Mode: grid.ViewDay, Date: at(10, 0, 0), Kind: "glider"})
	assert.ErrorIs(t, err, resource.ErrInvalidKind)
}

func TestLayout(t *testing.T) {
	s, _ := newTestService()
	l, err := s.Layout(context.Background(), Query{Mode: grid.ViewDay, Date: at(10, 0, 0), Kind: resource.KindAircraft}, at(10, 9, 15))
	require.NoError(t, err)

	require.Len(t, l.Columns, 2)
	require.Len(t, l.Columns[0].Blocks, 1)
	assert.Equal(t, 8, l.Columns[0].Blocks[0].Position.RowStart)
	assert.False(t, l.Columns[1].Cells[12].Available)
	assert.True(t, l.Now.Visible)
	assert.Equal(t, timeslot.Slot(6), l.Now.Slot)
}

func TestRender(t *testing.T) {
	s, _ := newTestService()
	data, err := s.Render(context.Background(), Query{Mode: grid.ViewWeek, Date: at(10, 0, 0), Kind: resource.KindAircraft}, at(10, 9, 0), render.Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	thumb, err := Thumbnail(data, 120)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, thumb[:2])
}

func TestMonth(t *testing.T) {
	ctx := context.Background()
	s, bookings := newTestService()
	bookings.items = append(bookings.items,
		&booking.Booking{ID: "b2", AircraftID: "a1", StartTime: at(12, 6, 0), EndTime: at(12, 20, 0)},
	)

	cal, r, err := s.Month(ctx, at(15, 0, 0), "a1", resource.KindAircraft)
	require.NoError(t, err)
	assert.Equal(t, "N172SP", r.Name)
	assert.Equal(t, time.March, cal.Month)
	require.Len(t, cal.Weeks, 6)

	// Monday 2026-03-09 starts the third week; the 12th is its Thursday.
	assert.Equal(t, month.TierUnavailable, cal.Weeks[2][3].Tier)
	assert.Equal(t, 1.5, cal.Weeks[2][1].BookedHours)
	assert.Equal(t, month.TierAvailable, cal.Weeks[2][1].Tier)

	f := bookings.filters[0]
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), *f.StartTime)
	assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), *f.EndTime)

	_, _, err = s.Month(ctx, at(15, 0, 0), "", resource.KindAircraft)
	assert.ErrorIs(t, err, ErrMissingResource)
	_, _, err = s.Month(ctx, at(15, 0, 0), "a1", resource.KindInstructor)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s, bookings := newTestService()
	q := Query{Mode: grid.ViewDay, Date: at(10, 0, 0), Kind: resource.KindAircraft}

	sess, err := s.OpenSession(ctx, "user-1", q, at(10, 8, 0))
	require.NoError(t, err)

	got, err := s.Session(sess.ID, "user-1")
	require.NoError(t, err)
	assert.Same(t, sess, got)

	key := drag.Key{ResourceID: "a1", ResourceKind: resource.KindAircraft, DayIndex: drag.NoDay}
	sess.Do(func(g *grid.Grid) { g.PressCell(10, key) })

	bookings.items = append(bookings.items,
		&booking.Booking{ID: "b2", AircraftID: "a2", StartTime: at(10, 15, 0), EndTime: at(10, 16, 0)},
	)
	require.NoError(t, s.RefreshSession(ctx, sess))

	l := sess.Layout()
	require.NotNil(t, l.Selection)
	assert.Equal(t, timeslot.Slot(10), l.Selection.Anchor)
	assert.Len(t, l.Columns[1].Blocks, 1)

	require.NoError(t, s.CloseSession(sess.ID, "user-1"))
	_, err = s.Session(sess.ID, "user-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
