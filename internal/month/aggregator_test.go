package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2026, month, day, hour, minute, 0, 0, time.UTC)
}

func testSlots() *timeslot.Index {
	cfg := timeslot.DefaultConfig()
	cfg.Location = time.UTC
	return timeslot.MustNew(cfg)
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		total float64
		want  Tier
	}{
		{0, TierAvailable},
		{7, TierAvailable},
		{10.49, TierAvailable},
		{10.5, TierLimited},
		{13.99, TierLimited},
		{14, TierUnavailable},
		{16, TierUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.total, 14), "total %v", tt.total)
	}
}

func TestAggregator(t *testing.T) {
	slots := testSlots()
	bookings := []*booking.Booking{
		{AircraftID: "a1", StartTime: at(3, 10, 6, 0), EndTime: at(3, 10, 12, 0), Status: booking.StatusConfirmed},
		{AircraftID: "a1", StartTime: at(3, 10, 12, 0), EndTime: at(3, 10, 16, 30), Status: booking.StatusPending},
		{AircraftID: "a1", StartTime: at(3, 11, 6, 0), EndTime: at(3, 11, 20, 0), Status: booking.StatusConfirmed},
		{AircraftID: "a2", StartTime: at(3, 10, 6, 0), EndTime: at(3, 10, 20, 0), Status: booking.StatusConfirmed},
		// Cancelled bookings still count toward the day's load.
		{AircraftID: "a1", StartTime: at(3, 12, 9, 0), EndTime: at(3, 12, 10, 0), Status: booking.StatusCancelled},
	}
	agg := New(slots, booking.NewIndex(slots, bookings))

	assert.InDelta(t, 10.5, agg.TotalBookedHours(at(3, 10, 0, 0), "a1", resource.KindAircraft), 1e-9)
	assert.Equal(t, TierLimited, agg.Tier(at(3, 10, 0, 0), "a1", resource.KindAircraft))
	assert.Equal(t, TierUnavailable, agg.Tier(at(3, 11, 0, 0), "a1", resource.KindAircraft))
	assert.Equal(t, TierAvailable, agg.Tier(at(3, 13, 0, 0), "a1", resource.KindAircraft))
	assert.InDelta(t, 1.0, agg.TotalBookedHours(at(3, 12, 0, 0), "a1", resource.KindAircraft), 1e-9)
	assert.Zero(t, agg.TotalBookedHours(at(3, 10, 0, 0), "a1", resource.KindInstructor))
}

func TestCalendar(t *testing.T) {
	slots := testSlots()
	bookings := []*booking.Booking{
		{AircraftID: "a1", StartTime: at(3, 11, 6, 0), EndTime: at(3, 11, 20, 0)},
		{AircraftID: "a1", StartTime: at(2, 28, 8, 0), EndTime: at(2, 28, 9, 0)},
	}
	agg := New(slots, booking.NewIndex(slots, bookings))

	cal := agg.Calendar(at(3, 17, 12, 0), "a1", resource.KindAircraft)
	assert.Equal(t, 2026, cal.Year)
	assert.Equal(t, time.March, cal.Month)
	require.Len(t, cal.Weeks, 6)

	first := cal.Weeks[0]
	assert.Equal(t, at(2, 23, 0, 0), first[0].Date)
	assert.Equal(t, time.Monday, first[0].Date.Weekday())
	assert.False(t, first[0].InMonth)
	assert.True(t, first[6].InMonth)

	// Padding days are still classified.
	assert.InDelta(t, 1.0, first[5].BookedHours, 1e-9)

	march11 := cal.Weeks[2][2]
	assert.Equal(t, at(3, 11, 0, 0), march11.Date)
	assert.Equal(t, TierUnavailable, march11.Tier)

	last := cal.Weeks[5]
	assert.Equal(t, at(4, 5, 0, 0), last[6].Date)

	from, to := Bounds(slots, at(3, 1, 0, 0))
	assert.Equal(t, at(2, 23, 0, 0), from)
	assert.Equal(t, at(4, 6, 0, 0), to)
}

func TestCalendarSundayStart(t *testing.T) {
	cfg := timeslot.DefaultConfig()
	cfg.Location = time.UTC
	cfg.WeekStartsOn = time.Sunday
	slots := timeslot.MustNew(cfg)
	agg := New(slots, booking.NewIndex(slots, nil))

	cal := agg.Calendar(at(3, 5, 0, 0), "a1", resource.KindAircraft)
	require.Len(t, cal.Weeks, 5)
	assert.Equal(t, at(3, 1, 0, 0), cal.Weeks[0][0].Date)
	for _, week := range cal.Weeks {
		for _, d := range week {
			assert.Equal(t, TierAvailable, d.Tier)
		}
	}
}
