// Package month classifies each day's booking load for one resource.
package month

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

type Tier string

const (
	TierAvailable   Tier = "available"
	TierLimited     Tier = "limited"
	TierUnavailable Tier = "unavailable"
)

// LimitedRatio is the share of operating hours at which a day becomes limited.
const LimitedRatio = 0.75

// ClassifyTier maps booked hours against operating hours. Only two thresholds
// exist: fully booked, and at least LimitedRatio booked.
func ClassifyTier(total, operatingHours float64) Tier {
	switch {
	case total >= operatingHours:
		return TierUnavailable
	case total >= LimitedRatio*operatingHours:
		return TierLimited
	default:
		return TierAvailable
	}
}

type Aggregator struct {
	slots    *timeslot.Index
	bookings *booking.Index
}

func New(slots *timeslot.Index, bookings *booking.Index) *Aggregator {
	return &Aggregator{slots: slots, bookings: bookings}
}

// TotalBookedHours sums the durations of the resource's bookings starting on date.
// Every status counts.
func (a *Aggregator) TotalBookedHours(date time.Time, resourceID string, kind resource.Kind) float64 {
	var total float64
	for _, b := range a.bookings.BookingsFor(resourceID, kind, date) {
		total += b.DurationHours()
	}
	return total
}

func (a *Aggregator) Tier(date time.Time, resourceID string, kind resource.Kind) Tier {
	return ClassifyTier(a.TotalBookedHours(date, resourceID, kind), a.slots.OperatingHours())
}

type Day struct {
	Date        time.Time
	InMonth     bool
	BookedHours float64
	Tier        Tier
}

// Calendar is a month laid out in whole weeks.
type Calendar struct {
	Year     int
	Month    time.Month
	Resource resource.Key
	Weeks    [][]Day
}

// Bounds returns the whole-week span [from, to) a calendar for the month
// containing month covers.
func Bounds(slots *timeslot.Index, month time.Time) (from, to time.Time) {
	first := firstOfMonth(slots, month)
	last := first.AddDate(0, 1, -1)
	return slots.Week(first)[0], slots.Week(last)[timeslot.DaysPerWeek-1].AddDate(0, 0, 1)
}

func firstOfMonth(slots *timeslot.Index, t time.Time) time.Time {
	local := t.In(slots.Location())
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, slots.Location())
}

// Calendar lays out the month containing month in whole weeks starting on the
// configured weekday. Padding days are classified too but have InMonth unset.
func (a *Aggregator) Calendar(month time.Time, resourceID string, kind resource.Kind) Calendar {
	first := firstOfMonth(a.slots, month)
	cal := Calendar{
		Year:     first.Year(),
		Month:    first.Month(),
		Resource: resource.Key{ID: resourceID, Kind: kind},
	}

	from, to := Bounds(a.slots, month)
	for day := from; day.Before(to); {
		week := make([]Day, timeslot.DaysPerWeek)
		for i := range week {
			total := a.TotalBookedHours(day, resourceID, kind)
			week[i] = Day{
				Date:        day,
				InMonth:     day.Month() == cal.Month && day.Year() == cal.Year,
				BookedHours: total,
				Tier:        ClassifyTier(total, a.slots.OperatingHours()),
			}
			day = day.AddDate(0, 0, 1)
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}
