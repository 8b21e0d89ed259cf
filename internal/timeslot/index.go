package timeslot

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidHours       = errors.New("grid start hour must be before end hour within 0-24")
	ErrInvalidSlotMinutes = errors.New("slot minutes must be a positive divisor of 60")
)

// Slot is an index into the operating window of a single day. Slot 0 starts at Config.StartHour.
type Slot int

// OutOfRange is returned for times that cannot be placed on the grid.
const OutOfRange Slot = -1

// DaysPerWeek is the number of day columns in a week view.
const DaysPerWeek = 7

// Config describes the operating window and slot width of a grid.
type Config struct {
	StartHour    int
	EndHour      int
	SlotMinutes  int
	WeekStartsOn time.Weekday
	Location     *time.Location
}

// DefaultConfig returns the 06:00-20:00 window with 30-minute slots.
func DefaultConfig() Config {
	return Config{
		StartHour:    6,
		EndHour:      20,
		SlotMinutes:  30,
		WeekStartsOn: time.Monday,
		Location:     time.Local,
	}
}

// Validate checks that the window and slot width are usable.
func (c Config) Validate() error {
	if c.StartHour < 0 || c.EndHour > 24 || c.EndHour <= c.StartHour {
		return fmt.Errorf("%w: %d-%d", ErrInvalidHours, c.StartHour, c.EndHour)
	}
	if c.SlotMinutes <= 0 || 60%c.SlotMinutes != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSlotMinutes, c.SlotMinutes)
	}
	return nil
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Index converts between wall-clock time and slot indexes. It holds no state beyond its configuration.
type Index struct {
	cfg Config
}

// New validates cfg and returns an Index for it.
func New(cfg Config) (*Index, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Index{cfg: cfg}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config) *Index {
	ix, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return ix
}

func (ix *Index) Config() Config { return ix.cfg }

func (ix *Index) Location() *time.Location { return ix.cfg.Location }

func (ix *Index) SlotsPerHour() int { return 60 / ix.cfg.SlotMinutes }

func (ix *Index) SlotDuration() time.Duration {
	return time.Duration(ix.cfg.SlotMinutes) * time.Minute
}

// Count is the number of slots in one day.
func (ix *Index) Count() int {
	return (ix.cfg.EndHour - ix.cfg.StartHour) * ix.SlotsPerHour()
}

// OperatingHours is the length of the window in hours.
func (ix *Index) OperatingHours() float64 {
	return float64(ix.cfg.EndHour - ix.cfg.StartHour)
}

// Valid reports whether s lies in [0, Count).
func (ix *Index) Valid(s Slot) bool {
	return s >= 0 && int(s) < ix.Count()
}

// SlotOf returns the slot containing t, or OutOfRange when t is before the
// start hour or at/after the end hour.
func (ix *Index) SlotOf(t time.Time) Slot {
	local := t.In(ix.cfg.Location)
	return ix.SlotOfClock(local.Hour(), local.Minute())
}

// SlotOfClock is SlotOf for a bare time of day.
func (ix *Index) SlotOfClock(hour, minute int) Slot {
	if hour < ix.cfg.StartHour || hour >= ix.cfg.EndHour {
		return OutOfRange
	}
	return Slot((hour-ix.cfg.StartHour)*ix.SlotsPerHour() + minute/ix.cfg.SlotMinutes)
}

// TimeOf returns the clock time at which s begins. TimeOf(Count()) is the end of the window.
func (ix *Index) TimeOf(s Slot) Clock {
	sph := ix.SlotsPerHour()
	return Clock{
		Hour:   ix.cfg.StartHour + int(s)/sph,
		Minute: (int(s) % sph) * ix.cfg.SlotMinutes,
	}
}

// AllSlots returns every slot of the day in order.
func (ix *Index) AllSlots() []Slot {
	slots := make([]Slot, ix.Count())
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// At returns the instant slot s begins on the calendar day of date.
func (ix *Index) At(date time.Time, s Slot) time.Time {
	c := ix.TimeOf(s)
	d := date.In(ix.cfg.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, ix.cfg.Location)
}

// StartOfDay returns the grid anchor (slot 0) for the day of date.
func (ix *Index) StartOfDay(date time.Time) time.Time {
	return ix.At(date, 0)
}

// Midnight truncates date to 00:00 in the grid location.
func (ix *Index) Midnight(date time.Time) time.Time {
	d := date.In(ix.cfg.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ix.cfg.Location)
}

// SameDay compares local calendar date components, not a 24h window.
func (ix *Index) SameDay(a, b time.Time) bool {
	a, b = a.In(ix.cfg.Location), b.In(ix.cfg.Location)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Week returns the seven days of the week containing date, starting on WeekStartsOn.
func (ix *Index) Week(date time.Time) []time.Time {
	day := ix.Midnight(date)
	back := (int(day.Weekday()) - int(ix.cfg.WeekStartsOn) + DaysPerWeek) % DaysPerWeek
	start := day.AddDate(0, 0, -back)

	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
