package booking

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// headerRows is the number of grid rows above slot 0 in the 1-indexed layout.
const headerRows = 2

// GridPosition is the derived placement of a booking on the time axis.
// Rows are 1-indexed and RowEnd is exclusive.
type GridPosition struct {
	StartSlot     timeslot.Slot
	DurationSlots int
	RowStart      int
	RowEnd        int
	SubSlotOffset int // minutes past the start slot boundary
}

// Index answers which bookings occupy a resource on a date and where they sit on the grid.
type Index struct {
	slots    *timeslot.Index
	bookings []*Booking
}

// NewIndex wraps a booking snapshot. The slice is read, never modified.
func NewIndex(slots *timeslot.Index, bookings []*Booking) *Index {
	return &Index{slots: slots, bookings: bookings}
}

func (ix *Index) All() []*Booking { return ix.bookings }

// BookingsFor returns bookings of the resource starting on the same local calendar day as date.
func (ix *Index) BookingsFor(resourceID string, kind resource.Kind, date time.Time) []*Booking {
	var out []*Booking
	for _, b := range ix.bookings {
		if !b.Occupies(resourceID, kind) {
			continue
		}
		if !ix.slots.SameDay(b.StartTime, date) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// PositionOf computes the row span of b. Starts outside the operating window are
// not clamped; durations below one slot are.
func (ix *Index) PositionOf(b *Booking) GridPosition {
	cfg := ix.slots.Config()
	start := b.StartTime.In(ix.slots.Location())

	startSlot := timeslot.Slot((start.Hour()-cfg.StartHour)*ix.slots.SlotsPerHour() + start.Minute()/cfg.SlotMinutes)

	slotDur := ix.slots.SlotDuration()
	dur := b.Duration()
	durationSlots := 1
	if dur > 0 {
		durationSlots = int((dur + slotDur - 1) / slotDur)
	}

	rowStart := int(startSlot) + headerRows
	return GridPosition{
		StartSlot:     startSlot,
		DurationSlots: durationSlots,
		RowStart:      rowStart,
		RowEnd:        rowStart + durationSlots,
		SubSlotOffset: start.Minute() % cfg.SlotMinutes,
	}
}
