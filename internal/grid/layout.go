package grid

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

// Layout is a fully computed view ready for a presentation layer.
type Layout struct {
	Mode      ViewMode
	Config    timeslot.Config
	Days      []time.Time
	Rows      []Row
	Columns   []Column
	Now       NowIndicator
	Selection *drag.Selection
}

// Row is one slot of the time axis. GridRow is 1-indexed below the two header rows.
type Row struct {
	Slot      timeslot.Slot
	Label     string
	HourStart bool
	GridRow   int
	StartsAt  timeslot.Clock
	EndsAt    timeslot.Clock
}

// Column is one resource on one day.
type Column struct {
	Key      drag.Key
	Resource *resource.Resource
	Date     time.Time
	Cells    []Cell
	Blocks   []Block
}

// Cell is one slot of a column. Periods lists every blocking period when several
// overlap; the first sets Reason and Pattern.
type Cell struct {
	Slot      timeslot.Slot
	Available bool
	Reason    string
	Pattern   unavailability.Pattern
	Periods   []unavailability.Period
	Selected  bool
}

// Block is a booking placed in a column.
type Block struct {
	Booking  *booking.Booking
	Position booking.GridPosition
	Conflict bool
}

// NowIndicator is the current-time line. It is hidden when now falls outside the
// displayed days or the operating window. Offset is measured in slots from slot 0.
type NowIndicator struct {
	Visible  bool
	DayIndex int
	Slot     timeslot.Slot
	Offset   float64
}

// Layout computes rows, columns, cells, blocks and the current-time indicator.
func (g *Grid) Layout(now time.Time) Layout {
	l := Layout{
		Mode:   g.mode,
		Config: g.slots.Config(),
		Days:   g.days,
		Rows:   g.rows(),
		Now:    g.nowIndicator(now),
	}
	if sel, ok := g.drag.Selection(); ok {
		l.Selection = &sel
	}

	for di, day := range g.days {
		for _, r := range g.resources {
			l.Columns = append(l.Columns, g.column(r, di, day))
		}
	}
	return l
}

func (g *Grid) rows() []Row {
	all := g.slots.AllSlots()
	rows := make([]Row, len(all))
	for i, s := range all {
		start := g.slots.TimeOf(s)
		rows[i] = Row{
			Slot:      s,
			Label:     start.String(),
			HourStart: start.Minute == 0,
			GridRow:   int(s) + 2,
			StartsAt:  start,
			EndsAt:    g.slots.TimeOf(s + 1),
		}
	}
	return rows
}

func (g *Grid) column(r *resource.Resource, dayIndex int, day time.Time) Column {
	key := g.KeyFor(r, dayIndex)
	col := Column{
		Key:      key,
		Resource: r,
		Date:     day,
	}

	for _, s := range g.slots.AllSlots() {
		cell := Cell{
			Slot:      s,
			Available: true,
			Selected:  g.drag.InRange(s, key),
		}
		if periods := g.oracle.AllAt(r.ID, r.Kind, s, day); len(periods) > 0 {
			cell.Available = false
			cell.Reason = periods[0].Reason
			cell.Pattern = periods[0].Pattern
			cell.Periods = periods
		}
		col.Cells = append(col.Cells, cell)
	}

	for _, b := range g.bookings.BookingsFor(r.ID, r.Kind, day) {
		col.Blocks = append(col.Blocks, Block{
			Booking:  b,
			Position: g.bookings.PositionOf(b),
			Conflict: b.HasConflict,
		})
	}
	return col
}

func (g *Grid) nowIndicator(now time.Time) NowIndicator {
	hidden := NowIndicator{DayIndex: drag.NoDay, Slot: timeslot.OutOfRange}

	dayIndex := -1
	for i, d := range g.days {
		if g.slots.SameDay(now, d) {
			dayIndex = i
			break
		}
	}
	if dayIndex < 0 {
		return hidden
	}

	slot := g.slots.SlotOf(now)
	if slot == timeslot.OutOfRange {
		return hidden
	}

	cfg := g.slots.Config()
	local := now.In(g.slots.Location())
	minutes := float64((local.Hour()-cfg.StartHour)*60+local.Minute()) + float64(local.Second())/60
	ind := NowIndicator{
		Visible:  true,
		DayIndex: dayIndex,
		Slot:     slot,
		Offset:   minutes / float64(cfg.SlotMinutes),
	}
	if g.mode == ViewDay {
		ind.DayIndex = drag.NoDay
	}
	return ind
}
