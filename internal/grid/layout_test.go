package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

func TestDayLayout(t *testing.T) {
	g := New(testSlots(), ViewDay, at(10, 0, 0), testSnapshot(), nil)
	l := g.Layout(at(10, 9, 15))

	require.Len(t, l.Rows, 28)
	assert.Equal(t, "06:00", l.Rows[0].Label)
	assert.True(t, l.Rows[0].HourStart)
	assert.False(t, l.Rows[1].HourStart)
	assert.Equal(t, 2, l.Rows[0].GridRow)
	assert.Equal(t, "20:00", l.Rows[27].EndsAt.String())

	require.Len(t, l.Columns, 2)
	c172, pa28 := l.Columns[0], l.Columns[1]
	assert.Equal(t, "a1", c172.Resource.ID)
	assert.Equal(t, drag.NoDay, c172.Key.DayIndex)

	require.Len(t, c172.Blocks, 1)
	assert.Equal(t, booking.GridPosition{StartSlot: 6, DurationSlots: 3, RowStart: 8, RowEnd: 11}, c172.Blocks[0].Position)
	assert.False(t, c172.Blocks[0].Conflict)
	for _, cell := range c172.Cells {
		assert.True(t, cell.Available)
	}

	require.Len(t, pa28.Cells, 28)
	for _, cell := range pa28.Cells {
		assert.False(t, cell.Available)
		assert.Equal(t, "Annual inspection", cell.Reason)
		assert.Equal(t, unavailability.PatternDiagonal, cell.Pattern)
	}

	assert.True(t, l.Now.Visible)
	assert.Equal(t, timeslot.Slot(6), l.Now.Slot)
	assert.InDelta(t, 6.5, l.Now.Offset, 1e-9)
	assert.Equal(t, drag.NoDay, l.Now.DayIndex)
	assert.Nil(t, l.Selection)
}

func TestWeekLayout(t *testing.T) {
	g := New(testSlots(), ViewWeek, at(11, 0, 0), testSnapshot(), nil)
	l := g.Layout(at(12, 15, 30))

	require.Len(t, l.Days, 7)
	require.Len(t, l.Columns, 14)

	// Columns are day-major: Monday a1, Monday a2, Tuesday a1, ...
	thursdayCessna := l.Columns[3*2]
	assert.Equal(t, at(12, 0, 0), thursdayCessna.Date)
	assert.Equal(t, 3, thursdayCessna.Key.DayIndex)
	require.Len(t, thursdayCessna.Blocks, 1)
	assert.True(t, thursdayCessna.Blocks[0].Conflict)

	tuesdayPiper := l.Columns[1*2+1]
	assert.False(t, tuesdayPiper.Cells[0].Available)
	wednesdayPiper := l.Columns[2*2+1]
	assert.True(t, wednesdayPiper.Cells[0].Available)

	assert.True(t, l.Now.Visible)
	assert.Equal(t, 3, l.Now.DayIndex)
	assert.Equal(t, timeslot.Slot(19), l.Now.Slot)
}

func TestLayoutSelection(t *testing.T) {
	g := New(testSlots(), ViewDay, at(10, 0, 0), testSnapshot(), nil)
	key := g.KeyFor(cessna, drag.NoDay)
	g.PressCell(12, key)
	g.EnterCell(10, key)

	l := g.Layout(at(10, 0, 0))
	require.NotNil(t, l.Selection)
	for _, cell := range l.Columns[0].Cells {
		assert.Equal(t, cell.Slot >= 10 && cell.Slot <= 12, cell.Selected, "slot %d", cell.Slot)
	}
	for _, cell := range l.Columns[1].Cells {
		assert.False(t, cell.Selected)
	}
}

func TestNowIndicatorHidden(t *testing.T) {
	g := New(testSlots(), ViewDay, at(10, 0, 0), testSnapshot(), nil)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"Before opening", at(10, 5, 59)},
		{"At closing", at(10, 20, 0)},
		{"Another day", at(11, 12, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := g.Layout(tt.now).Now
			assert.False(t, ind.Visible)
			assert.Equal(t, timeslot.OutOfRange, ind.Slot)
		})
	}
}

func TestOverlappingPeriodsExposeAllHints(t *testing.T) {
	snap := testSnapshot()
	snap.Unavailability = append(snap.Unavailability, unavailability.Period{
		ID: "u2", ResourceID: "a2", ResourceKind: cessna.Kind, StartTime: at(10, 8, 0), EndTime: at(10, 9, 0),
		Reason: "Fuel truck", Pattern: unavailability.PatternSolid,
	})
	g := New(testSlots(), ViewDay, at(10, 0, 0), snap, nil)

	cell := g.Layout(at(10, 0, 0)).Columns[1].Cells[4]
	assert.Equal(t, "Annual inspection", cell.Reason)
	require.Len(t, cell.Periods, 2)
	assert.Equal(t, "Fuel truck", cell.Periods[1].Reason)
}
