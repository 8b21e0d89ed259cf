package render

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func testLayout(mode grid.ViewMode) grid.Layout {
	cfg := timeslot.DefaultConfig()
	cfg.Location = time.UTC
	slots := timeslot.MustNew(cfg)

	cessna := &resource.Resource{ID: "a1", Kind: resource.KindAircraft, Name: "N172SP"}
	piper := &resource.Resource{ID: "a2", Kind: resource.KindAircraft, Name: "N28PA"}
	snap := grid.Snapshot{
		Resources: []*resource.Resource{cessna, piper},
		Bookings: []*booking.Booking{
			{ID: "b1", AircraftID: "a1", StudentName: "Jamie Park", StartTime: at(10, 9, 0), EndTime: at(10, 10, 30)},
			{ID: "b2", AircraftID: "a1", StudentName: "Riley", StartTime: at(10, 10, 0), EndTime: at(10, 11, 0), HasConflict: true},
		},
		Unavailability: []unavailability.Period{
			{ResourceID: "a2", ResourceKind: resource.KindAircraft, StartTime: at(10, 12, 0), EndTime: at(10, 14, 0), Pattern: unavailability.PatternDiagonal},
			{ResourceID: "a2", ResourceKind: resource.KindAircraft, StartTime: at(10, 16, 0), EndTime: at(10, 17, 0), Pattern: unavailability.PatternSolid},
		},
	}
	g := grid.New(slots, mode, at(10, 0, 0), snap, nil)
	key := g.KeyFor(cessna, 1)
	g.PressCell(20, key)
	g.EnterCell(22, key)
	return g.Layout(at(10, 11, 20))
}

func TestPNGDayView(t *testing.T) {
	l := testLayout(grid.ViewDay)
	data, err := PNG(l, Options{})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	w, h := Size(l, Options{})
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
	assert.Equal(t, int(leftLabelsWidth+2*defaultColumnWidth), w)
	assert.Equal(t, int(titleHeight+headerHeight+28*defaultCellHeight), h)
}

func TestPNGWeekViewCustomGeometry(t *testing.T) {
	l := testLayout(grid.ViewWeek)
	require.Len(t, l.Columns, 14)
	assert.Equal(t, 1, l.Now.DayIndex)
	assert.NotEqual(t, drag.NoDay, l.Columns[2].Key.DayIndex)

	opts := Options{Title: "Week 11", CellHeight: 10, ColumnWidth: 40}
	data, err := PNG(l, opts)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int(leftLabelsWidth+14*40), cfg.Width)
	assert.Equal(t, int(titleHeight+headerHeight+28*10), cfg.Height)
}

func TestThumbnail(t *testing.T) {
	data, err := PNG(testLayout(grid.ViewDay), Options{})
	require.NoError(t, err)

	thumb, err := Thumbnail(bytes.NewReader(data), 69, 0)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 69, img.Bounds().Dx())

	_, err = Thumbnail(bytes.NewReader([]byte("not an image")), 10, 10)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Jamie ...", truncate("Jamie Park-Lee", 9))
	assert.Equal(t, "a...", truncate("abcdef", 1))
}
