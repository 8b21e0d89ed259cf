// Package render draws grid layouts as images.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

const (
	defaultCellHeight  = 18.0
	defaultColumnWidth = 110.0
	titleHeight        = 24.0
	headerHeight       = 36.0
	leftLabelsWidth    = 56.0
	blockPaddingX      = 4.0
	blockRadius        = 4.0
	hatchSpacing       = 6.0
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{40, 44, 52, 255}
	hourLabelColor   = color.RGBA{110, 115, 120, 255}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	halfHourColor    = color.NRGBA{210, 210, 210, 255}
	evenColumnColor  = color.NRGBA{255, 255, 255, 255}
	oddColumnColor   = color.NRGBA{240, 241, 243, 255}
	blockedColor     = color.NRGBA{200, 200, 205, 255}
	hatchColor       = color.NRGBA{150, 150, 160, 255}
	selectionColor   = color.NRGBA{66, 133, 244, 90}
	bookingColor     = color.RGBA{88, 150, 230, 255}
	conflictColor    = color.RGBA{230, 90, 80, 255}
	cancelledColor   = color.RGBA{170, 170, 170, 255}
	blockTextColor   = color.RGBA{255, 255, 255, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 220}
)

// Options controls image geometry. Zero values use the defaults.
type Options struct {
	Title       string
	CellHeight  float64
	ColumnWidth float64
}

func (o Options) withDefaults() Options {
	if o.CellHeight <= 0 {
		o.CellHeight = defaultCellHeight
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = defaultColumnWidth
	}
	return o
}

// Size returns the pixel dimensions PNG will produce for l.
func Size(l grid.Layout, opts Options) (width, height int) {
	opts = opts.withDefaults()
	width = int(leftLabelsWidth + float64(len(l.Columns))*opts.ColumnWidth)
	height = int(titleHeight + headerHeight + float64(len(l.Rows))*opts.CellHeight)
	return width, height
}

// PNG renders the layout: slot rows, unavailable cells, booking blocks, the active
// selection and the current-time line.
func PNG(l grid.Layout, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	w, h := Size(l, opts)
	dc := gg.NewContext(w, h)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	r := &renderer{dc: dc, layout: l, opts: opts, top: titleHeight + headerHeight}
	r.drawTitle()
	r.drawHourLabels()
	for i, col := range l.Columns {
		r.drawColumn(i, col)
	}
	r.drawCurrentTimeLine()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode grid png: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	dc     *gg.Context
	layout grid.Layout
	opts   Options
	top    float64
}

// rowY maps a 1-indexed grid row (2 is slot 0) to a y coordinate.
func (r *renderer) rowY(row int) float64 {
	return r.top + float64(row-2)*r.opts.CellHeight
}

func (r *renderer) columnX(i int) float64 {
	return leftLabelsWidth + float64(i)*r.opts.ColumnWidth
}

func (r *renderer) drawTitle() {
	title := r.opts.Title
	if title == "" && len(r.layout.Days) > 0 {
		first := r.layout.Days[0]
		last := r.layout.Days[len(r.layout.Days)-1]
		title = first.Format("Mon 02 Jan 2006")
		if !last.Equal(first) {
			title += " - " + last.Format("Mon 02 Jan 2006")
		}
	}
	r.dc.SetColor(textColor)
	r.dc.DrawStringAnchored(title, 8, titleHeight/2, 0, 0.5)
}

func (r *renderer) drawHourLabels() {
	r.dc.SetColor(hourLabelColor)
	for _, row := range r.layout.Rows {
		if !row.HourStart {
			continue
		}
		r.dc.DrawStringAnchored(row.Label, leftLabelsWidth-6, r.rowY(row.GridRow), 1, 0.5)
	}
}

func (r *renderer) drawColumn(i int, col grid.Column) {
	dc := r.dc
	x := r.columnX(i)
	cw := r.opts.ColumnWidth
	ch := r.opts.CellHeight

	if i%2 == 0 {
		dc.SetColor(evenColumnColor)
	} else {
		dc.SetColor(oddColumnColor)
	}
	dc.DrawRectangle(x, r.top, cw, float64(len(col.Cells))*ch)
	dc.Fill()

	// Header: date on top, resource name below.
	dc.SetColor(textColor)
	dc.DrawStringAnchored(col.Date.Format("Mon 02"), x+cw/2, titleHeight+headerHeight/4, 0.5, 0.5)
	if col.Resource != nil {
		dc.DrawStringAnchored(truncate(col.Resource.Name, int(cw/7)-1), x+cw/2, titleHeight+headerHeight*3/4, 0.5, 0.5)
	}

	for _, cell := range col.Cells {
		y := r.rowY(int(cell.Slot) + 2)
		if !cell.Available {
			r.drawBlocked(x, y, cw, ch, cell.Pattern)
		}
		if cell.Selected {
			dc.SetColor(selectionColor)
			dc.DrawRectangle(x, y, cw, ch)
			dc.Fill()
		}
	}

	dc.SetLineWidth(0.5)
	for _, row := range r.layout.Rows {
		if row.HourStart {
			dc.SetColor(hourLineColor)
		} else {
			dc.SetColor(halfHourColor)
		}
		y := r.rowY(row.GridRow)
		dc.DrawLine(x, y, x+cw, y)
		dc.Stroke()
	}
	dc.SetColor(hourLineColor)
	dc.DrawLine(x, r.top, x, r.top+float64(len(col.Cells))*ch)
	dc.Stroke()

	for _, b := range col.Blocks {
		r.drawBlock(x, b)
	}
}

func (r *renderer) drawBlocked(x, y, w, h float64, pattern unavailability.Pattern) {
	dc := r.dc
	dc.SetColor(blockedColor)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	if pattern != unavailability.PatternDiagonal {
		return
	}

	dc.Push()
	dc.DrawRectangle(x, y, w, h)
	dc.Clip()
	dc.SetColor(hatchColor)
	dc.SetLineWidth(1)
	for off := -h; off < w; off += hatchSpacing {
		dc.DrawLine(x+off, y+h, x+off+h, y)
		dc.Stroke()
	}
	dc.ResetClip()
	dc.Pop()
}

func (r *renderer) drawBlock(x float64, b grid.Block) {
	dc := r.dc
	slotMinutes := float64(r.layout.Config.SlotMinutes)
	nudge := float64(b.Position.SubSlotOffset) / slotMinutes * r.opts.CellHeight

	y := r.rowY(b.Position.RowStart) + nudge
	h := float64(b.Position.RowEnd-b.Position.RowStart) * r.opts.CellHeight
	w := r.opts.ColumnWidth - 2*blockPaddingX

	fill := bookingColor
	switch {
	case b.Booking.Status == booking.StatusCancelled:
		fill = cancelledColor
	case b.Conflict:
		fill = conflictColor
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+blockPaddingX, y+1, w, h-2, blockRadius)
	dc.Fill()

	dc.SetColor(blockTextColor)
	label := b.Booking.StartTime.Format("15:04")
	if b.Booking.StudentName != "" {
		label += " " + b.Booking.StudentName
	}
	dc.DrawStringAnchored(truncate(label, int(w/7)), x+blockPaddingX+3, y+r.opts.CellHeight/2, 0, 0.5)
}

func (r *renderer) drawCurrentTimeLine() {
	now := r.layout.Now
	if !now.Visible {
		return
	}
	y := r.top + now.Offset*r.opts.CellHeight
	r.dc.SetColor(currentTimeColor)
	r.dc.SetLineWidth(2)
	for i, col := range r.layout.Columns {
		if col.Key.DayIndex != now.DayIndex {
			continue
		}
		x := r.columnX(i)
		r.dc.DrawLine(x, y, x+r.opts.ColumnWidth, y)
		r.dc.Stroke()
	}
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
