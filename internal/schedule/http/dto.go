package http

import (
	"time"

	bookinghttp "github.com/nekogravitycat/flight-schedule-grid/internal/booking/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/drag"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/month"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	resourcehttp "github.com/nekogravitycat/flight-schedule-grid/internal/resource/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/schedule"
	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

const dateLayout = "2006-01-02"

// ViewRequest selects the day or week shown by GET /schedule/day and /schedule/week.
// Dates are calendar days in the grid's time zone.
type ViewRequest struct {
	Date        string   `form:"date" binding:"required,datetime=2006-01-02"`
	Kind        string   `form:"kind" binding:"required,oneof=aircraft instructor"`
	ResourceIDs []string `form:"resource_id" binding:"omitempty,dive,uuid"`
}

// ImageRequest adds rendering options to a view request.
type ImageRequest struct {
	ViewRequest
	View        string `form:"view,default=week" binding:"oneof=day week"`
	Title       string `form:"title"`
	CellHeight  int    `form:"cell_height" binding:"omitempty,min=8,max=64"`
	ColumnWidth int    `form:"column_width" binding:"omitempty,min=24,max=400"`
	ThumbWidth  int    `form:"thumb_width" binding:"omitempty,min=16,max=2000"`
}

type MonthRequest struct {
	Month      string `form:"month" binding:"required,datetime=2006-01"`
	ResourceID string `form:"resource_id" binding:"required,uuid"`
	Kind       string `form:"kind" binding:"required,oneof=aircraft instructor"`
}

type CreateSessionRequest struct {
	Mode        string   `json:"mode" binding:"required,oneof=day week"`
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Kind        string   `json:"kind" binding:"required,oneof=aircraft instructor"`
	ResourceIDs []string `json:"resource_ids" binding:"omitempty,dive,uuid"`
}

// CellRequest addresses one cell of a session grid. DayIndex is omitted in day view.
type CellRequest struct {
	Slot         *int   `json:"slot" binding:"required"`
	ResourceID   string `json:"resource_id" binding:"required,uuid"`
	ResourceKind string `json:"resource_kind" binding:"required,oneof=aircraft instructor"`
	DayIndex     *int   `json:"day_index" binding:"omitempty,min=0,max=6"`
}

// Validate checks the cell addressing against the session's view.
func (r *CellRequest) Validate(mode grid.ViewMode) error {
	if mode == grid.ViewWeek && r.DayIndex == nil {
		return schedule.ErrDayIndexNeeded
	}
	return nil
}

func (r *CellRequest) Key() drag.Key {
	day := drag.NoDay
	if r.DayIndex != nil {
		day = *r.DayIndex
	}
	return drag.Key{ResourceID: r.ResourceID, ResourceKind: resource.Kind(r.ResourceKind), DayIndex: day}
}

type ClickBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// ===== Layout =====

type ConfigResponse struct {
	StartHour    int    `json:"start_hour"`
	EndHour      int    `json:"end_hour"`
	SlotMinutes  int    `json:"slot_minutes"`
	WeekStartsOn string `json:"week_starts_on"`
	TimeZone     string `json:"time_zone"`
}

type RowResponse struct {
	Slot      int    `json:"slot"`
	Label     string `json:"label"`
	HourStart bool   `json:"hour_start"`
	GridRow   int    `json:"grid_row"`
	StartsAt  string `json:"starts_at"`
	EndsAt    string `json:"ends_at"`
}

type CellResponse struct {
	Slot      int      `json:"slot"`
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Reasons   []string `json:"reasons,omitempty"`
	Selected  bool     `json:"selected"`
}

type BlockResponse struct {
	Booking       bookinghttp.BookingResponse `json:"booking"`
	StartSlot     int                         `json:"start_slot"`
	DurationSlots int                         `json:"duration_slots"`
	RowStart      int                         `json:"row_start"`
	RowEnd        int                         `json:"row_end"`
	SubSlotOffset int                         `json:"sub_slot_offset"`
	Conflict      bool                        `json:"conflict"`
}

type ColumnResponse struct {
	Resource resourcehttp.ResourceTag `json:"resource"`
	Date     string                   `json:"date"`
	DayIndex *int                     `json:"day_index"`
	Cells    []CellResponse           `json:"cells"`
	Blocks   []BlockResponse          `json:"blocks"`
}

type NowResponse struct {
	Visible  bool    `json:"visible"`
	DayIndex *int    `json:"day_index"`
	Slot     int     `json:"slot"`
	Offset   float64 `json:"offset"`
}

type SelectionResponse struct {
	ResourceID   string `json:"resource_id"`
	ResourceKind string `json:"resource_kind"`
	DayIndex     *int   `json:"day_index"`
	Anchor       int    `json:"anchor"`
	Current      int    `json:"current"`
}

type LayoutResponse struct {
	Mode      string             `json:"mode"`
	Config    ConfigResponse     `json:"config"`
	Days      []string           `json:"days"`
	Rows      []RowResponse      `json:"rows"`
	Columns   []ColumnResponse   `json:"columns"`
	Now       NowResponse        `json:"now"`
	Selection *SelectionResponse `json:"selection"`
}

// dayIndex hides the day-view sentinel from clients.
func dayIndex(i int) *int {
	if i == drag.NoDay {
		return nil
	}
	return &i
}

func NewConfigResponse(cfg timeslot.Config) ConfigResponse {
	return ConfigResponse{
		StartHour:    cfg.StartHour,
		EndHour:      cfg.EndHour,
		SlotMinutes:  cfg.SlotMinutes,
		WeekStartsOn: cfg.WeekStartsOn.String(),
		TimeZone:     cfg.Location.String(),
	}
}

func NewSelectionResponse(sel drag.Selection) *SelectionResponse {
	return &SelectionResponse{
		ResourceID:   sel.Key.ResourceID,
		ResourceKind: string(sel.Key.ResourceKind),
		DayIndex:     dayIndex(sel.Key.DayIndex),
		Anchor:       int(sel.Anchor),
		Current:      int(sel.Current),
	}
}

func NewLayoutResponse(l grid.Layout) LayoutResponse {
	resp := LayoutResponse{
		Mode:    string(l.Mode),
		Config:  NewConfigResponse(l.Config),
		Days:    make([]string, len(l.Days)),
		Rows:    make([]RowResponse, len(l.Rows)),
		Columns: make([]ColumnResponse, len(l.Columns)),
		Now: NowResponse{
			Visible:  l.Now.Visible,
			DayIndex: dayIndex(l.Now.DayIndex),
			Slot:     int(l.Now.Slot),
			Offset:   l.Now.Offset,
		},
	}
	for i, d := range l.Days {
		resp.Days[i] = d.Format(dateLayout)
	}
	for i, r := range l.Rows {
		resp.Rows[i] = RowResponse{
			Slot:      int(r.Slot),
			Label:     r.Label,
			HourStart: r.HourStart,
			GridRow:   r.GridRow,
			StartsAt:  r.StartsAt.String(),
			EndsAt:    r.EndsAt.String(),
		}
	}
	for i, col := range l.Columns {
		resp.Columns[i] = newColumnResponse(col)
	}
	if l.Selection != nil {
		resp.Selection = NewSelectionResponse(*l.Selection)
	}
	return resp
}

func newColumnResponse(col grid.Column) ColumnResponse {
	out := ColumnResponse{
		Resource: resourcehttp.NewTag(col.Resource),
		Date:     col.Date.Format(dateLayout),
		DayIndex: dayIndex(col.Key.DayIndex),
		Cells:    make([]CellResponse, len(col.Cells)),
		Blocks:   make([]BlockResponse, len(col.Blocks)),
	}
	for i, cell := range col.Cells {
		c := CellResponse{
			Slot:      int(cell.Slot),
			Available: cell.Available,
			Reason:    cell.Reason,
			Pattern:   string(cell.Pattern),
			Selected:  cell.Selected,
		}
		if len(cell.Periods) > 1 {
			for _, p := range cell.Periods {
				c.Reasons = append(c.Reasons, p.Reason)
			}
		}
		out.Cells[i] = c
	}
	for i, b := range col.Blocks {
		out.Blocks[i] = BlockResponse{
			Booking:       bookinghttp.NewBookingResponse(b.Booking),
			StartSlot:     int(b.Position.StartSlot),
			DurationSlots: b.Position.DurationSlots,
			RowStart:      b.Position.RowStart,
			RowEnd:        b.Position.RowEnd,
			SubSlotOffset: b.Position.SubSlotOffset,
			Conflict:      b.Conflict,
		}
	}
	return out
}

// ===== Month =====

type MonthDayResponse struct {
	Date        string  `json:"date"`
	InMonth     bool    `json:"in_month"`
	BookedHours float64 `json:"booked_hours"`
	Tier        string  `json:"tier"`
}

type MonthResponse struct {
	Year     int                      `json:"year"`
	Month    int                      `json:"month"`
	Resource resourcehttp.ResourceTag `json:"resource"`
	Weeks    [][]MonthDayResponse     `json:"weeks"`
}

func NewMonthResponse(cal month.Calendar, r *resource.Resource) MonthResponse {
	resp := MonthResponse{
		Year:     cal.Year,
		Month:    int(cal.Month),
		Resource: resourcehttp.NewTag(r),
		Weeks:    make([][]MonthDayResponse, len(cal.Weeks)),
	}
	for i, week := range cal.Weeks {
		days := make([]MonthDayResponse, len(week))
		for j, d := range week {
			days[j] = MonthDayResponse{
				Date:        d.Date.Format(dateLayout),
				InMonth:     d.InMonth,
				BookedHours: d.BookedHours,
				Tier:        string(d.Tier),
			}
		}
		resp.Weeks[i] = days
	}
	return resp
}

// ===== Sessions =====

type SessionResponse struct {
	ID        string         `json:"id"`
	Mode      string         `json:"mode"`
	Date      string         `json:"date"`
	Kind      string         `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	Layout    LayoutResponse `json:"layout"`
}

func NewSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Mode:      string(s.View.Mode),
		Date:      s.View.Date.Format(dateLayout),
		Kind:      string(s.View.Kind),
		CreatedAt: s.CreatedAt,
		Layout:    NewLayoutResponse(s.Layout()),
	}
}

type CommitResponse struct {
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	ResourceID   string    `json:"resource_id"`
	ResourceKind string    `json:"resource_kind"`
	DayIndex     *int      `json:"day_index"`
}

// EventResponse is one outbound request emitted by the grid.
type EventResponse struct {
	Kind    string                       `json:"kind"`
	Commit  *CommitResponse              `json:"commit,omitempty"`
	Booking *bookinghttp.BookingResponse `json:"booking,omitempty"`
	Reason  string                       `json:"reason,omitempty"`
}

func NewEventResponse(e session.Event) EventResponse {
	out := EventResponse{Kind: string(e.Kind), Reason: e.Reason}
	if e.Commit != nil {
		c := e.Commit
		out.Commit = &CommitResponse{
			Date:         c.Date.Format(dateLayout),
			StartTime:    c.StartTime.String(),
			EndTime:      c.EndTime.String(),
			StartAt:      c.StartAt,
			EndAt:        c.EndAt,
			ResourceID:   c.ResourceID,
			ResourceKind: string(c.ResourceKind),
			DayIndex:     dayIndex(c.DayIndex),
		}
	}
	if e.Booking != nil {
		b := bookinghttp.NewBookingResponse(e.Booking)
		out.Booking = &b
	}
	return out
}

type InteractionResponse struct {
	Accepted  bool               `json:"accepted"`
	State     string             `json:"state"`
	Selection *SelectionResponse `json:"selection"`
	Events    []EventResponse    `json:"events"`
}
