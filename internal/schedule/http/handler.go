package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/auth"
	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/request"
	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/response"
	"github.com/nekogravitycat/flight-schedule-grid/internal/render"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/schedule"
	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/telemetry"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

type Handler struct {
	service schedule.Service
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(service schedule.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger, now: time.Now}
}

func (h *Handler) parseDate(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, h.service.Slots().Location())
	if err != nil {
		return time.Time{}, schedule.ErrInvalidDate
	}
	return t, nil
}

func (h *Handler) query(c *gin.Context, mode grid.ViewMode, req ViewRequest) (schedule.Query, bool) {
	date, err := h.parseDate(dateLayout, req.Date)
	if err != nil {
		response.Error(c, err)
		return schedule.Query{}, false
	}
	return schedule.Query{
		Mode:        mode,
		Date:        date,
		Kind:        resource.Kind(req.Kind),
		ResourceIDs: req.ResourceIDs,
	}, true
}

func (h *Handler) view(c *gin.Context, mode grid.ViewMode) {
	var req ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	q, ok := h.query(c, mode, req)
	if !ok {
		return
	}

	l, err := h.service.Layout(c.Request.Context(), q, h.now())
	if err != nil {
		h.logger.Error("build layout failed", zap.Error(err), zap.String("mode", string(mode)))
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLayoutResponse(l))
}

func (h *Handler) Day(c *gin.Context)  { h.view(c, grid.ViewDay) }
func (h *Handler) Week(c *gin.Context) { h.view(c, grid.ViewWeek) }

// Image renders a view as PNG, or as a JPEG thumbnail when thumb_width is set.
func (h *Handler) Image(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	q, ok := h.query(c, grid.ViewMode(req.View), req.ViewRequest)
	if !ok {
		return
	}

	opts := render.Options{Title: req.Title, CellHeight: float64(req.CellHeight), ColumnWidth: float64(req.ColumnWidth)}
	data, err := h.service.Render(c.Request.Context(), q, h.now(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.ThumbWidth > 0 {
		thumb, err := schedule.Thumbnail(data, req.ThumbWidth)
		if err != nil {
			h.logger.Error("thumbnail failed", zap.Error(err))
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "image/jpeg", thumb)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) Month(c *gin.Context) {
	var req MonthRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	m, err := h.parseDate("2006-01", req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	cal, r, err := h.service.Month(c.Request.Context(), m, req.ResourceID, resource.Kind(req.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMonthResponse(cal, r))
}

// ===== Grid sessions =====

func (h *Handler) CreateSession(c *gin.Context) {
	var body CreateSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	q, ok := h.query(c, grid.ViewMode(body.Mode), ViewRequest{Date: body.Date, Kind: body.Kind, ResourceIDs: body.ResourceIDs})
	if !ok {
		return
	}

	s, err := h.service.OpenSession(c.Request.Context(), auth.GetUserID(c), q, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSessionResponse(s))
}

// lookup resolves the :id session owned by the caller, writing the error response on failure.
func (h *Handler) lookup(c *gin.Context) (*session.Session, bool) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return nil, false
	}
	s, err := h.service.Session(req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewSessionResponse(s))
}

func (h *Handler) DeleteSession(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err := h.service.CloseSession(req.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh reloads the session's data and moves its current-time line.
func (h *Handler) Refresh(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.service.RefreshSession(c.Request.Context(), s); err != nil {
		h.logger.Error("refresh grid session failed", zap.Error(err), zap.String("session_id", s.ID))
		response.Error(c, err)
		return
	}
	s.SetNow(h.now())
	c.JSON(http.StatusOK, NewSessionResponse(s))
}

// cell binds a CellRequest for s, writing the error response on failure.
func (h *Handler) cell(c *gin.Context, s *session.Session) (CellRequest, bool) {
	var body CellRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return body, false
	}
	if err := body.Validate(s.View.Mode); err != nil {
		response.Error(c, err)
		return body, false
	}
	return body, true
}

func (h *Handler) Press(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	body, ok := h.cell(c, s)
	if !ok {
		return
	}
	h.interact(c, s, "press", func(g *grid.Grid) bool {
		return g.PressCell(timeslot.Slot(*body.Slot), body.Key())
	})
}

func (h *Handler) Enter(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	body, ok := h.cell(c, s)
	if !ok {
		return
	}
	h.interact(c, s, "enter", func(g *grid.Grid) bool {
		return g.EnterCell(timeslot.Slot(*body.Slot), body.Key())
	})
}

func (h *Handler) Release(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	h.interact(c, s, "release", func(g *grid.Grid) bool {
		_, committed := g.Release()
		return committed
	})
}

func (h *Handler) Escape(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	h.interact(c, s, "escape", func(g *grid.Grid) bool {
		g.Escape()
		return true
	})
}

func (h *Handler) ClickBooking(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var body ClickBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	h.interact(c, s, "click_booking", func(g *grid.Grid) bool {
		return g.ClickBooking(body.BookingID)
	})
}

// interact runs fn against the session grid and reports the gesture state and
// the outbound requests it produced.
func (h *Handler) interact(c *gin.Context, s *session.Session, action string, fn func(g *grid.Grid) bool) {
	var resp InteractionResponse
	events := s.Do(func(g *grid.Grid) {
		resp.Accepted = fn(g)
		resp.State = g.DragState().String()
		if sel, ok := g.Selection(); ok {
			resp.Selection = NewSelectionResponse(sel)
		}
	})
	telemetry.GridInteractionsTotal.WithLabelValues(action, strconv.FormatBool(resp.Accepted)).Inc()

	resp.Events = make([]EventResponse, 0, len(events))
	for _, e := range events {
		telemetry.GridRequestsTotal.WithLabelValues(string(e.Kind)).Inc()
		resp.Events = append(resp.Events, NewEventResponse(e))
	}
	if len(events) > 0 {
		h.logger.Debug("grid emitted requests",
			zap.String("session_id", s.ID),
			zap.String("action", action),
			zap.Int("count", len(events)),
		)
	}

	c.JSON(http.StatusOK, resp)
}
