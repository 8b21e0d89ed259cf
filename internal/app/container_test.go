package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingHttp "github.com/nekogravitycat/flight-schedule-grid/internal/booking/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/db"
	scheduleHttp "github.com/nekogravitycat/flight-schedule-grid/internal/schedule/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// The tests in this file run against a real PostgreSQL given by TEST_DB_DSN and
// are skipped without it.

type integration struct {
	t         *testing.T
	pool      *pgxpool.Pool
	container *Container
	token     string
}

func setupIntegration(t *testing.T) *integration {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := db.NewMigrator(pool, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx))
	require.NoError(t, migrator.Close())

	_, err = pool.Exec(ctx, "TRUNCATE TABLE public.unavailability_periods, public.bookings, public.resources CASCADE")
	require.NoError(t, err)

	grid := timeslot.DefaultConfig()
	grid.Location = time.UTC
	container, err := NewContainer(Config{
		DBPool:    pool,
		JWTSecret: "integration-secret",
		JWTTTL:    30 * time.Minute,
		Grid:      grid,
	})
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)

	token, err := container.JWTManager.GenerateAccessToken("dispatcher-1", "Dispatch", "dispatcher")
	require.NoError(t, err)

	return &integration{t: t, pool: pool, container: container, token: token}
}

func (it *integration) insertResource(kind, name string) string {
	it.t.Helper()
	var id string
	err := it.pool.QueryRow(context.Background(),
		"INSERT INTO public.resources (kind, name) VALUES ($1, $2) RETURNING id", kind, name,
	).Scan(&id)
	require.NoError(it.t, err)
	return id
}

func (it *integration) executeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+it.token)

	w := httptest.NewRecorder()
	it.container.Router.ServeHTTP(w, req)
	return w
}

func TestIntegrationBookingAppearsOnGrid(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	cessna := it.insertResource("aircraft", "N172SP")
	piper := it.insertResource("aircraft", "N28PA")
	instructor := it.insertResource("instructor", "Alex Kim")

	day := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	date := day.Format("2006-01-02")

	_, err := it.pool.Exec(ctx,
		`INSERT INTO public.unavailability_periods (resource_id, resource_kind, start_time, end_time, reason, pattern)
		 VALUES ($1, 'aircraft', $2, $3, '100-hour inspection', 'solid')`,
		piper, day.Add(12*time.Hour), day.Add(14*time.Hour),
	)
	require.NoError(t, err)

	create := bookingHttp.CreateBookingRequest{
		AircraftID:   cessna,
		InstructorID: &instructor,
		StudentName:  "Jamie Park",
		StartTime:    day.Add(9 * time.Hour),
		EndTime:      day.Add(10*time.Hour + 30*time.Minute),
	}

	t.Run("create booking", func(t *testing.T) {
		w := it.executeRequest(http.MethodPost, "/v1/bookings", create)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var b bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		assert.Equal(t, "pending", b.Status)
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		clash := create
		clash.InstructorID = nil
		clash.StartTime = day.Add(10 * time.Hour)
		clash.EndTime = day.Add(11 * time.Hour)
		w := it.executeRequest(http.MethodPost, "/v1/bookings", clash)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("day view", func(t *testing.T) {
		w := it.executeRequest(http.MethodGet, "/v1/schedule/day?kind=aircraft&date="+date, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var l scheduleHttp.LayoutResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
		require.Len(t, l.Columns, 2)

		byID := map[string]scheduleHttp.ColumnResponse{}
		for _, c := range l.Columns {
			byID[c.Resource.ID] = c
		}
		require.Len(t, byID[cessna].Blocks, 1)
		assert.Equal(t, 8, byID[cessna].Blocks[0].RowStart)
		assert.Equal(t, 11, byID[cessna].Blocks[0].RowEnd)
		assert.False(t, byID[piper].Cells[12].Available)
		assert.Equal(t, "solid", byID[piper].Cells[12].Pattern)
	})

	t.Run("month view", func(t *testing.T) {
		w := it.executeRequest(http.MethodGet, "/v1/schedule/month?kind=aircraft&resource_id="+cessna+"&month="+day.Format("2006-01"), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var m scheduleHttp.MonthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
		var total float64
		for _, week := range m.Weeks {
			for _, d := range week {
				if d.Date == date {
					total = d.BookedHours
				}
			}
		}
		assert.Equal(t, 1.5, total)
	})

	t.Run("drag on a session emits a new booking request", func(t *testing.T) {
		w := it.executeRequest(http.MethodPost, "/v1/grid-sessions", scheduleHttp.CreateSessionRequest{
			Mode: "day", Date: date, Kind: "aircraft",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var s scheduleHttp.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))

		slot := func(n int) *int { return &n }
		base := "/v1/grid-sessions/" + s.ID
		it.executeRequest(http.MethodPost, base+"/press", scheduleHttp.CellRequest{Slot: slot(20), ResourceID: piper, ResourceKind: "aircraft"})
		it.executeRequest(http.MethodPost, base+"/enter", scheduleHttp.CellRequest{Slot: slot(21), ResourceID: piper, ResourceKind: "aircraft"})
		w = it.executeRequest(http.MethodPost, base+"/release", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp scheduleHttp.InteractionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "16:00", resp.Events[0].Commit.StartTime)
		assert.Equal(t, "17:00", resp.Events[0].Commit.EndTime)
	})
}
