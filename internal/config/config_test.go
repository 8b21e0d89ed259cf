package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://localhost/flight_grid")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, time.Minute, cfg.NowTickInterval)
	assert.Empty(t, cfg.UnavailabilityFixture)

	grid, err := cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, 6, grid.StartHour)
	assert.Equal(t, 20, grid.EndHour)
	assert.Equal(t, 30, grid.SlotMinutes)
	assert.Equal(t, time.Monday, grid.WeekStartsOn)
	assert.Equal(t, time.Local, grid.Location)
}

func TestLoadGridOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("GRID_START_HOUR", "7")
	t.Setenv("GRID_END_HOUR", "19")
	t.Setenv("GRID_SLOT_MINUTES", "15")
	t.Setenv("GRID_WEEK_STARTS_ON", "Sunday")
	t.Setenv("GRID_TIMEZONE", "UTC")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("NOW_TICK_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 30*time.Second, cfg.NowTickInterval)

	grid, err := cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, 7, grid.StartHour)
	assert.Equal(t, 15, grid.SlotMinutes)
	assert.Equal(t, time.Sunday, grid.WeekStartsOn)
	assert.Equal(t, "UTC", grid.Location.String())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{"slot does not divide hour", map[string]string{"GRID_SLOT_MINUTES": "25"}, timeslot.ErrInvalidSlotMinutes},
		{"inverted hours", map[string]string{"GRID_START_HOUR": "20", "GRID_END_HOUR": "6"}, timeslot.ErrInvalidHours},
		{"non-numeric hour", map[string]string{"GRID_START_HOUR": "six"}, nil},
		{"unknown weekday", map[string]string{"GRID_WEEK_STARTS_ON": "funday"}, nil},
		{"unknown zone", map[string]string{"GRID_TIMEZONE": "Mars/Olympus"}, nil},
		{"zero tick", map[string]string{"NOW_TICK_INTERVAL": "0s"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "x")
	_, err := Load()
	assert.Error(t, err)
}
