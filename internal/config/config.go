package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	RunMigrations     bool

	GridStartHour    int
	GridEndHour      int
	GridSlotMinutes  int
	GridWeekStartsOn time.Weekday
	GridLocation     *time.Location

	// UnavailabilityFixture is an optional YAML file layered over the database periods.
	UnavailabilityFixture string
	NowTickInterval       time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for verifying tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", true)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadGrid(); err != nil {
		return nil, err
	}

	cfg.UnavailabilityFixture = getEnv("UNAVAILABILITY_FIXTURE", "")

	cfg.NowTickInterval, err = getEnvAsDuration("NOW_TICK_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	if cfg.NowTickInterval <= 0 {
		return nil, fmt.Errorf("NOW_TICK_INTERVAL must be positive")
	}

	return cfg, nil
}

func (cfg *Config) loadGrid() error {
	var err error

	if cfg.GridStartHour, err = getEnvAsInt("GRID_START_HOUR", 6); err != nil {
		return err
	}
	if cfg.GridEndHour, err = getEnvAsInt("GRID_END_HOUR", 20); err != nil {
		return err
	}
	if cfg.GridSlotMinutes, err = getEnvAsInt("GRID_SLOT_MINUTES", 30); err != nil {
		return err
	}

	cfg.GridWeekStartsOn, err = unavailability.ParseWeekday(getEnv("GRID_WEEK_STARTS_ON", "monday"))
	if err != nil {
		return fmt.Errorf("invalid GRID_WEEK_STARTS_ON: %w", err)
	}

	// Empty means the host's local zone.
	tz := getEnv("GRID_TIMEZONE", "")
	if tz == "" {
		cfg.GridLocation = time.Local
	} else {
		cfg.GridLocation, err = time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid GRID_TIMEZONE: %w", err)
		}
	}

	if _, err := cfg.Grid(); err != nil {
		return err
	}
	return nil
}

// Grid returns the validated time-axis configuration.
func (cfg *Config) Grid() (timeslot.Config, error) {
	g := timeslot.Config{
		StartHour:    cfg.GridStartHour,
		EndHour:      cfg.GridEndHour,
		SlotMinutes:  cfg.GridSlotMinutes,
		WeekStartsOn: cfg.GridWeekStartsOn,
		Location:     cfg.GridLocation,
	}
	if err := g.Validate(); err != nil {
		return timeslot.Config{}, fmt.Errorf("invalid grid configuration: %w", err)
	}
	return g, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return val, nil
}
