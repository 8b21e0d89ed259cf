package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/api"
	"github.com/nekogravitycat/flight-schedule-grid/internal/auth"
	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/schedule"
	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
	"github.com/nekogravitycat/flight-schedule-grid/internal/unavailability"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	Grid         timeslot.Config
	// UnavailabilityFixture optionally adds YAML-defined periods after the database ones.
	UnavailabilityFixture string
	NowTickInterval       time.Duration
	Logger                *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Schedule   schedule.Service
	Bookings   booking.Service
	NowTicker  *NowTicker
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.NowTickInterval <= 0 {
		cfg.NowTickInterval = time.Minute
	}

	slots, err := timeslot.New(cfg.Grid)
	if err != nil {
		return nil, err
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Resource Module
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, resService)

	// Unavailability sources: database first, then the optional fixture.
	sources := unavailability.Sources{unavailability.NewPgxRepository(cfg.DBPool)}
	if cfg.UnavailabilityFixture != "" {
		fixture, err := unavailability.LoadFixture(cfg.UnavailabilityFixture, slots.Location())
		if err != nil {
			return nil, fmt.Errorf("load unavailability fixture: %w", err)
		}
		logger.Info("unavailability fixture loaded", zap.String("path", cfg.UnavailabilityFixture))
		sources = append(sources, fixture)
	}

	// Schedule Module
	registry := session.NewRegistry(logger.Named("session"))
	scheduleService := schedule.NewService(slots, resService, bookingService, sources, registry, logger.Named("schedule"))

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		ResService:      resService,
		BookingService:  bookingService,
		ScheduleService: scheduleService,
		JWTManager:      jwtManager,
		DB:              cfg.DBPool,
		Logger:          logger.Named("http"),
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Schedule:   scheduleService,
		Bookings:   bookingService,
		NowTicker:  NewNowTicker(registry, slots, cfg.NowTickInterval, logger.Named("ticker")),
	}, nil
}
