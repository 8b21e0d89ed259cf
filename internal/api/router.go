package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/auth"
	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	bookingHttp "github.com/nekogravitycat/flight-schedule-grid/internal/booking/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	resourceHttp "github.com/nekogravitycat/flight-schedule-grid/internal/resource/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/schedule"
	scheduleHttp "github.com/nekogravitycat/flight-schedule-grid/internal/schedule/http"
	"github.com/nekogravitycat/flight-schedule-grid/internal/telemetry"
)

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds everything the router needs.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	ResService      resource.Service
	BookingService  booking.Service
	ScheduleService schedule.Service
	JWTManager      *auth.JWTManager
	DB              Pinger
	Logger          *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (logging, recovery, metrics, CORS, auth) and registers module routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(Recovery(cfg.Logger), RequestLogger(cfg.Logger), telemetry.Middleware())

	// Configure CORS (Cross-Origin Resource Sharing). Without origins the API is same-origin only.
	if origins := allowedOrigins(cfg.IsProduction, cfg.ProdOrigins); len(origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = origins
		config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
		r.Use(cors.New(config))
	}

	r.GET("/healthz", healthz(cfg.DB))
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	resourceHandler := resourceHttp.NewHandler(cfg.ResService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Logger)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService, cfg.Logger)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		resourceHttp.RegisterRoutes(v1, resourceHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware)
	}

	return r
}

// allowedOrigins returns the comma-separated production origins, or local
// development origins outside production.
func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8081"}
	}
	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
