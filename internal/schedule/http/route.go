package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	schedule := g.Group("/schedule")
	sessions := g.Group("/grid-sessions")

	// === Authenticated Routes ===
	schedule.Use(authMiddleware)
	{
		schedule.GET("/day", h.Day)
		schedule.GET("/week", h.Week)
		schedule.GET("/week.png", h.Image)
		schedule.GET("/month", h.Month)
	}

	sessions.Use(authMiddleware)
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/press", h.Press)
		sessions.POST("/:id/enter", h.Enter)
		sessions.POST("/:id/release", h.Release)
		sessions.POST("/:id/escape", h.Escape)
		sessions.POST("/:id/click-booking", h.ClickBooking)
		sessions.POST("/:id/refresh", h.Refresh)
	}
}
