package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers resource directory routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/resources")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List aircraft and instructors
		group.GET("/:kind/:id", h.Get) // Get one resource
	}
}
