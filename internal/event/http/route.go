package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, organizerMiddleware gin.HandlerFunc) {
	group := g.Group("/events")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	// === Organizer Routes ===
	organizer := group.Group("")
	organizer.Use(organizerMiddleware)
	{
		organizer.POST("", h.Create)
		organizer.PATCH("/:id", h.Update)
		organizer.POST("/:id/cancel", h.Cancel)
		organizer.DELETE("/:id", h.Delete)
	}
}
