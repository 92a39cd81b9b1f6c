package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, providerMiddleware gin.HandlerFunc) {
	group := g.Group("/services")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/selectable", h.ListSelectable)
		group.GET("/:id", h.Get)
		group.GET("/:id/bookings", h.ListBookings)
	}

	// === Service Provider Routes ===
	provider := group.Group("")
	provider.Use(providerMiddleware)
	{
		provider.POST("", h.Create)
		provider.PATCH("/:id", h.Update)
		provider.DELETE("/:id", h.Delete)
	}
}
