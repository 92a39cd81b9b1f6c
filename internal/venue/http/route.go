package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, providerMiddleware gin.HandlerFunc) {
	group := g.Group("/venues")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/selectable", h.ListSelectable)
		group.GET("/:id", h.Get)
		group.GET("/:id/availability", h.GetAvailability)
		group.GET("/:id/bookings", h.ListBookings)
	}

	// === Venue Provider Routes ===
	provider := group.Group("")
	provider.Use(providerMiddleware)
	{
		provider.POST("", h.Create)
		provider.PATCH("/:id", h.Update)
		provider.DELETE("/:id", h.Delete)
		provider.PUT("/:id/availability", h.UpdateAvailability)
		provider.POST("/:id/photo", h.UploadPhoto)
	}
}
