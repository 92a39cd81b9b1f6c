package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc, rateLimiters ...gin.HandlerFunc) {
	group := g.Group("/users")

	// === Public Routes (rate limited when a limiter is configured) ===
	public := group.Group("")
	for _, rl := range rateLimiters {
		public.Use(rl)
	}
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
	}

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/me", h.Me)
	}

	// === System Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, sysAdminMiddleware)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
	}
}
