package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/booking"
	bookingHttp "github.com/planora/event-management-backend/internal/booking/http"
	"github.com/planora/event-management-backend/internal/event"
	eventHttp "github.com/planora/event-management-backend/internal/event/http"
	"github.com/planora/event-management-backend/internal/offering"
	offeringHttp "github.com/planora/event-management-backend/internal/offering/http"
	"github.com/planora/event-management-backend/internal/pkg/storage"
	"github.com/planora/event-management-backend/internal/user"
	userHttp "github.com/planora/event-management-backend/internal/user/http"
	"github.com/planora/event-management-backend/internal/venue"
	venueHttp "github.com/planora/event-management-backend/internal/venue/http"
)

// RouterConfig carries everything NewRouter needs to assemble the engine.
type RouterConfig struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService     user.Service
	VenueService    venue.Service
	OfferingService offering.Service
	EventService    event.Service
	BookingService  booking.Service

	JWTManager *auth.JWTManager
	Storage    storage.Storage
	ImageProc  *storage.ImageProcessor

	// RedisClient enables rate limiting on auth endpoints when set.
	RedisClient *redis.Client
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for
// every module under /v1.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin()

	venueProviderMiddleware := RequireRole(user.RoleVenueProvider)
	serviceProviderMiddleware := RequireRole(user.RoleServiceProvider)
	organizerMiddleware := RequireRole(user.RoleOrganizer)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	venueHandler := venueHttp.NewHandler(cfg.VenueService, cfg.Storage, cfg.ImageProc)
	offeringHandler := offeringHttp.NewHandler(cfg.OfferingService)
	eventHandler := eventHttp.NewHandler(cfg.EventService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Rate limit register/login when Redis is available.
	var authLimiters []gin.HandlerFunc
	if cfg.RedisClient != nil {
		authLimiters = append(authLimiters, NewRateLimiter(cfg.RedisClient, "10-M", "auth"))
	}

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware, authLimiters...)
		venueHttp.RegisterRoutes(v1, venueHandler, authMiddleware, venueProviderMiddleware)
		offeringHttp.RegisterRoutes(v1, offeringHandler, authMiddleware, serviceProviderMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware, organizerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
