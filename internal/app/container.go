package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planora/event-management-backend/internal/api"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/booking"
	"github.com/planora/event-management-backend/internal/event"
	"github.com/planora/event-management-backend/internal/notification"
	"github.com/planora/event-management-backend/internal/offering"
	"github.com/planora/event-management-backend/internal/pkg/storage"
	"github.com/planora/event-management-backend/internal/user"
	"github.com/planora/event-management-backend/internal/venue"
	"github.com/redis/go-redis/v9"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client // optional
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	EventService event.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	imageProc := storage.NewImageProcessor()

	var notifier booking.Notifier = notification.NoopNotifier{}
	if cfg.SMTPHost != "" {
		notifier = notification.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Venue Module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo, cfg.RedisClient)

	// Offering Module ("services" on the wire)
	offeringRepo := offering.NewPgxRepository(cfg.DBPool)
	offeringService := offering.NewService(offeringRepo)

	// Event Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	eventRepo := event.NewPgxRepository(cfg.DBPool)
	eventService := event.NewService(eventRepo, bookingRepo, venueService, offeringService, userRepo)

	// Booking Request Module; resolution re-derives the event status.
	bookingService := booking.NewService(bookingRepo, eventService, notifier, venueService)

	// Router
	router := api.NewRouter(api.RouterConfig{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		VenueService:    venueService,
		OfferingService: offeringService,
		EventService:    eventService,
		BookingService:  bookingService,
		JWTManager:      jwtManager,
		Storage:         store,
		ImageProc:       imageProc,
		RedisClient:     cfg.RedisClient,
	})

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		EventService: eventService,
	}, nil
}
