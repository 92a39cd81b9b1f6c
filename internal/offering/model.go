package offering

import (
	"net/http"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "service not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCategory  = apperror.New(http.StatusBadRequest, "invalid service category")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Category is the closed set of service categories.
type Category string

const (
	CategoryCatering      Category = "catering"
	CategoryDecoration    Category = "decoration"
	CategoryPhotography   Category = "photography"
	CategorySecurity      Category = "security"
	CategoryEntertainment Category = "entertainment"
	CategoryLogistics     Category = "logistics"
)

// ValidCategories lists the accepted category values.
var ValidCategories = []Category{
	CategoryCatering, CategoryDecoration, CategoryPhotography,
	CategorySecurity, CategoryEntertainment, CategoryLogistics,
}

// Offering represents a provider service (catering, security, ...) that an
// organizer can request for an event. Exposed as "service" on the wire.
type Offering struct {
	ID         string
	ProviderID string
	Name       string
	Category   Category
	Price      float64
	Location   string
	Available  bool
	CreatedAt  time.Time
}

// Booking is a confirmed engagement of a service on a specific day. Rows are
// appended only when a booking request targeting the service is approved.
type Booking struct {
	ID         string
	OfferingID string
	Day        time.Time
	UserEmail  string
	EventName  string
	CreatedAt  time.Time
}

// Filter defines parameters for listing offerings.
type Filter struct {
	ProviderID string
	Category   string
	Location   string
	Available  *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
