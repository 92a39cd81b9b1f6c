package venue

import (
	"net/http"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "venue not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "capacity_min must not exceed capacity_max")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrDateBooked       = apperror.New(http.StatusConflict, "date has a confirmed booking and cannot be made unavailable")
	ErrDateUnavailable  = apperror.New(http.StatusConflict, "date is not available for booking")
)

// Venue represents a bookable physical space owned by a venue provider.
type Venue struct {
	ID          string
	ProviderID  string
	Name        string
	Location    string
	CapacityMin int
	CapacityMax int
	HourlyPrice float64
	EventPrice  float64
	PhotoPath   *string
	CreatedAt   time.Time
}

// Booking is a confirmed occupation of a venue on a specific day. Rows are
// appended only when a booking request targeting the venue is approved.
type Booking struct {
	ID        string
	VenueID   string
	Day       time.Time
	UserEmail string
	EventName string
	CreatedAt time.Time
}

// Filter defines parameters for listing venues.
type Filter struct {
	ProviderID  string
	Location    string
	MinCapacity int
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// Day truncates t to a calendar date in UTC. Availability, bookings and
// booking requests all operate at day granularity.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
