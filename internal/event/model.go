package event

import (
	"net/http"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "event not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "invalid event type")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end_time must be after start_time")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "retail_price must not be negative")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrCancelled        = apperror.New(http.StatusConflict, "event is cancelled")
)

// Status is the lifecycle state of an event. It is derived from the event's
// booking requests, except for cancelled, which is set explicitly and is
// terminal.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPlanning  Status = "planning"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Type classifies an event.
type Type string

const (
	TypeWedding    Type = "wedding"
	TypeConference Type = "conference"
	TypeBirthday   Type = "birthday"
	TypeCorporate  Type = "corporate"
	TypeExhibition Type = "exhibition"
	TypeOther      Type = "other"
)

// ValidTypes lists the accepted event type values.
var ValidTypes = []Type{
	TypeWedding, TypeConference, TypeBirthday, TypeCorporate, TypeExhibition, TypeOther,
}

// Event is an organizer's planned occasion. Its venue and offerings are
// committed through booking requests; Status reflects their resolution.
type Event struct {
	ID          string
	OrganizerID string
	Name        string
	Description string
	EventType   Type
	StartTime   time.Time
	EndTime     time.Time
	RetailPrice float64
	Status      Status
	VenueID     *string
	OfferingIDs []string

	PenaltyApplied bool
	PenaltyAmount  float64
	CancelledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing events.
type Filter struct {
	OrganizerID string
	Status      Status
	EventType   Type
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
