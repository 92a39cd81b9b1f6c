package booking

import (
	"net/http"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking request not found")
	ErrAlreadyResolved  = apperror.New(http.StatusConflict, "booking request already resolved")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Kind identifies the resource a booking request targets.
type Kind string

const (
	KindVenue   Kind = "venue"
	KindService Kind = "service"
)

// Status is the lifecycle state of a booking request. Requests are created
// pending and resolved exactly once to confirmed or rejected.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Request asks the owner of a venue or service to commit the resource to an
// event on a given day.
type Request struct {
	ID             string
	Kind           Kind
	ItemID         string
	EventID        string
	EventName      string
	OrganizerEmail string
	Day            time.Time
	Status         Status
	Reason         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for listing booking requests.
type Filter struct {
	EventID   string
	ItemID    string
	Kind      Kind
	Status    Status
	Page      int
	PageSize  int
	SortOrder string
}
