package http

import (
	"time"

	"github.com/planora/event-management-backend/internal/event"
	"github.com/planora/event-management-backend/internal/pkg/request"
)

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	EventType   string    `json:"event_type" binding:"required,oneof=wedding conference birthday corporate exhibition other"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RetailPrice float64   `json:"retail_price" binding:"min=0"`
	VenueID     *string   `json:"venue_id" binding:"omitempty,uuid"`
	ServiceIDs  []string  `json:"service_ids" binding:"omitempty,dive,uuid"`
}

type UpdateEventRequest struct {
	Name          *string    `json:"name" binding:"omitempty,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=2000"`
	EventType     *string    `json:"event_type" binding:"omitempty,oneof=wedding conference birthday corporate exhibition other"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RetailPrice   *float64   `json:"retail_price" binding:"omitempty,min=0"`
	VenueID       *string    `json:"venue_id" binding:"omitempty,uuid"`
	AddServiceIDs []string   `json:"add_service_ids" binding:"omitempty,dive,uuid"`
}

type ListEventsRequest struct {
	request.ListParams
	Status    string `form:"status" binding:"omitempty,oneof=draft planning confirmed cancelled"`
	EventType string `form:"event_type" binding:"omitempty,oneof=wedding conference birthday corporate exhibition other"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=created_at start_time name retail_price"`
}

type EventResponse struct {
	ID          string     `json:"id"`
	OrganizerID string     `json:"organizer_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	EventType   string     `json:"event_type"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	RetailPrice float64    `json:"retail_price"`
	Status      string     `json:"status"`
	VenueID     *string    `json:"venue_id,omitempty"`
	ServiceIDs  []string   `json:"service_ids,omitempty"`
	Penalty     *Penalty   `json:"penalty,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Penalty struct {
	Applied bool    `json:"applied"`
	Amount  float64 `json:"amount"`
}

func NewEventResponse(e *event.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		Description: e.Description,
		EventType:   string(e.EventType),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		RetailPrice: e.RetailPrice,
		Status:      string(e.Status),
		VenueID:     e.VenueID,
		ServiceIDs:  e.OfferingIDs,
		CancelledAt: e.CancelledAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Status == event.StatusCancelled {
		resp.Penalty = &Penalty{Applied: e.PenaltyApplied, Amount: e.PenaltyAmount}
	}
	return resp
}
