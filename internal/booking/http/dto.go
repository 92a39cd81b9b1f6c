package http

import (
	"time"

	"github.com/planora/event-management-backend/internal/booking"
	"github.com/planora/event-management-backend/internal/pkg/request"
)

type ListRequestsRequest struct {
	request.ListParams
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	ItemID  string `form:"item_id" binding:"omitempty,uuid"`
	Kind    string `form:"kind" binding:"omitempty,oneof=venue service"`
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed rejected"`
}

type RejectRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

type RequestResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	ItemID         string    `json:"item_id"`
	EventID        string    `json:"event_id"`
	EventName      string    `json:"event_name"`
	OrganizerEmail string    `json:"organizer_email"`
	Date           string    `json:"date"`
	Status         string    `json:"status"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewRequestResponse(req *booking.Request) RequestResponse {
	return RequestResponse{
		ID:             req.ID,
		Kind:           string(req.Kind),
		ItemID:         req.ItemID,
		EventID:        req.EventID,
		EventName:      req.EventName,
		OrganizerEmail: req.OrganizerEmail,
		Date:           req.Day.Format("2006-01-02"),
		Status:         string(req.Status),
		Reason:         req.Reason,
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
	}
}
