package http

import (
	"time"

	"github.com/planora/event-management-backend/internal/offering"
	"github.com/planora/event-management-backend/internal/pkg/request"
)

type CreateServiceRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	Category string  `json:"category" binding:"required,oneof=catering decoration photography security entertainment logistics"`
	Price    float64 `json:"price" binding:"min=0"`
	Location string  `json:"location" binding:"omitempty,max=300"`
}

type UpdateServiceRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=200"`
	Category  *string  `json:"category" binding:"omitempty,oneof=catering decoration photography security entertainment logistics"`
	Price     *float64 `json:"price" binding:"omitempty,min=0"`
	Location  *string  `json:"location" binding:"omitempty,max=300"`
	Available *bool    `json:"available"`
}

type ListServicesRequest struct {
	request.ListParams
	ProviderID string `form:"provider_id" binding:"omitempty,uuid"`
	Category   string `form:"category" binding:"omitempty,oneof=catering decoration photography security entertainment logistics"`
	Location   string `form:"location"`
	Available  *bool  `form:"available"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=created_at name category price"`
}

type ServiceResponse struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Location   string    `json:"location"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewServiceResponse(o *offering.Offering) ServiceResponse {
	return ServiceResponse{
		ID:         o.ID,
		ProviderID: o.ProviderID,
		Name:       o.Name,
		Category:   string(o.Category),
		Price:      o.Price,
		Location:   o.Location,
		Available:  o.Available,
		CreatedAt:  o.CreatedAt,
	}
}

type BookingResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	UserEmail string    `json:"user"`
	EventName string    `json:"event_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingResponse(b *offering.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.Day.Format("2006-01-02"),
		UserEmail: b.UserEmail,
		EventName: b.EventName,
		CreatedAt: b.CreatedAt,
	}
}
