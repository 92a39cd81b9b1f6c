package http

import (
	"time"

	"github.com/planora/event-management-backend/internal/pkg/request"
	"github.com/planora/event-management-backend/internal/venue"
)

type CreateVenueRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Location    string  `json:"location" binding:"required,max=300"`
	CapacityMin int     `json:"capacity_min" binding:"min=0"`
	CapacityMax int     `json:"capacity_max" binding:"min=0"`
	HourlyPrice float64 `json:"hourly_price" binding:"min=0"`
	EventPrice  float64 `json:"event_price" binding:"min=0"`
}

// Validate performs custom validation for CreateVenueRequest.
func (r *CreateVenueRequest) Validate() error {
	if r.CapacityMax < r.CapacityMin {
		return venue.ErrInvalidCapacity
	}
	return nil
}

type UpdateVenueRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Location    *string  `json:"location" binding:"omitempty,max=300"`
	CapacityMin *int     `json:"capacity_min" binding:"omitempty,min=0"`
	CapacityMax *int     `json:"capacity_max" binding:"omitempty,min=0"`
	HourlyPrice *float64 `json:"hourly_price" binding:"omitempty,min=0"`
	EventPrice  *float64 `json:"event_price" binding:"omitempty,min=0"`
}

type ListVenuesRequest struct {
	request.ListParams
	ProviderID  string `form:"provider_id" binding:"omitempty,uuid"`
	Location    string `form:"location"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=created_at name location hourly_price event_price"`
}

type AvailabilityRequest struct {
	Add    []string `json:"add" binding:"omitempty,dive,datetime=2006-01-02"`
	Remove []string `json:"remove" binding:"omitempty,dive,datetime=2006-01-02"`
}

type SelectableRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	UserEmail string    `json:"user"`
	EventName string    `json:"event_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingResponse(b *venue.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.Day.Format("2006-01-02"),
		UserEmail: b.UserEmail,
		EventName: b.EventName,
		CreatedAt: b.CreatedAt,
	}
}

type VenueResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	CapacityMin int       `json:"capacity_min"`
	CapacityMax int       `json:"capacity_max"`
	HourlyPrice float64   `json:"hourly_price"`
	EventPrice  float64   `json:"event_price"`
	PhotoPath   *string   `json:"photo_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:          v.ID,
		ProviderID:  v.ProviderID,
		Name:        v.Name,
		Location:    v.Location,
		CapacityMin: v.CapacityMin,
		CapacityMax: v.CapacityMax,
		HourlyPrice: v.HourlyPrice,
		EventPrice:  v.EventPrice,
		PhotoPath:   v.PhotoPath,
		CreatedAt:   v.CreatedAt,
	}
}

type AvailabilityResponse struct {
	VenueID string   `json:"venue_id"`
	Days    []string `json:"days"`
}
