package http

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/pkg/request"
	"github.com/planora/event-management-backend/internal/pkg/response"
	"github.com/planora/event-management-backend/internal/pkg/storage"
	"github.com/planora/event-management-backend/internal/venue"
)

const (
	maxPhotoSize    = 10 << 20 // 10 MiB
	thumbnailWidth  = 800
	thumbnailHeight = 600
)

type Handler struct {
	service   venue.Service
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewHandler(service venue.Service, store storage.Storage, processor *storage.ImageProcessor) *Handler {
	return &Handler{
		service:   service,
		store:     store,
		processor: processor,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), venue.CreateRequest{
		ProviderID:  auth.GetUserID(c),
		Name:        req.Name,
		Location:    req.Location,
		CapacityMin: req.CapacityMin,
		CapacityMax: req.CapacityMax,
		HourlyPrice: req.HourlyPrice,
		EventPrice:  req.EventPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewVenueResponse(v))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVenueResponse(v))
}

func (h *Handler) List(c *gin.Context) {
	var req ListVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := venue.Filter{
		ProviderID:  req.ProviderID,
		Location:    req.Location,
		MinCapacity: req.MinCapacity,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}

	venues, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list venues"})
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	v, err := h.service.Update(c.Request.Context(), uriReq.ID, venue.UpdateRequest{
		Name:        req.Name,
		Location:    req.Location,
		CapacityMin: req.CapacityMin,
		CapacityMax: req.CapacityMax,
		HourlyPrice: req.HourlyPrice,
		EventPrice:  req.EventPrice,
	}, auth.GetUserID(c), isSysAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVenueResponse(v))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), isSysAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateAvailability adds and/or removes days from the venue's availability
// set. Removing a day with a confirmed booking is rejected.
func (h *Handler) UpdateAvailability(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	actorID := auth.GetUserID(c)
	admin := isSysAdmin(c)

	if len(req.Add) > 0 {
		days := make([]time.Time, len(req.Add))
		for i, d := range req.Add {
			days[i], _ = time.Parse("2006-01-02", d)
		}
		if err := h.service.AddAvailability(ctx, uriReq.ID, days, actorID, admin); err != nil {
			response.Error(c, err)
			return
		}
	}

	for _, d := range req.Remove {
		day, _ := time.Parse("2006-01-02", d)
		if err := h.service.RemoveAvailability(ctx, uriReq.ID, day, actorID, admin); err != nil {
			response.Error(c, err)
			return
		}
	}

	days, err := h.service.ListAvailability(ctx, uriReq.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newAvailabilityResponse(uriReq.ID, days))
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	days, err := h.service.ListAvailability(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newAvailabilityResponse(req.ID, days))
}

func (h *Handler) ListBookings(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, items)
}

// ListSelectable returns the venues an organizer may request for a date.
func (h *Handler) ListSelectable(c *gin.Context) {
	var req SelectableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required (YYYY-MM-DD)"})
		return
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	venues, err := h.service.ListSelectable(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list selectable venues"})
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}

	c.JSON(http.StatusOK, items)
}

// UploadPhoto stores a venue photo. The image is downscaled to a bounded
// thumbnail before being written to storage.
func (h *Handler) UploadPhoto(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// Ownership first: a denied upload must not leave a file in storage.
	if err := h.service.EnsureOwner(c.Request.Context(), req.ID, auth.GetUserID(c), isSysAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds maximum size"})
		return
	}

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	thumbnail, err := h.processor.GenerateThumbnail(file, thumbnailWidth, thumbnailHeight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image file"})
		return
	}

	storePath := fmt.Sprintf("venues/%s/%s.jpg", req.ID, uuid.NewString())
	if err := h.store.Save(c.Request.Context(), storePath, thumbnail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	v, err := h.service.SetPhotoPath(c.Request.Context(), req.ID, storePath, auth.GetUserID(c), isSysAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVenueResponse(v))
}

func newAvailabilityResponse(venueID string, days []time.Time) AvailabilityResponse {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format("2006-01-02")
	}
	return AvailabilityResponse{VenueID: venueID, Days: out}
}

func isSysAdmin(c *gin.Context) bool {
	return c.GetBool("isSysAdmin")
}
