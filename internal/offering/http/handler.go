package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/offering"
	"github.com/planora/event-management-backend/internal/pkg/request"
	"github.com/planora/event-management-backend/internal/pkg/response"
)

type Handler struct {
	service offering.Service
}

func NewHandler(service offering.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	o, err := h.service.Create(c.Request.Context(), offering.CreateRequest{
		ProviderID: auth.GetUserID(c),
		Name:       req.Name,
		Category:   offering.Category(req.Category),
		Price:      req.Price,
		Location:   req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(o))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(o))
}

func (h *Handler) List(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := offering.Filter{
		ProviderID: req.ProviderID,
		Category:   req.Category,
		Location:   req.Location,
		Available:  req.Available,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	offerings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list services"})
		return
	}

	items := make([]ServiceResponse, len(offerings))
	for i, o := range offerings {
		items[i] = NewServiceResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var category *offering.Category
	if req.Category != nil {
		cat := offering.Category(*req.Category)
		category = &cat
	}

	o, err := h.service.Update(c.Request.Context(), uriReq.ID, offering.UpdateRequest{
		Name:      req.Name,
		Category:  category,
		Price:     req.Price,
		Location:  req.Location,
		Available: req.Available,
	}, auth.GetUserID(c), c.GetBool("isSysAdmin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), c.GetBool("isSysAdmin")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
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

// ListSelectable returns services whose availability flag is set. Unlike
// venues, service availability has no date-level granularity.
func (h *Handler) ListSelectable(c *gin.Context) {
	offerings, err := h.service.ListSelectable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list selectable services"})
		return
	}

	items := make([]ServiceResponse, len(offerings))
	for i, o := range offerings {
		items[i] = NewServiceResponse(o)
	}

	c.JSON(http.StatusOK, items)
}
