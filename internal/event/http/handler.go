package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/event"
	"github.com/planora/event-management-backend/internal/pkg/request"
	"github.com/planora/event-management-backend/internal/pkg/response"
)

type Handler struct {
	service event.Service
}

func NewHandler(service event.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.Create(c.Request.Context(), event.CreateRequest{
		OrganizerID:    auth.GetUserID(c),
		OrganizerEmail: auth.GetUserEmail(c),
		Name:           req.Name,
		Description:    req.Description,
		EventType:      event.Type(req.EventType),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RetailPrice:    req.RetailPrice,
		VenueID:        req.VenueID,
		OfferingIDs:    req.ServiceIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewEventResponse(e))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(e))
}

// List returns the caller's own events; admins see everything.
func (h *Handler) List(c *gin.Context) {
	var req ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := event.Filter{
		Status:    event.Status(req.Status),
		EventType: event.Type(req.EventType),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if !c.GetBool("isSysAdmin") {
		filter.OrganizerID = auth.GetUserID(c)
	}

	events, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	items := make([]EventResponse, len(events))
	for i, e := range events {
		items[i] = NewEventResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var eventType *event.Type
	if req.EventType != nil {
		t := event.Type(*req.EventType)
		eventType = &t
	}

	e, err := h.service.Update(c.Request.Context(), uriReq.ID, event.UpdateRequest{
		Name:           req.Name,
		Description:    req.Description,
		EventType:      eventType,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RetailPrice:    req.RetailPrice,
		VenueID:        req.VenueID,
		AddOfferingIDs: req.AddServiceIDs,
	}, auth.GetUserID(c), c.GetBool("isSysAdmin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(e))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetUserID(c), c.GetBool("isSysAdmin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventResponse(e))
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
