package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planora/event-management-backend/internal/auth"
	"github.com/planora/event-management-backend/internal/booking"
	"github.com/planora/event-management-backend/internal/pkg/request"
	"github.com/planora/event-management-backend/internal/pkg/response"
	"github.com/planora/event-management-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// visibility scopes a listing to what the caller may see: admins see all,
// providers see requests targeting their resources, organizers their own.
func visibility(c *gin.Context) booking.Visibility {
	if c.GetBool("isSysAdmin") {
		return booking.Visibility{All: true}
	}

	vis := booking.Visibility{}
	switch user.Role(auth.GetUserRole(c)) {
	case user.RoleVenueProvider, user.RoleServiceProvider:
		vis.ProviderID = auth.GetUserID(c)
	default:
		vis.OrganizerEmail = auth.GetUserEmail(c)
	}
	return vis
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		EventID:   req.EventID,
		ItemID:    req.ItemID,
		Kind:      booking.Kind(req.Kind),
		Status:    booking.Status(req.Status),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}

	reqs, total, err := h.service.List(c.Request.Context(), visibility(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list booking requests"})
		return
	}

	items := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		items[i] = NewRequestResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), req.ID, visibility(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

func (h *Handler) Approve(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.Approve(c.Request.Context(), req.ID, auth.GetUserID(c), c.GetBool("isSysAdmin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

func (h *Handler) Reject(c *gin.Context) {
	var uriReq request.ByIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	r, err := h.service.Reject(c.Request.Context(), uriReq.ID, req.Reason, auth.GetUserID(c), c.GetBool("isSysAdmin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}
