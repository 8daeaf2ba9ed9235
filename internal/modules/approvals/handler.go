package approvals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vrisa/internal/middleware"
	"vrisa/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the approvals panel. The group is expected to carry
// SessionGuard and ApproverOnly already.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/approvals")
	{
		group.GET("", h.Queue)
		group.POST("/:type/:id/intent", h.Intent)
		group.POST("/:type/:id/approve", h.Approve)
		group.POST("/:type/:id/reject", h.Reject)
	}
}

func (h *Handler) Queue(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	q, err := h.service.Queue(c.Request.Context(), sess)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, QueueResponse{Tabs: TabsFor(sess.Role), Queue: q})
}

func (h *Handler) Intent(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	typ, id, ok := itemParams(c)
	if !ok {
		return
	}

	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	intent, err := h.service.PrepareIntent(c.Request.Context(), sess, typ, Action(req.Action), id)
	if err != nil {
		h.decisionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

func (h *Handler) Approve(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	typ, id, ok := itemParams(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "confirmation_token is required")
		return
	}

	q, err := h.service.Approve(c.Request.Context(), sess, typ, id, req.ConfirmationToken, req.Force)
	if err != nil {
		h.decisionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, QueueResponse{Tabs: TabsFor(sess.Role), Queue: q})
}

func (h *Handler) Reject(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	typ, id, ok := itemParams(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "confirmation_token is required")
		return
	}

	q, err := h.service.Reject(c.Request.Context(), sess, typ, id, req.ConfirmationToken, req.Reason)
	if err != nil {
		h.decisionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, QueueResponse{Tabs: TabsFor(sess.Role), Queue: q})
}

func (h *Handler) decisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		response.Error(c, http.StatusConflict, "CONFIRMATION_REQUIRED", "Request a new confirmation token and confirm the action")
	case errors.Is(err, ErrSensorsRequired):
		response.Error(c, http.StatusConflict, "SENSORS_REQUIRED", noSensorsReason)
	case errors.Is(err, ErrNotAllowed):
		response.ErrorWithRedirect(c, http.StatusForbidden, "FORBIDDEN", "This item is outside your scope", "/home")
	default:
		response.Upstream(c, err)
	}
}

func itemParams(c *gin.Context) (ItemType, int64, bool) {
	typ, err := ParseItemType(c.Param("type"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "UNKNOWN_ITEM_TYPE", "Approval item type must be institution, station or researcher")
		return "", 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Item id must be a positive integer")
		return "", 0, false
	}
	return typ, id, true
}
