package airquality

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vrisa/internal/middleware"
	"vrisa/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/dashboard")
	{
		group.GET("/aqi/current", h.Current)
		group.GET("/history", h.History)
		group.GET("/variables", h.Variables)
		group.GET("/live", h.Live)
	}
}

// RegisterAdminRoutes mounts the counters panel; the group carries AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.Stats)
}

func (h *Handler) Current(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	var stationID *int64
	if raw := c.Query("station"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "station must be an integer")
			return
		}
		stationID = &id
	}

	snaps, err := h.service.Current(c.Request.Context(), sess, stationID)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshots": snaps})
}

func (h *Handler) History(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	stationID, err := strconv.ParseInt(c.Query("station"), 10, 64)
	if err != nil || stationID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "station must be a positive integer")
		return
	}

	req := HistoryRequest{StationID: stationID, VariableCode: c.Query("variable")}
	if raw := c.Query("from"); raw != "" {
		if req.From, err = time.Parse(time.RFC3339, raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be RFC3339")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if req.To, err = time.Parse(time.RFC3339, raw); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be RFC3339")
			return
		}
	}

	series, err := h.service.History(c.Request.Context(), sess, req)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"series": series})
}

func (h *Handler) Variables(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	vars, err := h.service.Variables(c.Request.Context(), sess)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"variables": vars})
}

func (h *Handler) Stats(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), sess)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// Live upgrades to a WebSocket fed by the AQI poller.
func (h *Handler) Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.ServeWS(conn)
}
