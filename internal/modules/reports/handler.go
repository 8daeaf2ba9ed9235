package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vrisa/internal/middleware"
	"vrisa/internal/pkg/response"
	"vrisa/internal/upstream"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/reports")
	{
		group.GET("/options", h.Options)
		group.GET("/download", h.Download)
	}
}

func (h *Handler) Options(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	opts, err := h.service.Options(c.Request.Context(), sess)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// Download relays the backend PDF as an attachment, preserving the
// server-suggested filename.
func (h *Handler) Download(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	req := DownloadRequest{
		Category: upstream.ReportCategory(c.DefaultQuery("category", string(upstream.CategoryQuality))),
		Variable: c.Query("variable"),
	}
	if raw := c.Query("station"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "station must be a positive integer")
			return
		}
		req.StationID = id
	}
	var err error
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

	report, err := h.service.Download(c.Request.Context(), sess, req)
	if err != nil {
		response.Upstream(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
