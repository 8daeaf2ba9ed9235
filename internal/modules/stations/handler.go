package stations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vrisa/internal/domain"
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
	group := protected.Group("/stations")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/sensors", h.AddSensor)
	}
	sensors := protected.Group("/sensors")
	{
		sensors.GET("/:id/maintenance", h.Maintenance)
		sensors.POST("/:id/maintenance", h.AddMaintenance)
	}
}

func (h *Handler) List(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	list, err := h.service.List(c.Request.Context(), sess, domain.StationStatus(c.Query("status")))
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stations": list})
}

func (h *Handler) Get(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	st, err := h.service.Get(c.Request.Context(), sess, id)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"station": st})
}

func (h *Handler) AddSensor(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sensor, err := h.service.AddSensor(c.Request.Context(), sess, id, upstream.CreateSensorPayload{
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		SerialNumber: req.SerialNumber,
		InstalledAt:  req.InstalledAt,
	})
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sensor": sensor})
}

func (h *Handler) Maintenance(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	logs, err := h.service.Maintenance(c.Request.Context(), sess, id)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"maintenance": logs})
}

// AddMaintenance accepts a multipart form so an optional calibration
// certificate can ride along.
func (h *Handler) AddMaintenance(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	form := upstream.MaintenanceForm{
		SensorID:    id,
		Date:        c.PostForm("date"),
		Description: c.PostForm("description"),
		Technician:  c.PostForm("technician"),
	}
	if form.Date == "" || form.Description == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date and description are required")
		return
	}

	if fh, err := c.FormFile("certificate"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read certificate upload")
			return
		}
		defer f.Close()
		form.Certificate = &upstream.FileUpload{Filename: fh.Filename, Content: f}
	}

	if err := h.service.AddMaintenance(c.Request.Context(), sess, form); err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Maintenance log recorded"})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Id must be a positive integer")
		return 0, false
	}
	return id, true
}
