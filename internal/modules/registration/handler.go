package registration

import (
	"errors"
	"net/http"
	"strings"

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
	group := protected.Group("/register")
	{
		group.POST("/station/validate", h.ValidateStationBasics)
		group.POST("/station", h.SubmitStation)
		group.POST("/institution", h.RegisterInstitution)
		group.POST("/researcher", h.CompleteResearcher)
	}
}

func (h *Handler) ValidateStationBasics(c *gin.Context) {
	var form StationBasicsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ValidateStationBasics(form); err != nil {
		h.validationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": true})
}

func (h *Handler) SubmitStation(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	var form StationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	station, err := h.service.SubmitStation(c.Request.Context(), sess, form)
	if err != nil {
		h.validationError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"station": station})
}

func (h *Handler) RegisterInstitution(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	req := InstitutionRequest{
		Name:    c.PostForm("name"),
		Address: c.PostForm("address"),
		Colors:  splitColors(c.PostFormArray("colors")),
	}

	logo, closeLogo, err := optionalFile(c, "logo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read logo upload")
		return
	}
	defer closeLogo()

	if err := h.service.RegisterInstitution(c.Request.Context(), sess, req, logo); err != nil {
		h.validationError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Institution submitted for review",
	})
}

func (h *Handler) CompleteResearcher(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	form := upstream.ResearcherForm{
		FullName:       c.PostForm("full_name"),
		Email:          c.PostForm("email"),
		DocumentType:   c.PostForm("document_type"),
		DocumentNumber: c.PostForm("document_number"),
		Affiliation:    c.PostForm("affiliated_institution"),
	}

	one, closeOne, err := optionalFile(c, "credential_1")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read credential upload")
		return
	}
	defer closeOne()
	two, closeTwo, err := optionalFile(c, "credential_2")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read credential upload")
		return
	}
	defer closeTwo()

	if one != nil {
		form.CredentialOne = *one
	}
	if two != nil {
		form.CredentialTwo = *two
	}

	if err := h.service.CompleteResearcher(c.Request.Context(), sess, form); err != nil {
		h.validationError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Researcher request submitted for review",
	})
}

func (h *Handler) validationError(c *gin.Context, err error) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", fieldErr.Message, gin.H{
			"field": fieldErr.Field,
		})
		return
	}
	var colorErr *ColorError
	if errors.As(err, &colorErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_COLORS", colorErr.Error(), gin.H{
			"invalid_colors": colorErr.Invalid,
		})
		return
	}
	response.Upstream(c, err)
}

// splitColors accepts both repeated fields and a single comma-joined value.
func splitColors(raw []string) []string {
	var out []string
	for _, entry := range raw {
		out = append(out, strings.Split(entry, ",")...)
	}
	return out
}

// optionalFile treats a missing part as absent, not as an error; the service
// decides which uploads are mandatory.
func optionalFile(c *gin.Context, field string) (*upstream.FileUpload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &upstream.FileUpload{Filename: fh.Filename, Content: f}, func() { f.Close() }, nil
}
