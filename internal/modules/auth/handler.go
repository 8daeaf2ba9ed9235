package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vrisa/internal/middleware"
	"vrisa/internal/pkg/response"
	"vrisa/internal/session"
)

type Handler struct {
	service    *Service
	cookieName string
	secureSend bool
}

func NewHandler(service *Service, cookieName string, secureSend bool) *Handler {
	return &Handler{service: service, cookieName: cookieName, secureSend: secureSend}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
	}
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.Me)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Upstream(c, err)
		return
	}

	c.SetCookie(h.cookieName, out.SessionToken, int(out.Session.ExpiresAt.Sub(out.Session.CreatedAt).Seconds()), "/", "", h.secureSend, true)
	response.Success(c, http.StatusOK, LoginResponse{
		User:         userPayload(out.Session),
		SessionToken: out.SessionToken,
		Redirect:     out.Redirect,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"first_name":  user.FirstName,
			"role":        user.Role,
			"role_status": user.RoleStatus,
		},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	hash := c.GetString(middleware.CtxTokenHash)
	if err := h.service.Logout(c.Request.Context(), hash); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Could not destroy session")
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureSend, true)
	response.Success(c, http.StatusOK, gin.H{"redirect": "/"})
}

func (h *Handler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	user, view, err := h.service.Me(c.Request.Context(), sess, c.GetString(middleware.CtxTokenHash))
	if err != nil {
		response.Upstream(c, err)
		return
	}

	response.Success(c, http.StatusOK, MeResponse{
		User: UserPayload{
			ID:            user.ID,
			Email:         user.Email,
			FirstName:     user.FirstName,
			Role:          user.Role,
			RoleStatus:    user.RoleStatus,
			InstitutionID: user.InstitutionID,
		},
		View: view,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), sess, req)
	if err != nil {
		response.Upstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"role":       user.Role,
		},
	})
}

func userPayload(s *session.Session) UserPayload {
	return UserPayload{
		ID:            s.UserID,
		Email:         s.Email,
		FirstName:     s.FirstName,
		Role:          s.Role,
		RoleStatus:    s.RoleStatus,
		InstitutionID: s.InstitutionID,
	}
}
