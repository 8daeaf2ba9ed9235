package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vrisa/internal/domain"
	"vrisa/internal/lifecycle"
	"vrisa/internal/pkg/response"
)

// RequireRole gates a route to an allowed role set. Non-privileged users get
// a redirect hint to the safe default route, never a bare error.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
			c.Abort()
			return
		}
		if _, ok := set[sess.Role]; !ok {
			response.ErrorWithRedirect(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions", lifecycle.RouteHome)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly requires the super_admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSuperAdmin)
}

// ApproverOnly gates the approval queues: super_admin and institution_head.
func ApproverOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSuperAdmin, domain.RoleInstitutionHead)
}

// InstitutionScoped admits any session the stations list treats as
// institution-scoped, including the institution-id fallback.
func InstitutionScoped() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
			c.Abort()
			return
		}
		if !lifecycle.IsInstitutionScoped(sess.Role, sess.InstitutionID) {
			response.ErrorWithRedirect(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions", lifecycle.RouteHome)
			c.Abort()
			return
		}
		c.Next()
	}
}
