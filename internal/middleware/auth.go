package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vrisa/internal/pkg/response"
	"vrisa/internal/session"
)

// Context keys set by SessionGuard.
const (
	CtxSession   = "session"
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxTokenHash = "token_hash"

	// ForceLogout is set by handlers when the upstream reported an expired
	// session; the guard destroys the session after the handler returns.
	ForceLogout = "force_logout"
)

// SessionGuard resolves the opaque session token (cookie first, then bearer
// header) into a Session. Requests without a live session are answered with
// a redirect hint to the public landing route.
func SessionGuard(store session.Store, cookieName, pepper string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c, cookieName)
		if raw == "" {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "/")
			c.Abort()
			return
		}

		hash := session.HashToken(raw, pepper)
		sess, err := store.Get(c.Request.Context(), hash)
		if err != nil {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session is not valid", "/")
			c.Abort()
			return
		}

		c.Set(CtxSession, sess)
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxRole, string(sess.Role))
		c.Set(CtxTokenHash, hash)

		c.Next()

		if c.GetBool(ForceLogout) {
			_ = store.Delete(c.Request.Context(), hash)
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
		}
	}
}

// SessionFromContext returns the session placed by SessionGuard.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
