package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vrisa/internal/upstream"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// ErrorWithRedirect carries the route the SPA must navigate to. Guards use it
// for the landing and safe-default redirects.
func ErrorWithRedirect(c *gin.Context, statusCode int, code, message, redirect string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
		"redirect": redirect,
	})
}

// Upstream translates a backend error into our envelope. A session-expired
// 401 answers with the forced redirect to the landing route and flags the
// request so the session middleware destroys the session afterwards.
func Upstream(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		Error(c, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "Could not reach the VriSA backend")
		return
	}

	if apiErr.SessionExpired() {
		c.Set("force_logout", true)
		ErrorWithRedirect(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired, please sign in again", "/")
		return
	}

	if apiErr.Status >= http.StatusInternalServerError {
		Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "The VriSA backend failed to process the request")
		return
	}

	if details := apiErr.FieldErrors(); len(details) > 0 {
		ErrorWithDetails(c, apiErr.Status, "UPSTREAM_REJECTED", apiErr.Message, details)
		return
	}
	Error(c, apiErr.Status, "UPSTREAM_REJECTED", apiErr.Message)
}
