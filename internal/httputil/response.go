// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// RequestID returns the canonical request ID set by the request ID
// middleware, or the empty string when none is present.
func RequestID(c *gin.Context) string {
	rid, exists := c.Get("request_id")
	if !exists {
		return ""
	}
	s, ok := rid.(string)
	if !ok {
		return ""
	}
	return s
}

// RespondError writes a standardized JSON error response and aborts the request.
func RespondError(c *gin.Context, status int, code, message string) {
	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if rid := RequestID(c); rid != "" {
		resp["request_id"] = rid
	}

	c.AbortWithStatusJSON(status, resp)
}
