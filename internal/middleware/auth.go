package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/config"
	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/security"
)

// LoginReporter records failed admin authentication attempts in the audit
// ledger. Satisfied by the engine.
type LoginReporter interface {
	RecordAdminLoginAttempt(username string, success bool, ipAddress, geo string) models.AuditEntry
}

// authTimingFloor is the minimum response time for rejected auth attempts to
// prevent timing oracles that could distinguish near-miss tokens.
const authTimingFloor = 50 * time.Millisecond

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware returns Gin middleware that authenticates requests against
// the configured admin API token. Failed attempts are tracked per client IP
// and recorded in the audit ledger; sources that exceed the failure
// threshold are locked out.
func AuthMiddleware(token config.Secret, log *logrus.Logger, guard *security.BruteForceGuard, reporter LoginReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		ip := c.ClientIP()
		if guard != nil && guard.IsBlocked(ip) {
			respondError(c, http.StatusTooManyRequests, "locked_out", "too many failed authentication attempts")
			return
		}

		presented := ExtractBearerToken(c)
		if presented == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token.Value())) != 1 {
			logAuthFailure(log, c)

			if guard != nil {
				guard.RecordFailure(ip)
			}
			if reporter != nil {
				reporter.RecordAdminLoginAttempt("api-admin", false, ip, "")
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid api token")
			return
		}

		if guard != nil {
			guard.Reset(ip)
		}

		c.Next()
	}
}

// ExtractBearerToken extracts the token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// logAuthFailure logs a failed authentication attempt.
func logAuthFailure(log *logrus.Logger, c *gin.Context) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString("request_id"),
	}).Warn("authentication failed: invalid api token")
}
