package service

import (
	"github.com/cephas20k/secops/internal/metrics"
	"github.com/cephas20k/secops/internal/models"
)

// RecordAdminLoginAttempt ingests a login attempt from the authentication
// collaborator into the ledger. IP and geo land in the entry details where the
// analytics pass reads them.
func (e *Engine) RecordAdminLoginAttempt(username string, success bool, ipAddress, geo string) models.AuditEntry {
	status := models.StatusSuccess
	if !success {
		status = models.StatusFailed
	}

	entry := e.ledger.Append(models.CategoryLoginAttempt, "admin_login", username, "", status,
		map[string]any{"ip": ipAddress, "geo": geo})
	e.updateGauges()
	metrics.LoginAttemptsTotal.WithLabelValues(string(status)).Inc()

	return entry
}

// RecordAPIRequestMetric ingests one API telemetry sample into the ring
// buffer feeding dashboard health.
func (e *Engine) RecordAPIRequestMetric(route, method string, statusCode int, latencyMs float64, success bool) {
	e.apiMetrics.Record(models.APIMetric{
		Route:      route,
		Method:     method,
		StatusCode: statusCode,
		LatencyMs:  latencyMs,
		Success:    success,
		Timestamp:  e.clock.Now(),
	})
}
