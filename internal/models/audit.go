// Package models defines data types for the security-operations engine.
package models

import "time"

// AuditCategory classifies a ledger entry.
type AuditCategory string

// Ledger entry categories.
const (
	CategoryLoginAttempt AuditCategory = "login_attempt"
	CategoryOTP          AuditCategory = "otp"
	CategoryAdminAction  AuditCategory = "admin_action"
	CategoryAccount      AuditCategory = "account"
)

// AuditStatus is the outcome of the event a ledger entry records.
type AuditStatus string

// Ledger entry statuses.
const (
	StatusSuccess AuditStatus = "success"
	StatusFailed  AuditStatus = "failed"
)

// AuditEntry is a single immutable record in the append-only ledger.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Category  AuditCategory  `json:"category"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Target    string         `json:"target,omitempty"`
	Status    AuditStatus    `json:"status"`
	Details   map[string]any `json:"details,omitempty"`
}

// APIMetric is one sample of API request telemetry, ring-buffered by the store.
type APIMetric struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	LatencyMs  float64   `json:"latency_ms"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}
