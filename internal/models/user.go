package models

import "time"

// Device is a client device owned by exactly one user.
type Device struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Platform  string    `json:"platform"`
	Trusted   bool      `json:"trusted"`
	LastSeen  time.Time `json:"last_seen"`
	IPAddress string    `json:"ip_address"`
	Geo       string    `json:"geo"`
}

// User is a managed account in the admin dashboard. Identity (ID) is
// immutable; everything else is mutated in place by admin actions.
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	CreatedAt          time.Time `json:"created_at"`
	LastLogin          time.Time `json:"last_login"`
	Geo                string    `json:"geo"`
	Active             bool      `json:"active"`
	RiskScore          int       `json:"risk_score"`
	LoginAnomalies     int       `json:"login_anomalies"`
	StepUpRequired     bool      `json:"step_up_required"`
	ForcePasswordReset bool      `json:"force_password_reset"`
	Devices            []Device  `json:"devices"`
	AnomalyTags        []string  `json:"anomaly_tags,omitempty"`
}

// Clone returns a deep copy so callers never alias store-owned state.
func (u User) Clone() User {
	cp := u
	cp.Devices = append([]Device(nil), u.Devices...)
	cp.AnomalyTags = append([]string(nil), u.AnomalyTags...)
	return cp
}

// AdminRole gates which export scopes a dashboard consumer may request.
type AdminRole string

// Recognized admin roles.
const (
	RoleSuperAdmin   AdminRole = "super_admin"
	RoleAdminAnalyst AdminRole = "admin_analyst"
	RoleAuditor      AdminRole = "auditor"
)

// NormalizeRole maps arbitrary input to a known role, defaulting to super_admin.
func NormalizeRole(s string) AdminRole {
	switch AdminRole(s) {
	case RoleSuperAdmin, RoleAdminAnalyst, RoleAuditor:
		return AdminRole(s)
	default:
		return RoleSuperAdmin
	}
}
