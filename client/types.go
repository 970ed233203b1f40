package client

import "time"

// Device is a client device owned by a monitored user.
type Device struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Platform  string    `json:"platform"`
	Trusted   bool      `json:"trusted"`
	LastSeen  time.Time `json:"last_seen"`
	IPAddress string    `json:"ip_address"`
	Geo       string    `json:"geo"`
}

// User is a managed account in the admin directory.
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

// AuditEntry is a single record from the append-only audit ledger.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Category  string         `json:"category"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Target    string         `json:"target,omitempty"`
	Status    string         `json:"status"`
	Details   map[string]any `json:"details,omitempty"`
}

// ApprovalRequest is a managed action queued behind the approval gate.
type ApprovalRequest struct {
	ID          string         `json:"id"`
	ActionType  string         `json:"action_type"`
	Payload     map[string]any `json:"payload"`
	Target      string         `json:"target"`
	Summary     string         `json:"summary"`
	RequestedBy string         `json:"requested_by"`
	RequestedAt time.Time      `json:"requested_at"`
	Status      string         `json:"status"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	ResolvedBy  string         `json:"resolved_by,omitempty"`
	Resolution  string         `json:"resolution,omitempty"`
}

// ActionResult is the applied outcome of a managed action.
type ActionResult struct {
	User            *User   `json:"user,omitempty"`
	Device          *Device `json:"device,omitempty"`
	AffectedDevices int     `json:"affected_devices,omitempty"`
}

// ActionOutcome is the response to a managed action submission: Status is
// "applied" with Result set, or "pending_approval" with Approval set.
type ActionOutcome struct {
	Status   string           `json:"status"`
	Approval *ApprovalRequest `json:"approval,omitempty"`
	Result   *ActionResult    `json:"result,omitempty"`
}

// ResolveOutcome is the response to resolving a pending approval.
type ResolveOutcome struct {
	Approval *ApprovalRequest `json:"approval"`
	Result   *ActionResult    `json:"result,omitempty"`
}

// BulkResult reports how a bulk operation fanned out.
type BulkResult struct {
	Requested int `json:"requested"`
	Updated   int `json:"updated"`
	Queued    int `json:"queued"`
}

// GovernanceConfig is the process-wide approval gate switch.
type GovernanceConfig struct {
	RequireApproval bool `json:"require_approval"`
}

// AlertRuleConfig is the alert rule thresholds read by every analytics pass.
type AlertRuleConfig struct {
	Enabled                     bool `json:"enabled"`
	FailedLogins15mThreshold    int  `json:"failed_logins_15m_threshold"`
	HighRiskThreshold           int  `json:"high_risk_threshold"`
	UniqueCountries24hThreshold int  `json:"unique_countries_24h_threshold"`
}

// Alert is one triggered alert condition from an analytics pass.
type Alert struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExportSchedule describes a recurring export job.
type ExportSchedule struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Scope     string     `json:"scope"`
	Format    string     `json:"format"`
	Frequency string     `json:"frequency"`
	TimeUTC   string     `json:"time_utc"`
	DayOfWeek int        `json:"day_of_week"`
	Enabled   bool       `json:"enabled"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	NextRunAt *time.Time `json:"next_run_at,omitempty"`
}

// ExportHistoryEntry is an immutable record of a completed export.
type ExportHistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Format    string    `json:"format"`
	Scope     string    `json:"scope"`
	Records   int       `json:"records"`
	Source    string    `json:"source"`
	Filename  string    `json:"filename"`
	Checksum  string    `json:"checksum"`
}

// Page is the paginated envelope returned by directory list endpoints.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	SortBy     string `json:"sort_by"`
	SortDir    string `json:"sort_dir"`
	Query      string `json:"query"`
}

// ListOptions controls search, sort, and pagination on list endpoints.
type ListOptions struct {
	Query    string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// DashboardOptions selects the analytics range and viewer identity.
type DashboardOptions struct {
	RangeDays int
	Username  string
	Role      string
}

// RiskTrendPoint is one daily bucket of the risk trend series.
type RiskTrendPoint struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Attempts  int    `json:"attempts"`
	Failed    int    `json:"failed"`
	Anomalies int    `json:"anomalies"`
	Score     int    `json:"score"`
}

// GrowthPoint is one monthly bucket of the user growth series.
type GrowthPoint struct {
	Month      string `json:"month"`
	Label      string `json:"label"`
	NewUsers   int    `json:"new_users"`
	TotalUsers int    `json:"total_users"`
}

// TrafficPoint is one daily bucket of login traffic.
type TrafficPoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Visits  int    `json:"visits"`
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
}

// TrafficSummary aggregates the traffic series.
type TrafficSummary struct {
	TotalVisits     int `json:"total_visits"`
	TotalSuccess    int `json:"total_success"`
	TotalFailed     int `json:"total_failed"`
	SuccessRate     int `json:"success_rate"`
	UniqueIPs       int `json:"unique_ips"`
	UniqueCountries int `json:"unique_countries"`
}

// TrafficInsights bundles the daily traffic series with its summary.
type TrafficInsights struct {
	Daily   []TrafficPoint `json:"daily"`
	Summary TrafficSummary `json:"summary"`
}

// RealtimeMetrics are the point-in-time dashboard counters.
type RealtimeMetrics struct {
	ActiveSessions  int `json:"active_sessions"`
	FailedLogins10m int `json:"failed_logins_10m"`
	StepUpQueue     int `json:"step_up_queue"`
}

// GeoThreat summarizes login attempts grouped by geo.
type GeoThreat struct {
	Geo         string `json:"geo"`
	Attempts    int    `json:"attempts"`
	Failed      int    `json:"failed"`
	SuccessRate int    `json:"success_rate"`
	UniqueIPs   int    `json:"unique_ips"`
}

// DashboardHealth reports engine health derived from recent telemetry.
type DashboardHealth struct {
	AvgLatencyMs        float64 `json:"avg_latency_ms"`
	APIFailures         int     `json:"api_failures"`
	RecentAdminFailures int     `json:"recent_admin_failures"`
	ApprovalQueueDepth  int     `json:"approval_queue_depth"`
}

// DashboardSnapshot is the full aggregated dashboard state.
type DashboardSnapshot struct {
	GeneratedAt      time.Time            `json:"generated_at"`
	RangeDays        int                  `json:"range_days"`
	AdminUsername    string               `json:"admin_username"`
	AdminRole        string               `json:"admin_role"`
	TotalUsers       int                  `json:"total_users"`
	ActiveUsers      int                  `json:"active_users"`
	RiskTrend        []RiskTrendPoint     `json:"risk_trend"`
	UserGrowth       []GrowthPoint        `json:"user_growth"`
	Traffic          TrafficInsights      `json:"traffic"`
	Realtime         RealtimeMetrics      `json:"realtime"`
	ThreatGeo        []GeoThreat          `json:"threat_geo"`
	Alerts           []Alert              `json:"alerts"`
	Health           DashboardHealth      `json:"health"`
	AlertRules       AlertRuleConfig      `json:"alert_rules"`
	Governance       GovernanceConfig     `json:"governance"`
	PendingApprovals []ApprovalRequest    `json:"pending_approvals"`
	ExportHistory    []ExportHistoryEntry `json:"export_history"`
	ExportSchedules  []ExportSchedule     `json:"export_schedules"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	LedgerEntries int     `json:"ledger_entries"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
