package models

import "time"

// RiskTrendPoint is one daily bucket of the risk trend series.
type RiskTrendPoint struct {
	Date      string `json:"date"` // calendar date, YYYY-MM-DD local
	Label     string `json:"label"`
	Attempts  int    `json:"attempts"`
	Failed    int    `json:"failed"`
	Anomalies int    `json:"anomalies"`
	Score     int    `json:"score"`
}

// GrowthPoint is one monthly bucket of the user growth series.
type GrowthPoint struct {
	Month      string `json:"month"` // YYYY-MM
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
	SuccessRate     int `json:"success_rate"` // percent, rounded
	UniqueIPs       int `json:"unique_ips"`
	UniqueCountries int `json:"unique_countries"`
}

// TrafficInsights bundles the daily series with its summary.
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

// GeoThreat summarizes login attempts grouped by geo string.
type GeoThreat struct {
	Geo         string `json:"geo"`
	Attempts    int    `json:"attempts"`
	Failed      int    `json:"failed"`
	SuccessRate int    `json:"success_rate"`
	UniqueIPs   int    `json:"unique_ips"`
}

// DashboardHealth reports engine health derived from recent API metrics,
// admin-action failures, and the approval queue.
type DashboardHealth struct {
	AvgLatencyMs        float64 `json:"avg_latency_ms"`
	APIFailures         int     `json:"api_failures"`
	RecentAdminFailures int     `json:"recent_admin_failures"`
	ApprovalQueueDepth  int     `json:"approval_queue_depth"`
}

// DashboardSnapshot is the full aggregated dashboard state for one request.
type DashboardSnapshot struct {
	GeneratedAt      time.Time              `json:"generated_at"`
	RangeDays        int                    `json:"range_days"`
	AdminUsername    string                 `json:"admin_username"`
	AdminRole        AdminRole              `json:"admin_role"`
	TotalUsers       int                    `json:"total_users"`
	ActiveUsers      int                    `json:"active_users"`
	RiskTrend        []RiskTrendPoint       `json:"risk_trend"`
	UserGrowth       []GrowthPoint          `json:"user_growth"`
	Traffic          TrafficInsights        `json:"traffic"`
	Realtime         RealtimeMetrics        `json:"realtime"`
	ThreatGeo        []GeoThreat            `json:"threat_geo"`
	Alerts           []Alert                `json:"alerts"`
	Health           DashboardHealth        `json:"health"`
	AlertRules       AlertRuleConfig        `json:"alert_rules"`
	Governance       GovernanceConfig       `json:"governance"`
	PendingApprovals []ApprovalRequest      `json:"pending_approvals"`
	ExportHistory    []ExportHistoryEntry   `json:"export_history"`
	ExportSchedules  []ExportScheduleConfig `json:"export_schedules"`
}
