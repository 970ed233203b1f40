package service

import (
	"sort"

	"github.com/cephas20k/secops/internal/analytics"
	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/view"
)

// Snapshot embed limits.
const (
	snapshotPendingApprovals = 20
	snapshotExportHistory    = 10
)

// Config ledger action tokens.
const (
	actionGovernanceUpdated = "governance_updated"
	actionAlertRulesUpdated = "alert_rules_updated"
)

// GetDashboardSnapshot sweeps due export schedules, then assembles the full
// aggregated dashboard state. Aggregation itself is read-only; the sweep is
// the only mutation in the call.
func (e *Engine) GetDashboardSnapshot(rangeDays int, adminUsername, adminRole string) models.DashboardSnapshot {
	now := e.clock.Now()
	e.ProcessDueScheduledExports(now)

	rangeDays = analytics.ClampRangeDays(rangeDays)
	users := e.users.List()
	entries := e.ledger.All()
	rules := e.config.AlertRules()

	active := 0
	for _, u := range users {
		if u.Active {
			active++
		}
	}

	alerts := analytics.TriggeredAlerts(users, entries, rules, now)
	if len(alerts) > 0 {
		e.events.Publish("alert.triggered", alerts)
	}

	return models.DashboardSnapshot{
		GeneratedAt:      now,
		RangeDays:        rangeDays,
		AdminUsername:    adminUsername,
		AdminRole:        models.NormalizeRole(adminRole),
		TotalUsers:       len(users),
		ActiveUsers:      active,
		RiskTrend:        analytics.RiskTrend(entries, rangeDays, now),
		UserGrowth:       analytics.UserGrowth(users, rangeDays, now),
		Traffic:          analytics.Traffic(entries, rangeDays, now),
		Realtime:         analytics.Realtime(users, entries, now),
		ThreatGeo:        analytics.ThreatGeo(entries, analytics.DefaultGeoDays, now),
		Alerts:           alerts,
		Health:           analytics.Health(e.apiMetrics.Last(0), entries, e.approvals.PendingCount(), now),
		AlertRules:       rules,
		Governance:       e.config.Governance(),
		PendingApprovals: e.approvals.List(models.ApprovalPending, snapshotPendingApprovals),
		ExportHistory:    e.history.List(snapshotExportHistory),
		ExportSchedules:  e.schedules.List(),
	}
}

// QueryUsers lists users through the paginated view engine.
func (e *Engine) QueryUsers(opts view.Options) view.Page[models.User] {
	return view.Paginate(e.users.List(), view.Users(), opts)
}

// QueryUserDevices lists one user's devices through the paginated view
// engine. Returns nil if the user does not exist.
func (e *Engine) QueryUserDevices(userID string, opts view.Options) *view.Page[models.Device] {
	u, ok := e.users.Get(userID)
	if !ok {
		return nil
	}

	page := view.Paginate(u.Devices, view.Devices(), opts)
	return &page
}

// GetUserTimeline returns ledger entries involving the user, newest first.
// The whole ledger is scanned so old events stay visible no matter how much
// unrelated activity came after them; limit truncates the filtered result.
// Returns nil if the user does not exist.
func (e *Engine) GetUserTimeline(userID string, limit int) []models.AuditEntry {
	u, ok := e.users.Get(userID)
	if !ok {
		return nil
	}

	all := e.ledger.All()
	out := make([]models.AuditEntry, 0)
	// Reverse insertion order, then a stable sort on timestamp, matches the
	// ordering the ledger's own queries produce.
	for i := len(all) - 1; i >= 0; i-- {
		entry := all[i]
		if entry.Target == u.ID || entry.Actor == u.Username {
			out = append(out, entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// GetAuditLogs queries the ledger, optionally filtered to one category.
func (e *Engine) GetAuditLogs(category models.AuditCategory, limit int) []models.AuditEntry {
	return e.ledger.Query(category, limit)
}

// GetApprovals lists approvals newest first, optionally filtered by status.
func (e *Engine) GetApprovals(status models.ApprovalStatus, limit int) []models.ApprovalRequest {
	return e.approvals.List(status, limit)
}

// GetGovernanceConfig returns the current governance switch.
func (e *Engine) GetGovernanceConfig() models.GovernanceConfig {
	return e.config.Governance()
}

// SetGovernanceConfig replaces the governance switch and audits the change.
func (e *Engine) SetGovernanceConfig(cfg models.GovernanceConfig, actor string) models.GovernanceConfig {
	e.config.SetGovernance(cfg)

	e.ledger.Append(models.CategoryAdminAction, actionGovernanceUpdated, actor, "", models.StatusSuccess,
		map[string]any{"require_approval": cfg.RequireApproval})
	e.updateGauges()

	return cfg
}

// GetAlertRules returns the current alert rule thresholds.
func (e *Engine) GetAlertRules() models.AlertRuleConfig {
	return e.config.AlertRules()
}

// SetAlertRules validates and replaces the alert thresholds.
func (e *Engine) SetAlertRules(cfg models.AlertRuleConfig, actor string) (models.AlertRuleConfig, error) {
	if err := cfg.Validate(); err != nil {
		return models.AlertRuleConfig{}, err
	}

	e.config.SetAlertRules(cfg)

	e.ledger.Append(models.CategoryAdminAction, actionAlertRulesUpdated, actor, "", models.StatusSuccess,
		map[string]any{
			"enabled":              cfg.Enabled,
			"failed_logins_15m":    cfg.FailedLogins15mThreshold,
			"high_risk":            cfg.HighRiskThreshold,
			"unique_countries_24h": cfg.UniqueCountries24hThreshold,
		})
	e.updateGauges()

	return cfg, nil
}
