package api

import (
	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
	"github.com/cephas20k/secops/internal/view"
)

// DashboardProvider defines the aggregate snapshot operation used by DashboardHandler.
type DashboardProvider interface {
	GetDashboardSnapshot(rangeDays int, adminUsername, adminRole string) models.DashboardSnapshot
}

// UserDirectory defines user listing operations used by UserHandler.
type UserDirectory interface {
	QueryUsers(opts view.Options) view.Page[models.User]
	QueryUserDevices(userID string, opts view.Options) *view.Page[models.Device]
	GetUserTimeline(userID string, limit int) []models.AuditEntry
}

// AuditReader defines ledger query operations used by AuditHandler.
type AuditReader interface {
	GetAuditLogs(category models.AuditCategory, limit int) []models.AuditEntry
}

// GovernanceGate defines the managed-action and approval operations used by
// ActionHandler and ApprovalHandler.
type GovernanceGate interface {
	PerformManagedAction(req service.ManagedActionRequest) (*models.ApprovalRequest, *service.ActionResult, error)
	ResolveApproval(id, decision, resolvedBy string) (*models.ApprovalRequest, *service.ActionResult, error)
	GetApprovals(status models.ApprovalStatus, limit int) []models.ApprovalRequest
	BulkSetUsersActive(ids []string, active bool, actor string) service.BulkResult
	BulkForcePasswordReset(ids []string, actor string) service.BulkResult
}

// PolicyStore defines governance and alert-rule configuration operations
// used by GovernanceHandler.
type PolicyStore interface {
	GetGovernanceConfig() models.GovernanceConfig
	SetGovernanceConfig(cfg models.GovernanceConfig, actor string) models.GovernanceConfig
	GetAlertRules() models.AlertRuleConfig
	SetAlertRules(cfg models.AlertRuleConfig, actor string) (models.AlertRuleConfig, error)
}

// ExportManager defines export scheduling and history operations used by ExportHandler.
type ExportManager interface {
	SetExportSchedule(sched models.ExportScheduleConfig, actor string) (models.ExportScheduleConfig, error)
	RunScheduledExportNow(id, actor string) *models.ExportHistoryEntry
	RecordExportEvent(ev service.ExportEvent) models.ExportHistoryEntry
	GetExportSchedules() []models.ExportScheduleConfig
	GetExportHistory(limit int) []models.ExportHistoryEntry
}
