package models

import (
	"fmt"
	"time"
)

// ActionKind is the closed set of managed admin actions. Dispatch over this
// type is exhaustive; an unrecognized kind reaching the executor is a
// configuration defect, not expected input.
type ActionKind string

// Managed action kinds.
const (
	ActionToggleUserActive   ActionKind = "toggle_user_active"
	ActionToggleDeviceTrust  ActionKind = "toggle_device_trust"
	ActionForcePasswordReset ActionKind = "force_password_reset"
	ActionTriggerReauth      ActionKind = "trigger_reauth"
	ActionIncidentLockdown   ActionKind = "incident_lockdown"
)

// ParseActionKind validates a string against the closed action set.
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case ActionToggleUserActive, ActionToggleDeviceTrust, ActionForcePasswordReset,
		ActionTriggerReauth, ActionIncidentLockdown:
		return ActionKind(s), nil
	case "":
		return "", fmt.Errorf("%w: action type is required", ErrValidation)
	default:
		return "", fmt.Errorf("%w: unknown action type %q", ErrValidation, s)
	}
}

// ApprovalStatus is the lifecycle state of an approval request.
type ApprovalStatus string

// Approval statuses. Approved and rejected are terminal.
const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalDecision is the caller-supplied verdict on a pending approval.
type ApprovalDecision string

// Valid decisions.
const (
	DecisionApprove ApprovalDecision = "approve"
	DecisionReject  ApprovalDecision = "reject"
)

// ParseApprovalDecision validates a decision string.
func ParseApprovalDecision(s string) (ApprovalDecision, error) {
	switch ApprovalDecision(s) {
	case DecisionApprove, DecisionReject:
		return ApprovalDecision(s), nil
	default:
		return "", fmt.Errorf("%w: decision must be approve or reject, got %q", ErrValidation, s)
	}
}

// ApprovalRequest is a queued managed action awaiting resolution. Payload is
// a snapshot taken at request time; later entity mutations do not change it.
type ApprovalRequest struct {
	ID          string         `json:"id"`
	ActionType  ActionKind     `json:"action_type"`
	Payload     map[string]any `json:"payload"`
	Target      string         `json:"target"`
	Summary     string         `json:"summary"`
	RequestedBy string         `json:"requested_by"`
	RequestedAt time.Time      `json:"requested_at"`
	Status      ApprovalStatus `json:"status"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	ResolvedBy  string         `json:"resolved_by,omitempty"`
	Resolution  string         `json:"resolution,omitempty"`
}

// GovernanceConfig is the process-wide approval gate switch.
type GovernanceConfig struct {
	RequireApproval bool `json:"require_approval"`
}
