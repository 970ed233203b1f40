package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
)

// Governance ledger action tokens.
const (
	actionApprovalRequested = "approval_requested"
	actionApprovalResolved  = "approval_resolved"
)

// ManagedActionRequest is the single entry point payload for sensitive
// mutations routed through the governance gate.
type ManagedActionRequest struct {
	Kind    models.ActionKind
	Target  string
	Summary string
	Actor   string
	Payload map[string]any
}

// ActionResult carries the outcome of an executed (not queued) action.
type ActionResult struct {
	User            *models.User   `json:"user,omitempty"`
	Device          *models.Device `json:"device,omitempty"`
	AffectedDevices int            `json:"affected_devices,omitempty"`
}

// PerformManagedAction executes the requested mutation immediately, or
// queues it as a pending approval when the governance config requires
// approval. The require-approval switch is read fresh on every call, never
// cached. Exactly one of the approval and result returns is non-nil on
// success; a missing target yields (nil, nil, nil).
func (e *Engine) PerformManagedAction(req ManagedActionRequest) (*models.ApprovalRequest, *ActionResult, error) {
	kind, err := models.ParseActionKind(string(req.Kind))
	if err != nil {
		return nil, nil, err
	}
	if req.Target == "" {
		return nil, nil, fmt.Errorf("%w: target is required", models.ErrValidation)
	}

	if e.config.Governance().RequireApproval {
		approval := e.RequestApproval(kind, req.Target, req.Summary, req.Actor, req.Payload)
		return &approval, nil, nil
	}

	result, err := e.executeAction(kind, req.Target, req.Payload, req.Actor)
	if err != nil {
		return nil, nil, err
	}

	return nil, result, nil
}

// RequestApproval enqueues a pending approval and audits the request.
func (e *Engine) RequestApproval(
	kind models.ActionKind, target, summary, requestedBy string, payload map[string]any,
) models.ApprovalRequest {
	approval := e.approvals.Create(kind, target, summary, requestedBy, payload, e.clock.Now())

	e.ledger.Append(models.CategoryAdminAction, actionApprovalRequested, requestedBy, target, models.StatusSuccess,
		map[string]any{"approval_id": approval.ID, "action_type": string(kind), "summary": summary})
	e.updateGauges()
	e.events.Publish("approval.requested", approval)

	e.log.WithFields(logrus.Fields{
		"approval_id": approval.ID,
		"action_type": kind,
		"target":      target,
	}).Info("governance.approval_requested")

	return approval
}

// ResolveApproval transitions a pending approval to its terminal state. A
// missing or already-terminal approval is a safe no-op returning nils; an
// invalid decision is a validation error. Approval dispatches the underlying
// action; every actual resolution appends an audit entry, including failed
// dispatches.
func (e *Engine) ResolveApproval(id, decision, resolvedBy string) (*models.ApprovalRequest, *ActionResult, error) {
	parsed, err := models.ParseApprovalDecision(decision)
	if err != nil {
		return nil, nil, err
	}

	status := models.ApprovalApproved
	resolution := "approved by " + resolvedBy
	if parsed == models.DecisionReject {
		status = models.ApprovalRejected
		resolution = "rejected by " + resolvedBy
	}

	resolved, ok := e.approvals.Resolve(id, status, resolvedBy, resolution, e.clock.Now())
	if !ok {
		return nil, nil, nil
	}

	var (
		result     *ActionResult
		dispatchEr error
	)
	if parsed == models.DecisionApprove {
		result, dispatchEr = e.executeAction(resolved.ActionType, resolved.Target, resolved.Payload, resolvedBy)
	}

	auditStatus := models.StatusSuccess
	details := map[string]any{
		"approval_id": resolved.ID,
		"action_type": string(resolved.ActionType),
		"decision":    string(parsed),
	}
	if parsed == models.DecisionApprove {
		details["applied"] = result != nil
	}
	if dispatchEr != nil {
		auditStatus = models.StatusFailed
		details["error"] = dispatchEr.Error()
	}
	e.ledger.Append(models.CategoryAdminAction, actionApprovalResolved, resolvedBy, resolved.Target, auditStatus, details)
	e.updateGauges()
	e.events.Publish("approval.resolved", resolved)

	e.log.WithFields(logrus.Fields{
		"approval_id": resolved.ID,
		"decision":    parsed,
	}).Info("governance.approval_resolved")

	if dispatchEr != nil {
		return &resolved, nil, dispatchEr
	}

	return &resolved, result, nil
}

// executeAction dispatches an action kind to its executor. The switch is
// exhaustive over the closed kind set; anything else is a configuration
// defect surfaced as ErrUnsupportedAction.
func (e *Engine) executeAction(
	kind models.ActionKind, target string, payload map[string]any, actor string,
) (*ActionResult, error) {
	switch kind {
	case models.ActionToggleUserActive:
		u := e.SetUserActive(target, payloadBool(payload, "active"), actor)
		if u == nil {
			return nil, nil
		}
		return &ActionResult{User: u}, nil

	case models.ActionToggleDeviceTrust:
		d := e.SetDeviceTrusted(target, payloadString(payload, "deviceId"), payloadBool(payload, "trusted"), actor)
		if d == nil {
			return nil, nil
		}
		return &ActionResult{Device: d}, nil

	case models.ActionForcePasswordReset:
		u := e.ForcePasswordReset(target, actor)
		if u == nil {
			return nil, nil
		}
		return &ActionResult{User: u}, nil

	case models.ActionTriggerReauth:
		u := e.TriggerReauthentication(target, payloadString(payload, "method"), actor)
		if u == nil {
			return nil, nil
		}
		return &ActionResult{User: u}, nil

	case models.ActionIncidentLockdown:
		u, affected := e.RunIncidentLockdown(target, actor)
		if u == nil {
			return nil, nil
		}
		return &ActionResult{User: u, AffectedDevices: affected}, nil

	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedAction, kind)
	}
}

func payloadBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func payloadString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}
