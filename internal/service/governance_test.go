package service_test

import (
	"errors"
	"testing"

	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

func TestPerformManagedAction_GateOff_AppliesImmediately(t *testing.T) {
	eng, _ := newTestEngine(false)

	approval, result, err := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  "usr-1",
		Actor:   "admin",
		Payload: map[string]any{"active": false},
	})
	if err != nil {
		t.Fatalf("PerformManagedAction error: %v", err)
	}
	if approval != nil {
		t.Fatalf("expected no approval with gate off, got %+v", approval)
	}
	if result == nil || result.User == nil {
		t.Fatalf("expected applied result, got %+v", result)
	}
	if result.User.Active {
		t.Error("user should be inactive")
	}
	if !result.User.StepUpRequired {
		t.Error("deactivation should force step-up")
	}

	entry, ok := lastLedgerEntry(eng, models.CategoryAdminAction)
	if !ok {
		t.Fatal("expected an admin_action ledger entry")
	}
	if entry.Action != "user_deactivated" || entry.Target != "usr-1" {
		t.Errorf("got ledger entry %s on %s", entry.Action, entry.Target)
	}
}

func TestPerformManagedAction_GateOn_Queues(t *testing.T) {
	eng, _ := newTestEngine(true)

	approval, result, err := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  "usr-1",
		Summary: "deactivate for incident review",
		Actor:   "admin",
		Payload: map[string]any{"active": false},
	})
	if err != nil {
		t.Fatalf("PerformManagedAction error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result with gate on, got %+v", result)
	}
	if approval == nil {
		t.Fatal("expected a queued approval")
	}
	if approval.Status != models.ApprovalPending {
		t.Errorf("got status %q, want pending", approval.Status)
	}
	if approval.RequestedAt != testNow {
		t.Errorf("got requested_at %v, want %v", approval.RequestedAt, testNow)
	}

	// Target untouched while the approval is pending.
	u, _ := eng.Users().Get("usr-1")
	if !u.Active {
		t.Error("user should remain active until approved")
	}

	pending := eng.GetApprovals(models.ApprovalPending, 0)
	if len(pending) != 1 {
		t.Errorf("got %d pending approvals, want 1", len(pending))
	}
}

func TestPerformManagedAction_Validation(t *testing.T) {
	eng, _ := newTestEngine(false)

	tests := []struct {
		name string
		req  service.ManagedActionRequest
	}{
		{"unknown kind", service.ManagedActionRequest{Kind: "detonate", Target: "usr-1"}},
		{"empty kind", service.ManagedActionRequest{Target: "usr-1"}},
		{"empty target", service.ManagedActionRequest{Kind: models.ActionTriggerReauth}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := eng.PerformManagedAction(tc.req)
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestPerformManagedAction_UnknownTarget(t *testing.T) {
	eng, _ := newTestEngine(false)

	approval, result, err := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionForcePasswordReset,
		Target:  "usr-ghost",
		Actor:   "admin",
	})
	if err != nil || approval != nil || result != nil {
		t.Errorf("missing target should yield all nils, got (%v, %v, %v)", approval, result, err)
	}
}

func TestGovernanceGateReadFreshPerCall(t *testing.T) {
	eng, _ := newTestEngine(false)

	req := service.ManagedActionRequest{
		Kind:    models.ActionForcePasswordReset,
		Target:  "usr-2",
		Actor:   "admin",
	}

	_, result, err := eng.PerformManagedAction(req)
	if err != nil || result == nil {
		t.Fatalf("gate off: expected applied result, got (%v, %v)", result, err)
	}

	eng.SetGovernanceConfig(models.GovernanceConfig{RequireApproval: true}, "admin")

	approval, result, err := eng.PerformManagedAction(req)
	if err != nil {
		t.Fatalf("PerformManagedAction error: %v", err)
	}
	if approval == nil || result != nil {
		t.Errorf("gate on: expected queued approval, got (%v, %v)", approval, result)
	}
}

func TestResolveApproval_ApproveExecutes(t *testing.T) {
	eng, _ := newTestEngine(true)

	queued, _, err := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  "usr-1",
		Actor:   "admin",
		Payload: map[string]any{"active": false},
	})
	if err != nil {
		t.Fatalf("queue error: %v", err)
	}

	approval, result, err := eng.ResolveApproval(queued.ID, "approve", "lead")
	if err != nil {
		t.Fatalf("ResolveApproval error: %v", err)
	}
	if approval == nil || approval.Status != models.ApprovalApproved {
		t.Fatalf("got approval %+v, want approved", approval)
	}
	if approval.ResolvedBy != "lead" {
		t.Errorf("got resolved_by %q, want lead", approval.ResolvedBy)
	}
	if approval.ResolvedAt == nil || !approval.ResolvedAt.Equal(testNow) {
		t.Errorf("got resolved_at %v, want %v", approval.ResolvedAt, testNow)
	}
	if result == nil || result.User == nil || result.User.Active {
		t.Errorf("approval should have deactivated the user, got %+v", result)
	}

	u, _ := eng.Users().Get("usr-1")
	if u.Active {
		t.Error("store should reflect the executed action")
	}
}

func TestResolveApproval_RejectSkipsExecution(t *testing.T) {
	eng, _ := newTestEngine(true)

	queued, _, _ := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  "usr-1",
		Actor:   "admin",
		Payload: map[string]any{"active": false},
	})

	approval, result, err := eng.ResolveApproval(queued.ID, "reject", "lead")
	if err != nil {
		t.Fatalf("ResolveApproval error: %v", err)
	}
	if approval == nil || approval.Status != models.ApprovalRejected {
		t.Fatalf("got approval %+v, want rejected", approval)
	}
	if result != nil {
		t.Errorf("rejection must not execute; got result %+v", result)
	}

	u, _ := eng.Users().Get("usr-1")
	if !u.Active {
		t.Error("rejected action must not mutate the target")
	}
}

func TestResolveApproval_ExactlyOnce(t *testing.T) {
	eng, _ := newTestEngine(true)

	queued, _, _ := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionForcePasswordReset,
		Target:  "usr-2",
		Actor:   "admin",
	})

	if approval, _, _ := eng.ResolveApproval(queued.ID, "reject", "lead"); approval == nil {
		t.Fatal("first resolution should succeed")
	}
	approval, result, err := eng.ResolveApproval(queued.ID, "approve", "lead")
	if approval != nil || result != nil || err != nil {
		t.Errorf("second resolution should be a no-op, got (%v, %v, %v)", approval, result, err)
	}
}

func TestResolveApproval_InvalidDecision(t *testing.T) {
	eng, _ := newTestEngine(true)

	queued, _, _ := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionForcePasswordReset,
		Target:  "usr-2",
		Actor:   "admin",
	})

	_, _, err := eng.ResolveApproval(queued.ID, "maybe", "lead")
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}

	// The approval survives the bad decision.
	pending := eng.GetApprovals(models.ApprovalPending, 0)
	if len(pending) != 1 {
		t.Errorf("got %d pending approvals, want 1", len(pending))
	}
}

func TestResolveApproval_MissingID(t *testing.T) {
	eng, _ := newTestEngine(true)

	approval, result, err := eng.ResolveApproval("apr-ghost", "approve", "lead")
	if approval != nil || result != nil || err != nil {
		t.Errorf("unknown id should be a no-op, got (%v, %v, %v)", approval, result, err)
	}
}

func TestResolveApproval_VanishedTargetAudited(t *testing.T) {
	eng, _ := newTestEngine(true)

	// Queue an action against a target that never existed; validation only
	// checks the target is non-empty, so the payload snapshot queues fine.
	queued, _, err := eng.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  "usr-ghost",
		Actor:   "admin",
		Payload: map[string]any{"active": false},
	})
	if err != nil {
		t.Fatalf("queue error: %v", err)
	}

	approval, result, err := eng.ResolveApproval(queued.ID, "approve", "lead")
	if err != nil {
		t.Fatalf("ResolveApproval error: %v", err)
	}
	if approval == nil || approval.Status != models.ApprovalApproved {
		t.Fatalf("resolution still happens for a vanished target, got %+v", approval)
	}
	if result != nil {
		t.Errorf("nothing to apply; got result %+v", result)
	}

	entry, ok := lastLedgerEntry(eng, models.CategoryAdminAction)
	if !ok || entry.Action != "approval_resolved" {
		t.Fatalf("expected approval_resolved entry, got %+v", entry)
	}
	if applied, _ := entry.Details["applied"].(bool); applied {
		t.Error("audit entry should record applied=false for a vanished target")
	}
}
