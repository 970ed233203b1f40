package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/cephas20k/secops/internal/models"
)

// ApprovalStore owns the approval queue. The pending-to-terminal transition
// happens exactly once, enforced under the store lock.
type ApprovalStore struct {
	mu    sync.Mutex
	seq   int64
	order []*models.ApprovalRequest
	index map[string]*models.ApprovalRequest
}

// NewApprovalStore creates an empty ApprovalStore.
func NewApprovalStore() *ApprovalStore {
	return &ApprovalStore{index: make(map[string]*models.ApprovalRequest)}
}

// Create enqueues a new pending approval with the next monotonic id. The
// payload map is copied so the stored request is a snapshot.
func (s *ApprovalStore) Create(
	kind models.ActionKind, target, summary, requestedBy string,
	payload map[string]any, now time.Time,
) models.ApprovalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	req := models.ApprovalRequest{
		ID:          fmt.Sprintf("apr-%04d", s.seq),
		ActionType:  kind,
		Payload:     clonePayload(payload),
		Target:      target,
		Summary:     summary,
		RequestedBy: requestedBy,
		RequestedAt: now,
		Status:      models.ApprovalPending,
	}

	cp := req
	s.order = append(s.order, &cp)
	s.index[req.ID] = &cp

	return copyApproval(req)
}

// Get returns a copy of the approval, or false if absent.
func (s *ApprovalStore) Get(id string) (models.ApprovalRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.index[id]
	if !ok {
		return models.ApprovalRequest{}, false
	}

	return copyApproval(*req), true
}

// Resolve transitions a pending approval to the given terminal status.
// Returns false if the approval is absent or already terminal; the check and
// the write happen under one lock hold so the transition fires exactly once.
func (s *ApprovalStore) Resolve(
	id string, status models.ApprovalStatus, resolvedBy, resolution string, now time.Time,
) (models.ApprovalRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.index[id]
	if !ok || req.Status != models.ApprovalPending {
		return models.ApprovalRequest{}, false
	}

	req.Status = status
	req.ResolvedAt = &now
	req.ResolvedBy = resolvedBy
	req.Resolution = resolution

	return copyApproval(*req), true
}

// List returns approvals newest-first, optionally filtered by status and
// truncated to limit (no truncation when limit <= 0).
func (s *ApprovalStore) List(status models.ApprovalStatus, limit int) []models.ApprovalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ApprovalRequest, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		req := s.order[i]
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, copyApproval(*req))
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out
}

// PendingCount returns the approval queue depth.
func (s *ApprovalStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, req := range s.order {
		if req.Status == models.ApprovalPending {
			n++
		}
	}

	return n
}

func copyApproval(req models.ApprovalRequest) models.ApprovalRequest {
	req.Payload = clonePayload(req.Payload)
	if req.ResolvedAt != nil {
		t := *req.ResolvedAt
		req.ResolvedAt = &t
	}
	return req
}

func clonePayload(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
