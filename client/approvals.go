package client

import (
	"context"
	"net/url"
	"strconv"
)

// ApprovalService handles the approval workflow.
type ApprovalService struct {
	c *Client
}

// ActionRequest submits a managed action through the generic approvals
// endpoint instead of a resource-specific route.
type ActionRequest struct {
	ActionType string         `json:"action_type"`
	Target     string         `json:"target"`
	Summary    string         `json:"summary"`
	Actor      string         `json:"actor"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// List returns approval requests, optionally filtered by status
// ("pending", "approved", "rejected"; empty returns all).
func (s *ApprovalService) List(ctx context.Context, status string, limit int) ([]ApprovalRequest, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Data []ApprovalRequest `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/approvals", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Request submits a managed action through the governance gate.
func (s *ApprovalService) Request(ctx context.Context, req *ActionRequest) (*ActionOutcome, error) {
	var resp ActionOutcome
	if err := s.c.post(ctx, "/api/v1/approvals", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resolve approves or rejects a pending approval. Decision must be
// "approve" or "reject". Resolution is exactly-once: resolving an absent
// or already-resolved approval returns a not-found error.
func (s *ApprovalService) Resolve(ctx context.Context, id, decision, resolvedBy string) (*ResolveOutcome, error) {
	body := map[string]any{"decision": decision, "resolved_by": resolvedBy}
	var resp ResolveOutcome
	if err := s.c.post(ctx, "/api/v1/approvals/"+url.PathEscape(id)+"/resolve", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
