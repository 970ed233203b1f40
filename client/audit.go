package client

import (
	"context"
	"net/url"
	"strconv"
)

// AuditService reads the append-only audit ledger.
type AuditService struct {
	c *Client
}

// Query returns ledger entries newest first, optionally filtered by
// category ("login_attempt", "otp", "admin_action", "account").
func (s *AuditService) Query(ctx context.Context, category string, limit int) ([]AuditEntry, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Data []AuditEntry `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/audit", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
