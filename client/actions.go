package client

import (
	"context"
	"net/url"
)

// ActionService submits managed admin actions. Every call returns an
// ActionOutcome whose Status tells whether the action was applied
// immediately or queued behind the approval gate.
type ActionService struct {
	c *Client
}

// SetActive activates or deactivates a user.
func (s *ActionService) SetActive(ctx context.Context, userID string, active bool, actor string) (*ActionOutcome, error) {
	body := map[string]any{"active": active, "actor": actor}
	var resp ActionOutcome
	if err := s.c.put(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/active", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetDeviceTrusted marks one of the user's devices trusted or untrusted.
func (s *ActionService) SetDeviceTrusted(ctx context.Context, userID, deviceID string, trusted bool, actor string) (*ActionOutcome, error) {
	body := map[string]any{"trusted": trusted, "actor": actor}
	path := "/api/v1/users/" + url.PathEscape(userID) + "/devices/" + url.PathEscape(deviceID) + "/trusted"
	var resp ActionOutcome
	if err := s.c.put(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForcePasswordReset flags the user for a forced password reset.
func (s *ActionService) ForcePasswordReset(ctx context.Context, userID, actor string) (*ActionOutcome, error) {
	body := map[string]any{"actor": actor}
	var resp ActionOutcome
	if err := s.c.post(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/password-reset", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TriggerReauth requires the user to re-authenticate with the given method.
func (s *ActionService) TriggerReauth(ctx context.Context, userID, method, actor string) (*ActionOutcome, error) {
	body := map[string]any{"method": method, "actor": actor}
	var resp ActionOutcome
	if err := s.c.post(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/reauth", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Lockdown deactivates the user and untrusts every device in one step.
func (s *ActionService) Lockdown(ctx context.Context, userID, actor string) (*ActionOutcome, error) {
	body := map[string]any{"actor": actor}
	var resp ActionOutcome
	if err := s.c.post(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/lockdown", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkSetActive applies an active toggle across many users at once.
func (s *ActionService) BulkSetActive(ctx context.Context, ids []string, active bool, actor string) (*BulkResult, error) {
	body := map[string]any{"ids": ids, "active": active, "actor": actor}
	var resp BulkResult
	if err := s.c.post(ctx, "/api/v1/users/bulk/active", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkForcePasswordReset flags many users for password reset at once.
func (s *ActionService) BulkForcePasswordReset(ctx context.Context, ids []string, actor string) (*BulkResult, error) {
	body := map[string]any{"ids": ids, "actor": actor}
	var resp BulkResult
	if err := s.c.post(ctx, "/api/v1/users/bulk/password-reset", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
