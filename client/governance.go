package client

import "context"

// GovernanceService handles governance and alert-rule policy.
type GovernanceService struct {
	c *Client
}

// Get returns the current governance configuration.
func (s *GovernanceService) Get(ctx context.Context) (*GovernanceConfig, error) {
	var resp GovernanceConfig
	if err := s.c.get(ctx, "/api/v1/governance", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Set updates the governance configuration. Takes effect for every
// managed action submitted after the call returns.
func (s *GovernanceService) Set(ctx context.Context, requireApproval bool, actor string) (*GovernanceConfig, error) {
	body := map[string]any{"require_approval": requireApproval, "actor": actor}
	var resp GovernanceConfig
	if err := s.c.put(ctx, "/api/v1/governance", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AlertRules returns the current alert rule thresholds.
func (s *GovernanceService) AlertRules(ctx context.Context) (*AlertRuleConfig, error) {
	var resp AlertRuleConfig
	if err := s.c.get(ctx, "/api/v1/alert-rules", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetAlertRules replaces the alert rule thresholds.
func (s *GovernanceService) SetAlertRules(ctx context.Context, rules *AlertRuleConfig, actor string) (*AlertRuleConfig, error) {
	body := struct {
		AlertRuleConfig
		Actor string `json:"actor"`
	}{AlertRuleConfig: *rules, Actor: actor}
	var resp AlertRuleConfig
	if err := s.c.put(ctx, "/api/v1/alert-rules", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
