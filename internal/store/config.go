package store

import (
	"sync"

	"github.com/cephas20k/secops/internal/models"
)

// ConfigStore owns the process-wide governance switch and alert rule
// thresholds. Explicit instance state, never a package-level singleton, so
// tests construct isolated engines.
type ConfigStore struct {
	mu         sync.Mutex
	governance models.GovernanceConfig
	alertRules models.AlertRuleConfig
}

// NewConfigStore creates a ConfigStore with the given initial governance
// switch and default alert rules.
func NewConfigStore(requireApproval bool) *ConfigStore {
	return &ConfigStore{
		governance: models.GovernanceConfig{RequireApproval: requireApproval},
		alertRules: models.DefaultAlertRules(),
	}
}

// Governance returns the current governance config. Managed actions call
// this fresh on every invocation; the value is never cached.
func (s *ConfigStore) Governance() models.GovernanceConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.governance
}

// SetGovernance replaces the governance config.
func (s *ConfigStore) SetGovernance(cfg models.GovernanceConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.governance = cfg
}

// AlertRules returns the current alert rule thresholds.
func (s *ConfigStore) AlertRules() models.AlertRuleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.alertRules
}

// SetAlertRules replaces the alert rule thresholds.
func (s *ConfigStore) SetAlertRules(cfg models.AlertRuleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alertRules = cfg
}
