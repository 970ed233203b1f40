package models

// AlertRuleConfig is the process-wide alert rule thresholds, read by every
// analytics pass and mutated only through an explicit admin update.
type AlertRuleConfig struct {
	Enabled                     bool `json:"enabled"`
	FailedLogins15mThreshold    int  `json:"failed_logins_15m_threshold"`
	HighRiskThreshold           int  `json:"high_risk_threshold"`
	UniqueCountries24hThreshold int  `json:"unique_countries_24h_threshold"`
}

// DefaultAlertRules returns the thresholds used until an admin overrides them.
func DefaultAlertRules() AlertRuleConfig {
	return AlertRuleConfig{
		Enabled:                     true,
		FailedLogins15mThreshold:    5,
		HighRiskThreshold:           80,
		UniqueCountries24hThreshold: 3,
	}
}

// Validate checks threshold ranges.
func (c AlertRuleConfig) Validate() error {
	if c.FailedLogins15mThreshold < 1 {
		return validationf("failed_logins_15m_threshold must be >= 1")
	}
	if c.HighRiskThreshold < 1 || c.HighRiskThreshold > 100 {
		return validationf("high_risk_threshold must be in [1,100]")
	}
	if c.UniqueCountries24hThreshold < 1 {
		return validationf("unique_countries_24h_threshold must be >= 1")
	}
	return nil
}

// Alert is one triggered alert condition from an analytics pass. Alerts are
// recomputed fresh on every pass and never deduplicated across calls.
type Alert struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
