package models

import "time"

// ExportScope controls how much related detail an export includes.
type ExportScope string

// Export scopes.
const (
	ScopeUsersOnly        ExportScope = "users_only"
	ScopeUsersWithRelated ExportScope = "users_with_related"
)

// ExportFormat is the output file format of an export.
type ExportFormat string

// Export formats.
const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportFrequency is how often a scheduled export recurs.
type ExportFrequency string

// Export frequencies.
const (
	FrequencyDaily  ExportFrequency = "daily"
	FrequencyWeekly ExportFrequency = "weekly"
)

// ExportScheduleConfig describes a recurring export job. NextRunAt is
// derived state: recomputed whenever the schedule is enabled, edited, or
// executed, and always nil while the schedule is disabled.
type ExportScheduleConfig struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Scope     ExportScope     `json:"scope"`
	Format    ExportFormat    `json:"format"`
	Frequency ExportFrequency `json:"frequency"`
	TimeUTC   string          `json:"time_utc"`
	DayOfWeek int             `json:"day_of_week"` // 0 = Sunday, weekly only
	Enabled   bool            `json:"enabled"`
	LastRunAt *time.Time      `json:"last_run_at,omitempty"`
	NextRunAt *time.Time      `json:"next_run_at,omitempty"`
}

// Clone returns a copy with its own time pointers.
func (s ExportScheduleConfig) Clone() ExportScheduleConfig {
	cp := s
	if s.LastRunAt != nil {
		t := *s.LastRunAt
		cp.LastRunAt = &t
	}
	if s.NextRunAt != nil {
		t := *s.NextRunAt
		cp.NextRunAt = &t
	}
	return cp
}

// ExportHistoryEntry is an immutable record of a completed export. Checksum
// and filename are identity hints, not security proofs.
type ExportHistoryEntry struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Actor     string       `json:"actor"`
	Format    ExportFormat `json:"format"`
	Scope     ExportScope  `json:"scope"`
	Records   int          `json:"records"`
	Source    string       `json:"source"`
	Filename  string       `json:"filename"`
	Checksum  string       `json:"checksum"`
}
