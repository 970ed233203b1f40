package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/metrics"
	"github.com/cephas20k/secops/internal/models"
)

// Export ledger action tokens.
const (
	actionExportCompleted = "export_completed"
	actionScheduleUpdated = "export_schedule_updated"
)

// fallback fire time when a schedule's timeUtc is malformed.
const (
	fallbackHour   = 8
	fallbackMinute = 0
)

// checksumHexLen truncates the content checksum; it is an identity hint,
// not a security proof.
const checksumHexLen = 16

// ComputeNextRunAt returns the next instant strictly after from at which the
// schedule should fire. Daily schedules fire at timeUtc today or tomorrow;
// weekly schedules on the next occurrence of dayOfWeek (0 = Sunday).
func ComputeNextRunAt(sched models.ExportScheduleConfig, from time.Time) time.Time {
	hour, minute := parseTimeUTC(sched.TimeUTC)
	day := from.UTC()

	if sched.Frequency == models.FrequencyWeekly {
		diff := (sched.DayOfWeek - int(day.Weekday()) + 7) % 7
		candidate := time.Date(day.Year(), day.Month(), day.Day()+diff, hour, minute, 0, 0, time.UTC)
		if !candidate.After(from) {
			candidate = candidate.AddDate(0, 0, 7)
		}
		return candidate
	}

	candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
	if !candidate.After(from) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// parseTimeUTC accepts "H:MM" or "HH:MM"; anything else falls back to 08:00.
func parseTimeUTC(s string) (hour, minute int) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return fallbackHour, fallbackMinute
	}

	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return fallbackHour, fallbackMinute
	}

	return h, m
}

// SetExportSchedule creates or updates a schedule. NextRunAt is derived
// state: recomputed on every enable or edit, nil while disabled.
func (e *Engine) SetExportSchedule(sched models.ExportScheduleConfig, actor string) (models.ExportScheduleConfig, error) {
	if err := validateSchedule(sched); err != nil {
		return models.ExportScheduleConfig{}, err
	}

	if sched.Enabled {
		next := ComputeNextRunAt(sched, e.clock.Now())
		sched.NextRunAt = &next
	} else {
		sched.NextRunAt = nil
	}

	saved := e.schedules.Upsert(sched)

	e.ledger.Append(models.CategoryAdminAction, actionScheduleUpdated, actor, saved.ID, models.StatusSuccess,
		map[string]any{"name": saved.Name, "frequency": string(saved.Frequency), "enabled": saved.Enabled})
	e.updateGauges()

	return saved, nil
}

func validateSchedule(sched models.ExportScheduleConfig) error {
	if strings.TrimSpace(sched.Name) == "" {
		return fmt.Errorf("%w: schedule name is required", models.ErrValidation)
	}
	switch sched.Scope {
	case models.ScopeUsersOnly, models.ScopeUsersWithRelated:
	default:
		return fmt.Errorf("%w: invalid scope %q", models.ErrValidation, sched.Scope)
	}
	switch sched.Format {
	case models.FormatCSV, models.FormatPDF:
	default:
		return fmt.Errorf("%w: invalid format %q", models.ErrValidation, sched.Format)
	}
	switch sched.Frequency {
	case models.FrequencyDaily:
	case models.FrequencyWeekly:
		if sched.DayOfWeek < 0 || sched.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week must be in [0,6]", models.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: invalid frequency %q", models.ErrValidation, sched.Frequency)
	}
	return nil
}

// ProcessDueScheduledExports runs every enabled schedule whose nextRunAt has
// passed, then advances nextRunAt from the execution instant. A schedule
// with no nextRunAt only gets the field seeded and waits for the next sweep;
// no run fires on the seeding pass. Called before every dashboard snapshot,
// so time advances on reads rather than via a background timer.
func (e *Engine) ProcessDueScheduledExports(now time.Time) int {
	e.sweepMu.Lock()
	defer e.sweepMu.Unlock()

	fired := 0
	for _, sched := range e.schedules.List() {
		if !sched.Enabled {
			continue
		}

		if sched.NextRunAt == nil {
			next := ComputeNextRunAt(sched, now)
			e.schedules.Mutate(sched.ID, func(s *models.ExportScheduleConfig) {
				s.NextRunAt = &next
			})
			continue
		}

		if sched.NextRunAt.After(now) {
			continue
		}

		e.runScheduledExport(sched, now, "scheduler")
		next := ComputeNextRunAt(sched, now)
		e.schedules.Mutate(sched.ID, func(s *models.ExportScheduleConfig) {
			ran := now
			s.LastRunAt = &ran
			s.NextRunAt = &next
		})
		fired++
	}

	return fired
}

// RunScheduledExportNow executes a schedule immediately regardless of its
// nextRunAt, advancing the schedule as if it had fired on time. Returns nil
// if the schedule does not exist.
func (e *Engine) RunScheduledExportNow(id, actor string) *models.ExportHistoryEntry {
	sched, ok := e.schedules.Get(id)
	if !ok {
		return nil
	}

	now := e.clock.Now()
	entry := e.runScheduledExport(sched, now, actor)
	e.schedules.Mutate(id, func(s *models.ExportScheduleConfig) {
		ran := now
		s.LastRunAt = &ran
		if s.Enabled {
			next := ComputeNextRunAt(sched, now)
			s.NextRunAt = &next
		}
	})

	return &entry
}

func (e *Engine) runScheduledExport(sched models.ExportScheduleConfig, now time.Time, actor string) models.ExportHistoryEntry {
	records := e.users.Count()
	if sched.Scope == models.ScopeUsersWithRelated {
		records += e.users.DeviceCount()
	}

	// The sweep's instant governs the history timestamp too, so the recorded
	// run and the schedule advance agree.
	entry := e.RecordExportEvent(ExportEvent{
		Actor:   actor,
		Format:  sched.Format,
		Scope:   sched.Scope,
		Records: records,
		Source:  sched.Name,
		At:      now,
	})

	e.log.WithFields(logrus.Fields{
		"schedule_id": sched.ID,
		"records":     records,
		"format":      sched.Format,
	}).Info("export.run")

	return entry
}

// ExportEvent describes a completed export to be recorded. Filename and
// Checksum are derived when absent. At pins the recorded instant; when zero
// the engine clock is read instead.
type ExportEvent struct {
	Actor    string
	Format   models.ExportFormat
	Scope    models.ExportScope
	Records  int
	Source   string
	Filename string
	Checksum string
	At       time.Time
}

// RecordExportEvent records an export in history and the ledger, deriving
// the filename and checksum when the caller did not supply them.
func (e *Engine) RecordExportEvent(ev ExportEvent) models.ExportHistoryEntry {
	now := ev.At
	if now.IsZero() {
		now = e.clock.Now()
	}

	if ev.Filename == "" {
		ev.Filename = deriveFilename(ev.Source, ev.Scope, ev.Format, now)
	}
	if ev.Checksum == "" {
		ev.Checksum = deriveChecksum(ev, now)
	}

	entry := models.ExportHistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: now,
		Actor:     ev.Actor,
		Format:    ev.Format,
		Scope:     ev.Scope,
		Records:   ev.Records,
		Source:    ev.Source,
		Filename:  ev.Filename,
		Checksum:  ev.Checksum,
	}

	e.history.Prepend(entry)
	e.ledger.AppendAt(now, models.CategoryAdminAction, actionExportCompleted, ev.Actor, ev.Source, models.StatusSuccess,
		map[string]any{
			"format":   string(ev.Format),
			"scope":    string(ev.Scope),
			"records":  ev.Records,
			"filename": ev.Filename,
			"checksum": ev.Checksum,
		})
	e.updateGauges()
	metrics.ExportRunsTotal.WithLabelValues(string(ev.Format)).Inc()
	e.events.Publish("export.completed", entry)

	return entry
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// deriveFilename builds "{source}-{scope}-{date}.{format}" with
// non-alphanumeric source characters collapsed to hyphens.
func deriveFilename(source string, scope models.ExportScope, format models.ExportFormat, now time.Time) string {
	slug := strings.Trim(nonAlphanumeric.ReplaceAllString(source, "-"), "-")
	if slug == "" {
		slug = "export"
	}
	return fmt.Sprintf("%s-%s-%s.%s", slug, scope, now.UTC().Format("2006-01-02"), format)
}

// deriveChecksum hashes the identifying fields of an export event and
// truncates to 16 hex characters.
func deriveChecksum(ev ExportEvent, now time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%s|%s|%d|%s|%s",
		now.UnixMilli(), ev.Format, ev.Scope, ev.Records, ev.Source, ev.Filename))
	return hex.EncodeToString(sum[:])[:checksumHexLen]
}

// GetExportSchedules returns all schedules.
func (e *Engine) GetExportSchedules() []models.ExportScheduleConfig {
	return e.schedules.List()
}

// GetExportHistory returns up to limit history entries, newest first.
func (e *Engine) GetExportHistory(limit int) []models.ExportHistoryEntry {
	return e.history.List(limit)
}
