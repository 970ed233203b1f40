package client

import (
	"context"
	"net/url"
	"strconv"
)

// ExportService handles export schedules, manual export events, and history.
type ExportService struct {
	c *Client
}

// ExportEvent describes a manual export to record. Filename and checksum
// are derived server-side when absent.
type ExportEvent struct {
	Actor    string `json:"actor"`
	Format   string `json:"format"`
	Scope    string `json:"scope"`
	Records  int    `json:"records"`
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
}

// ScheduleRequest is the create/update payload for an export schedule.
type ScheduleRequest struct {
	Name      string `json:"name"`
	Scope     string `json:"scope"`
	Format    string `json:"format"`
	Frequency string `json:"frequency"`
	TimeUTC   string `json:"time_utc"`
	DayOfWeek int    `json:"day_of_week"`
	Enabled   bool   `json:"enabled"`
	Actor     string `json:"actor"`
}

// History returns completed exports, newest first.
func (s *ExportService) History(ctx context.Context, limit int) ([]ExportHistoryEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Data []ExportHistoryEntry `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/exports/history", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RecordEvent records a manual export performed by an operator.
func (s *ExportService) RecordEvent(ctx context.Context, ev *ExportEvent) (*ExportHistoryEntry, error) {
	var resp ExportHistoryEntry
	if err := s.c.post(ctx, "/api/v1/exports/events", ev, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Schedules returns all configured export schedules.
func (s *ExportService) Schedules(ctx context.Context) ([]ExportSchedule, error) {
	var resp struct {
		Data []ExportSchedule `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/exports/schedules", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateSchedule registers a new recurring export.
func (s *ExportService) CreateSchedule(ctx context.Context, req *ScheduleRequest) (*ExportSchedule, error) {
	var resp ExportSchedule
	if err := s.c.post(ctx, "/api/v1/exports/schedules", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSchedule replaces an existing schedule's configuration.
func (s *ExportService) UpdateSchedule(ctx context.Context, id string, req *ScheduleRequest) (*ExportSchedule, error) {
	var resp ExportSchedule
	if err := s.c.put(ctx, "/api/v1/exports/schedules/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunSchedule fires a schedule immediately regardless of its due time.
func (s *ExportService) RunSchedule(ctx context.Context, id, actor string) (*ExportHistoryEntry, error) {
	body := map[string]any{"actor": actor}
	var resp ExportHistoryEntry
	if err := s.c.post(ctx, "/api/v1/exports/schedules/"+url.PathEscape(id)+"/run", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
