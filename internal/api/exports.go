package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

// ExportHandler serves export schedule and history endpoints.
type ExportHandler struct {
	exports ExportManager
	log     *logrus.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exports ExportManager, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, log: log}
}

// History handles GET /api/v1/exports/history, newest first.
func (h *ExportHandler) History(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50, 500)
	c.JSON(http.StatusOK, gin.H{"data": h.exports.GetExportHistory(limit)})
}

// RecordEvent handles POST /api/v1/exports/events — records a manual export
// performed by an operator, deriving filename and checksum when absent.
func (h *ExportHandler) RecordEvent(c *gin.Context) {
	var body struct {
		Actor    string `json:"actor"`
		Format   string `json:"format"`
		Scope    string `json:"scope"`
		Records  int    `json:"records"`
		Source   string `json:"source"`
		Filename string `json:"filename"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	switch models.ExportFormat(body.Format) {
	case models.FormatCSV, models.FormatPDF:
	default:
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown export format")
		return
	}
	switch models.ExportScope(body.Scope) {
	case models.ScopeUsersOnly, models.ScopeUsersWithRelated:
	default:
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown export scope")
		return
	}

	entry := h.exports.RecordExportEvent(service.ExportEvent{
		Actor:    actorOrDefault(body.Actor),
		Format:   models.ExportFormat(body.Format),
		Scope:    models.ExportScope(body.Scope),
		Records:  body.Records,
		Source:   body.Source,
		Filename: body.Filename,
	})

	c.JSON(http.StatusCreated, entry)
}

// ListSchedules handles GET /api/v1/exports/schedules.
func (h *ExportHandler) ListSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.exports.GetExportSchedules()})
}

// scheduleBody is the create/update payload for an export schedule.
type scheduleBody struct {
	Name      string `json:"name"`
	Scope     string `json:"scope"`
	Format    string `json:"format"`
	Frequency string `json:"frequency"`
	TimeUTC   string `json:"time_utc"`
	DayOfWeek int    `json:"day_of_week"`
	Enabled   bool   `json:"enabled"`
	Actor     string `json:"actor"`
}

func (b scheduleBody) toModel(id string) models.ExportScheduleConfig {
	return models.ExportScheduleConfig{
		ID:        id,
		Name:      b.Name,
		Scope:     models.ExportScope(b.Scope),
		Format:    models.ExportFormat(b.Format),
		Frequency: models.ExportFrequency(b.Frequency),
		TimeUTC:   b.TimeUTC,
		DayOfWeek: b.DayOfWeek,
		Enabled:   b.Enabled,
	}
}

// CreateSchedule handles POST /api/v1/exports/schedules.
func (h *ExportHandler) CreateSchedule(c *gin.Context) {
	var body scheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	saved, err := h.exports.SetExportSchedule(body.toModel(""), actorOrDefault(body.Actor))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// UpdateSchedule handles PUT /api/v1/exports/schedules/:id.
func (h *ExportHandler) UpdateSchedule(c *gin.Context) {
	var body scheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	saved, err := h.exports.SetExportSchedule(body.toModel(c.Param("id")), actorOrDefault(body.Actor))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// RunSchedule handles POST /api/v1/exports/schedules/:id/run — fires a
// schedule immediately regardless of its next due time.
func (h *ExportHandler) RunSchedule(c *gin.Context) {
	var body struct {
		Actor string `json:"actor"`
	}
	_ = c.ShouldBindJSON(&body) // empty body is fine

	entry := h.exports.RunScheduledExportNow(c.Param("id"), actorOrDefault(body.Actor))
	if entry == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "schedule not found")
		return
	}

	c.JSON(http.StatusOK, entry)
}
