package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
)

// AuditHandler serves audit ledger endpoints.
type AuditHandler struct {
	reader AuditReader
	log    *logrus.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(reader AuditReader, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{reader: reader, log: log}
}

// Query handles GET /api/v1/audit. An empty category returns all entries.
func (h *AuditHandler) Query(c *gin.Context) {
	category := models.AuditCategory(c.Query("category"))
	switch category {
	case "", models.CategoryLoginAttempt, models.CategoryOTP, models.CategoryAdminAction, models.CategoryAccount:
	default:
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown audit category")
		return
	}

	limit := parseLimit(c.Query("limit"), 120, 1000)

	entries := h.reader.GetAuditLogs(category, limit)
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
