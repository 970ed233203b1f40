package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardHandler serves the aggregate dashboard snapshot.
type DashboardHandler struct {
	provider DashboardProvider
	log      *logrus.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(provider DashboardProvider, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{provider: provider, log: log}
}

// Snapshot handles GET /api/v1/dashboard. The range_days parameter bounds
// the trend windows; out-of-range values clamp inside the aggregator.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range_days", "30"))

	snapshot := h.provider.GetDashboardSnapshot(rangeDays, actorOrDefault(c.Query("username")), c.Query("role"))

	c.JSON(http.StatusOK, snapshot)
}
