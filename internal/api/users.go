package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler serves the monitored-user directory endpoints.
type UserHandler struct {
	directory UserDirectory
	log       *logrus.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(directory UserDirectory, log *logrus.Logger) *UserHandler {
	return &UserHandler{directory: directory, log: log}
}

// List handles GET /api/v1/users with search, sort, and pagination.
func (h *UserHandler) List(c *gin.Context) {
	page := h.directory.QueryUsers(viewOptions(c))
	c.JSON(http.StatusOK, page)
}

// ListDevices handles GET /api/v1/users/:id/devices.
func (h *UserHandler) ListDevices(c *gin.Context) {
	page := h.directory.QueryUserDevices(c.Param("id"), viewOptions(c))
	if page == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Timeline handles GET /api/v1/users/:id/timeline — the ledger slice
// involving the user as target or actor, newest first.
func (h *UserHandler) Timeline(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 120, 1000)

	entries := h.directory.GetUserTimeline(c.Param("id"), limit)
	if entries == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
