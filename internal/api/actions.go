package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

// ActionHandler routes sensitive user mutations through the governance gate.
type ActionHandler struct {
	gate GovernanceGate
	log  *logrus.Logger
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(gate GovernanceGate, log *logrus.Logger) *ActionHandler {
	return &ActionHandler{gate: gate, log: log}
}

// respondManaged writes the outcome of a managed action: 202 when queued for
// approval, 200 when applied immediately, 404 when the target is absent.
func (h *ActionHandler) respondManaged(c *gin.Context, approval *models.ApprovalRequest, result *service.ActionResult, err error) {
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if approval != nil {
		c.JSON(http.StatusAccepted, gin.H{"status": "pending_approval", "approval": approval})
		return
	}

	if result != nil {
		c.JSON(http.StatusOK, gin.H{"status": "applied", "result": result})
		return
	}

	respondError(c, http.StatusNotFound, ErrCodeNotFound, "target not found")
}

// SetActive handles PUT /api/v1/users/:id/active.
func (h *ActionHandler) SetActive(c *gin.Context) {
	var body struct {
		Active  bool   `json:"active"`
		Actor   string `json:"actor"`
		Summary string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleUserActive,
		Target:  c.Param("id"),
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
		Payload: map[string]any{"active": body.Active},
	})
	h.respondManaged(c, approval, result, err)
}

// SetDeviceTrusted handles PUT /api/v1/users/:id/devices/:deviceID/trusted.
func (h *ActionHandler) SetDeviceTrusted(c *gin.Context) {
	var body struct {
		Trusted bool   `json:"trusted"`
		Actor   string `json:"actor"`
		Summary string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionToggleDeviceTrust,
		Target:  c.Param("id"),
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
		Payload: map[string]any{"deviceId": c.Param("deviceID"), "trusted": body.Trusted},
	})
	h.respondManaged(c, approval, result, err)
}

// ForcePasswordReset handles POST /api/v1/users/:id/password-reset.
func (h *ActionHandler) ForcePasswordReset(c *gin.Context) {
	var body struct {
		Actor   string `json:"actor"`
		Summary string `json:"summary"`
	}
	_ = c.ShouldBindJSON(&body) // empty body is fine

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionForcePasswordReset,
		Target:  c.Param("id"),
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
	})
	h.respondManaged(c, approval, result, err)
}

// TriggerReauth handles POST /api/v1/users/:id/reauth.
func (h *ActionHandler) TriggerReauth(c *gin.Context) {
	var body struct {
		Method  string `json:"method"`
		Actor   string `json:"actor"`
		Summary string `json:"summary"`
	}
	_ = c.ShouldBindJSON(&body)

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionTriggerReauth,
		Target:  c.Param("id"),
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
		Payload: map[string]any{"method": body.Method},
	})
	h.respondManaged(c, approval, result, err)
}

// Lockdown handles POST /api/v1/users/:id/lockdown.
func (h *ActionHandler) Lockdown(c *gin.Context) {
	var body struct {
		Actor   string `json:"actor"`
		Summary string `json:"summary"`
	}
	_ = c.ShouldBindJSON(&body)

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionIncidentLockdown,
		Target:  c.Param("id"),
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
	})
	h.respondManaged(c, approval, result, err)
}

// BulkSetActive handles POST /api/v1/users/bulk/active.
func (h *ActionHandler) BulkSetActive(c *gin.Context) {
	var body struct {
		IDs    []string `json:"ids"`
		Active bool     `json:"active"`
		Actor  string   `json:"actor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if len(body.IDs) == 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "ids must not be empty")
		return
	}

	result := h.gate.BulkSetUsersActive(body.IDs, body.Active, actorOrDefault(body.Actor))
	c.JSON(http.StatusOK, result)
}

// BulkForcePasswordReset handles POST /api/v1/users/bulk/password-reset.
func (h *ActionHandler) BulkForcePasswordReset(c *gin.Context) {
	var body struct {
		IDs   []string `json:"ids"`
		Actor string   `json:"actor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if len(body.IDs) == 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "ids must not be empty")
		return
	}

	result := h.gate.BulkForcePasswordReset(body.IDs, actorOrDefault(body.Actor))
	c.JSON(http.StatusOK, result)
}
