package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

// ApprovalHandler serves the approval workflow endpoints.
type ApprovalHandler struct {
	gate GovernanceGate
	log  *logrus.Logger
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler(gate GovernanceGate, log *logrus.Logger) *ApprovalHandler {
	return &ApprovalHandler{gate: gate, log: log}
}

// List handles GET /api/v1/approvals. An empty status returns all requests.
func (h *ApprovalHandler) List(c *gin.Context) {
	status := models.ApprovalStatus(c.Query("status"))
	switch status {
	case "", models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown approval status")
		return
	}

	limit := parseLimit(c.Query("limit"), 50, 500)

	c.JSON(http.StatusOK, gin.H{"data": h.gate.GetApprovals(status, limit)})
}

// Request handles POST /api/v1/approvals — submits an action through the
// governance gate, queuing it when approval is required.
func (h *ApprovalHandler) Request(c *gin.Context) {
	var body struct {
		ActionType string         `json:"action_type"`
		Target     string         `json:"target"`
		Summary    string         `json:"summary"`
		Actor      string         `json:"actor"`
		Payload    map[string]any `json:"payload"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	approval, result, err := h.gate.PerformManagedAction(service.ManagedActionRequest{
		Kind:    models.ActionKind(body.ActionType),
		Target:  body.Target,
		Summary: body.Summary,
		Actor:   actorOrDefault(body.Actor),
		Payload: body.Payload,
	})
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

// Resolve handles POST /api/v1/approvals/:id/resolve. Resolving an absent or
// already-resolved approval returns 404; resolution is exactly-once.
func (h *ApprovalHandler) Resolve(c *gin.Context) {
	var body struct {
		Decision   string `json:"decision"`
		ResolvedBy string `json:"resolved_by"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	approval, result, err := h.gate.ResolveApproval(c.Param("id"), body.Decision, actorOrDefault(body.ResolvedBy))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if approval == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "approval not found or already resolved")
		return
	}

	resp := gin.H{"approval": approval}
	if result != nil {
		resp["result"] = result
	}

	c.JSON(http.StatusOK, resp)
}
