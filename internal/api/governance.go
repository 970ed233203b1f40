package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
)

// GovernanceHandler serves governance and alert-rule policy endpoints.
type GovernanceHandler struct {
	policy PolicyStore
	log    *logrus.Logger
}

// NewGovernanceHandler creates a GovernanceHandler.
func NewGovernanceHandler(policy PolicyStore, log *logrus.Logger) *GovernanceHandler {
	return &GovernanceHandler{policy: policy, log: log}
}

// GetGovernance handles GET /api/v1/governance.
func (h *GovernanceHandler) GetGovernance(c *gin.Context) {
	c.JSON(http.StatusOK, h.policy.GetGovernanceConfig())
}

// SetGovernance handles PUT /api/v1/governance. Takes effect for every
// managed action submitted after this call returns.
func (h *GovernanceHandler) SetGovernance(c *gin.Context) {
	var body struct {
		RequireApproval bool   `json:"require_approval"`
		Actor           string `json:"actor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	saved := h.policy.SetGovernanceConfig(models.GovernanceConfig{RequireApproval: body.RequireApproval}, actorOrDefault(body.Actor))
	c.JSON(http.StatusOK, saved)
}

// GetAlertRules handles GET /api/v1/alert-rules.
func (h *GovernanceHandler) GetAlertRules(c *gin.Context) {
	c.JSON(http.StatusOK, h.policy.GetAlertRules())
}

// SetAlertRules handles PUT /api/v1/alert-rules.
func (h *GovernanceHandler) SetAlertRules(c *gin.Context) {
	var body struct {
		models.AlertRuleConfig
		Actor string `json:"actor"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	saved, err := h.policy.SetAlertRules(body.AlertRuleConfig, actorOrDefault(body.Actor))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
