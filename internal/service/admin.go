package service

import (
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
)

// Ledger action tokens for admin mutations.
const (
	actionUserActivated    = "user_activated"
	actionUserDeactivated  = "user_deactivated"
	actionDeviceTrusted    = "device_trusted"
	actionDeviceUntrusted  = "device_untrusted"
	actionPasswordReset    = "password_reset_forced"
	actionReauthTriggered  = "reauth_triggered"
	actionIncidentLockdown = "incident_lockdown"
	actionBulkUserActive   = "bulk_user_active"
	actionBulkReset        = "bulk_password_reset"
)

// Re-authentication methods accepted by TriggerReauthentication.
const (
	ReauthOTP      = "otp"
	ReauthWebAuthn = "webauthn"
)

// BulkResult reports how a bulk operation fanned out. Requested minus
// Updated minus Queued is the number of ids that matched nothing.
type BulkResult struct {
	Requested int `json:"requested"`
	Updated   int `json:"updated"`
	Queued    int `json:"queued"`
}

// SetUserActive activates or deactivates a user. Deactivation forces step-up
// on next sign-in. Returns nil if the user does not exist.
func (e *Engine) SetUserActive(id string, active bool, actor string) *models.User {
	u, ok := e.users.SetActive(id, active)
	if !ok {
		return nil
	}

	action := actionUserActivated
	if !active {
		action = actionUserDeactivated
	}
	e.ledger.Append(models.CategoryAdminAction, action, actor, id, models.StatusSuccess,
		map[string]any{"username": u.Username, "active": active})
	e.updateGauges()

	e.log.WithFields(logrus.Fields{"user_id": id, "active": active, "actor": actor}).Info("admin.user_active")

	return &u
}

// SetDeviceTrusted toggles a device's trust flag and refreshes its lastSeen.
// Returns nil if the user or device does not exist.
func (e *Engine) SetDeviceTrusted(userID, deviceID string, trusted bool, actor string) *models.Device {
	d, ok := e.users.SetDeviceTrusted(userID, deviceID, trusted, e.clock.Now())
	if !ok {
		return nil
	}

	action := actionDeviceTrusted
	if !trusted {
		action = actionDeviceUntrusted
	}
	e.ledger.Append(models.CategoryAdminAction, action, actor, userID, models.StatusSuccess,
		map[string]any{"device_id": deviceID, "trusted": trusted})
	e.updateGauges()

	return &d
}

// ForcePasswordReset flags the user for a password reset and step-up.
// Returns nil if the user does not exist.
func (e *Engine) ForcePasswordReset(id, actor string) *models.User {
	u, ok := e.users.ForcePasswordReset(id)
	if !ok {
		return nil
	}

	e.ledger.Append(models.CategoryAdminAction, actionPasswordReset, actor, id, models.StatusSuccess,
		map[string]any{"username": u.Username})
	e.updateGauges()

	return &u
}

// TriggerReauthentication forces step-up re-authentication via the given
// method. An unrecognized method is a no-op returning nil, not an error, and
// a missing user likewise returns nil.
func (e *Engine) TriggerReauthentication(id, method, actor string) *models.User {
	if method != ReauthOTP && method != ReauthWebAuthn {
		return nil
	}

	u, ok := e.users.SetStepUpRequired(id)
	if !ok {
		return nil
	}

	e.ledger.Append(models.CategoryAdminAction, actionReauthTriggered, actor, id, models.StatusSuccess,
		map[string]any{"method": method})
	e.updateGauges()

	return &u
}

// RunIncidentLockdown deactivates the user, forces reset and step-up,
// untrusts all devices, and records the affected device count. Returns nil
// and zero if the user does not exist.
func (e *Engine) RunIncidentLockdown(id, actor string) (*models.User, int) {
	u, affected, ok := e.users.Lockdown(id, e.clock.Now())
	if !ok {
		return nil, 0
	}

	e.ledger.Append(models.CategoryAdminAction, actionIncidentLockdown, actor, id, models.StatusSuccess,
		map[string]any{"username": u.Username, "affectedDevices": affected})
	e.updateGauges()

	e.log.WithFields(logrus.Fields{
		"user_id":          id,
		"affected_devices": affected,
		"actor":            actor,
	}).Warn("admin.incident_lockdown")

	return &u, affected
}

// BulkSetUsersActive applies SetUserActive across ids through the governance
// gate: when approval is required each id is queued instead of executed. One
// summary audit entry records requested vs applied counts so partial
// failures stay visible.
func (e *Engine) BulkSetUsersActive(ids []string, active bool, actor string) BulkResult {
	res := BulkResult{Requested: len(ids)}
	for _, id := range ids {
		approval, result, err := e.PerformManagedAction(ManagedActionRequest{
			Kind:    models.ActionToggleUserActive,
			Target:  id,
			Summary: bulkSummary("set active", id, active),
			Actor:   actor,
			Payload: map[string]any{"active": active},
		})
		if err != nil {
			continue
		}
		if approval != nil {
			res.Queued++
		} else if result != nil && result.User != nil {
			res.Updated++
		}
	}

	e.ledger.Append(models.CategoryAdminAction, actionBulkUserActive, actor, "", models.StatusSuccess,
		map[string]any{"requested": res.Requested, "updated": res.Updated, "queued": res.Queued, "active": active})
	e.updateGauges()

	return res
}

// BulkForcePasswordReset applies ForcePasswordReset across ids through the
// governance gate, recording requested vs applied counts.
func (e *Engine) BulkForcePasswordReset(ids []string, actor string) BulkResult {
	res := BulkResult{Requested: len(ids)}
	for _, id := range ids {
		approval, result, err := e.PerformManagedAction(ManagedActionRequest{
			Kind:    models.ActionForcePasswordReset,
			Target:  id,
			Summary: "force password reset for " + id,
			Actor:   actor,
		})
		if err != nil {
			continue
		}
		if approval != nil {
			res.Queued++
		} else if result != nil && result.User != nil {
			res.Updated++
		}
	}

	e.ledger.Append(models.CategoryAdminAction, actionBulkReset, actor, "", models.StatusSuccess,
		map[string]any{"requested": res.Requested, "updated": res.Updated, "queued": res.Queued})
	e.updateGauges()

	return res
}

func bulkSummary(verb, id string, active bool) string {
	if active {
		return verb + " (enable) for " + id
	}
	return verb + " (disable) for " + id
}
