package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cephas20k/secops/internal/api"
)

func newActionRouter(requireApproval bool) *gin.Engine {
	eng := newTestEngine(requireApproval)
	h := api.NewActionHandler(eng, testLogger())

	r := gin.New()
	r.PUT("/users/:id/active", h.SetActive)
	r.PUT("/users/:id/devices/:deviceID/trusted", h.SetDeviceTrusted)
	r.POST("/users/:id/lockdown", h.Lockdown)
	r.POST("/users/bulk/active", h.BulkSetActive)
	return r
}

func TestSetActive_AppliedWhenGateOff(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPut, "/users/usr-1/active", `{"active":false,"actor":"ops"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Result struct {
			User struct {
				Active         bool `json:"active"`
				StepUpRequired bool `json:"step_up_required"`
			} `json:"user"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Status != "applied" {
		t.Errorf("expected status applied, got %q", resp.Status)
	}
	if resp.Result.User.Active {
		t.Error("expected user deactivated")
	}
	if !resp.Result.User.StepUpRequired {
		t.Error("expected deactivation to force step-up")
	}
}

func TestSetActive_QueuedWhenGateOn(t *testing.T) {
	t.Parallel()

	r := newActionRouter(true)

	w := doRequest(r, http.MethodPut, "/users/usr-1/active", `{"active":false}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status   string `json:"status"`
		Approval struct {
			ID         string `json:"id"`
			ActionType string `json:"action_type"`
			Status     string `json:"status"`
		} `json:"approval"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Status != "pending_approval" {
		t.Errorf("expected status pending_approval, got %q", resp.Status)
	}
	if resp.Approval.ActionType != "toggle_user_active" {
		t.Errorf("unexpected action type %q", resp.Approval.ActionType)
	}
	if resp.Approval.Status != "pending" {
		t.Errorf("expected pending approval, got %q", resp.Approval.Status)
	}
}

func TestSetActive_UnknownTarget(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPut, "/users/usr-404/active", `{"active":false}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetDeviceTrusted_Applied(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPut, "/users/usr-1/devices/dev-2/trusted", `{"trusted":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			Device struct {
				ID      string `json:"id"`
				Trusted bool   `json:"trusted"`
			} `json:"device"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Result.Device.ID != "dev-2" || !resp.Result.Device.Trusted {
		t.Errorf("unexpected device result: %+v", resp.Result.Device)
	}
}

func TestLockdown_ReportsAffectedDevices(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPost, "/users/usr-1/lockdown", `{"actor":"ops"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			AffectedDevices int `json:"affected_devices"`
			User            struct {
				Active bool `json:"active"`
			} `json:"user"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Result.AffectedDevices != 2 {
		t.Errorf("expected 2 affected devices, got %d", resp.Result.AffectedDevices)
	}
	if resp.Result.User.Active {
		t.Error("expected lockdown to deactivate the user")
	}
}

func TestBulkSetActive_CountsMissingIDs(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPost, "/users/bulk/active", `{"ids":["usr-1","usr-404","usr-2"],"active":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Requested int `json:"requested"`
		Updated   int `json:"updated"`
		Queued    int `json:"queued"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Requested != 3 || resp.Updated != 2 || resp.Queued != 0 {
		t.Errorf("unexpected bulk result: %+v", resp)
	}
}

func TestBulkSetActive_EmptyIDs(t *testing.T) {
	t.Parallel()

	r := newActionRouter(false)

	w := doRequest(r, http.MethodPost, "/users/bulk/active", `{"ids":[],"active":false}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
