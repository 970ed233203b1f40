package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cephas20k/secops/internal/api"
)

func newApprovalRouter(requireApproval bool) *gin.Engine {
	eng := newTestEngine(requireApproval)
	h := api.NewApprovalHandler(eng, testLogger())

	r := gin.New()
	r.GET("/approvals", h.List)
	r.POST("/approvals", h.Request)
	r.POST("/approvals/:id/resolve", h.Resolve)
	return r
}

func requestApproval(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/approvals",
		`{"action_type":"toggle_user_active","target":"usr-1","summary":"disable usr-1","actor":"ops","payload":{"active":false}}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Approval struct {
			ID string `json:"id"`
		} `json:"approval"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Approval.ID == "" {
		t.Fatal("expected approval id")
	}
	return resp.Approval.ID
}

func TestApprovals_RequestAndApprove(t *testing.T) {
	t.Parallel()

	r := newApprovalRouter(true)
	id := requestApproval(t, r)

	w := doRequest(r, http.MethodPost, "/approvals/"+id+"/resolve", `{"decision":"approve","resolved_by":"lead"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Approval struct {
			Status     string `json:"status"`
			ResolvedBy string `json:"resolved_by"`
		} `json:"approval"`
		Result struct {
			User struct {
				Active bool `json:"active"`
			} `json:"user"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.Approval.Status != "approved" {
		t.Errorf("expected approved, got %q", resp.Approval.Status)
	}
	if resp.Approval.ResolvedBy != "lead" {
		t.Errorf("expected resolved_by lead, got %q", resp.Approval.ResolvedBy)
	}
	if resp.Result.User.Active {
		t.Error("expected approval to deactivate the target user")
	}
}

func TestApprovals_ResolveIsExactlyOnce(t *testing.T) {
	t.Parallel()

	r := newApprovalRouter(true)
	id := requestApproval(t, r)

	w := doRequest(r, http.MethodPost, "/approvals/"+id+"/resolve", `{"decision":"reject","resolved_by":"lead"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("first resolve: expected 200, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/approvals/"+id+"/resolve", `{"decision":"approve","resolved_by":"lead"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second resolve: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApprovals_InvalidDecision(t *testing.T) {
	t.Parallel()

	r := newApprovalRouter(true)
	id := requestApproval(t, r)

	w := doRequest(r, http.MethodPost, "/approvals/"+id+"/resolve", `{"decision":"maybe"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApprovals_ListFiltersByStatus(t *testing.T) {
	t.Parallel()

	r := newApprovalRouter(true)
	requestApproval(t, r)

	w := doRequest(r, http.MethodGet, "/approvals?status=pending", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Status != "pending" {
		t.Errorf("unexpected list result: %+v", resp.Data)
	}

	w = doRequest(r, http.MethodGet, "/approvals?status=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestApprovals_UnknownActionType(t *testing.T) {
	t.Parallel()

	r := newApprovalRouter(true)

	w := doRequest(r, http.MethodPost, "/approvals", `{"action_type":"rm_rf","target":"usr-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
