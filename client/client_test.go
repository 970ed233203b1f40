package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	// ServeMux method patterns ("GET /path") need Go 1.22; dispatch on
	// method by hand so the same routing works on older toolchains.
	byPath := map[string]map[string]http.HandlerFunc{}
	for pattern, handler := range routes {
		method, path, ok := strings.Cut(pattern, " ")
		if !ok {
			t.Fatalf("bad route pattern %q", pattern)
		}
		if byPath[path] == nil {
			byPath[path] = map[string]http.HandlerFunc{}
		}
		byPath[path][method] = handler
	}
	mux := http.NewServeMux()
	for path, methods := range byPath {
		methods := methods
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if handler, ok := methods[r.Method]; ok {
				handler(w, r)
				return
			}
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithToken("test-admin-token"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "0.3.0", LedgerEntries: 420})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.LedgerEntries != 420 {
		t.Errorf("got ledger entries %d, want 420", resp.LedgerEntries)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			jsonResponse(w, 200, HealthResponse{Status: "ok"})
		},
	})
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if gotAuth != "Bearer test-admin-token" {
		t.Errorf("got Authorization %q, want bearer token", gotAuth)
	}
}

func TestUsersList(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/users": func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("q"); q != "nadia" {
				t.Errorf("got q=%q, want nadia", q)
			}
			jsonResponse(w, 200, Page[User]{
				Items:    []User{{ID: "usr-1", Username: "nadia", Active: true}},
				Page:     1,
				PageSize: 20,
				Total:    1,
			})
		},
	})
	page, err := c.Users.List(context.Background(), &ListOptions{Query: "nadia"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "usr-1" {
		t.Errorf("got items %+v", page.Items)
	}
}

func TestUsersDevicesAndTimeline(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/usr-1/devices": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Page[Device]{Items: []Device{{ID: "dev-1", Trusted: true}}, Total: 1})
		},
		"GET /api/v1/users/usr-1/timeline": func(w http.ResponseWriter, r *http.Request) {
			if limit := r.URL.Query().Get("limit"); limit != "5" {
				t.Errorf("got limit=%q, want 5", limit)
			}
			jsonResponse(w, 200, map[string]any{
				"data": []AuditEntry{{ID: "aud-1", Category: "admin_action", Target: "usr-1"}},
			})
		},
	})

	ctx := context.Background()

	devices, err := c.Users.Devices(ctx, "usr-1", nil)
	if err != nil {
		t.Fatalf("Devices error: %v", err)
	}
	if len(devices.Items) != 1 || !devices.Items[0].Trusted {
		t.Errorf("got devices %+v", devices.Items)
	}

	timeline, err := c.Users.Timeline(ctx, "usr-1", 5)
	if err != nil {
		t.Fatalf("Timeline error: %v", err)
	}
	if len(timeline) != 1 || timeline[0].Target != "usr-1" {
		t.Errorf("got timeline %+v", timeline)
	}
}

func TestActionApplied(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PUT /api/v1/users/usr-1/active": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req["active"] != false {
				t.Errorf("got active=%v, want false", req["active"])
			}
			jsonResponse(w, 200, ActionOutcome{
				Status: "applied",
				Result: &ActionResult{User: &User{ID: "usr-1", Active: false, StepUpRequired: true}},
			})
		},
	})
	out, err := c.Actions.SetActive(context.Background(), "usr-1", false, "admin")
	if err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if out.Status != "applied" || out.Result == nil || out.Result.User.Active {
		t.Errorf("got outcome %+v", out)
	}
}

func TestActionPendingApproval(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/users/usr-1/lockdown": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 202, ActionOutcome{
				Status:   "pending_approval",
				Approval: &ApprovalRequest{ID: "apr-1", ActionType: "incident_lockdown", Status: "pending"},
			})
		},
	})
	out, err := c.Actions.Lockdown(context.Background(), "usr-1", "admin")
	if err != nil {
		t.Fatalf("Lockdown error: %v", err)
	}
	if out.Status != "pending_approval" || out.Approval == nil || out.Approval.ID != "apr-1" {
		t.Errorf("got outcome %+v", out)
	}
}

func TestBulkSetActive(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/users/bulk/active": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if ids, ok := req["ids"].([]any); !ok || len(ids) != 2 {
				t.Errorf("got ids=%v, want 2 entries", req["ids"])
			}
			jsonResponse(w, 200, BulkResult{Requested: 2, Updated: 2})
		},
	})
	res, err := c.Actions.BulkSetActive(context.Background(), []string{"usr-1", "usr-2"}, true, "admin")
	if err != nil {
		t.Fatalf("BulkSetActive error: %v", err)
	}
	if res.Requested != 2 || res.Updated != 2 {
		t.Errorf("got result %+v", res)
	}
}

func TestApprovalsWorkflow(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/approvals": func(w http.ResponseWriter, r *http.Request) {
			if status := r.URL.Query().Get("status"); status != "pending" {
				t.Errorf("got status=%q, want pending", status)
			}
			jsonResponse(w, 200, map[string]any{
				"data": []ApprovalRequest{{ID: "apr-1", Status: "pending"}},
			})
		},
		"POST /api/v1/approvals/apr-1/resolve": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req["decision"] != "approve" {
				t.Errorf("got decision=%v, want approve", req["decision"])
			}
			jsonResponse(w, 200, ResolveOutcome{
				Approval: &ApprovalRequest{ID: "apr-1", Status: "approved", ResolvedBy: "lead"},
				Result:   &ActionResult{User: &User{ID: "usr-1", Active: false}},
			})
		},
	})

	ctx := context.Background()

	approvals, err := c.Approvals.List(ctx, "pending", 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(approvals) != 1 || approvals[0].ID != "apr-1" {
		t.Errorf("got approvals %+v", approvals)
	}

	out, err := c.Approvals.Resolve(ctx, "apr-1", "approve", "lead")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if out.Approval.Status != "approved" || out.Result == nil {
		t.Errorf("got outcome %+v", out)
	}
}

func TestAuditQuery(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/audit": func(w http.ResponseWriter, r *http.Request) {
			if cat := r.URL.Query().Get("category"); cat != "login_attempt" {
				t.Errorf("got category=%q, want login_attempt", cat)
			}
			jsonResponse(w, 200, map[string]any{
				"data": []AuditEntry{{ID: "aud-1", Category: "login_attempt", Status: "failed"}},
			})
		},
	})
	entries, err := c.Audit.Query(context.Background(), "login_attempt", 0)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != "failed" {
		t.Errorf("got entries %+v", entries)
	}
}

func TestExportSchedules(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/exports/schedules": func(w http.ResponseWriter, r *http.Request) {
			var req ScheduleRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 201, ExportSchedule{
				ID: "sch-1", Name: req.Name, Frequency: req.Frequency, Enabled: req.Enabled,
			})
		},
		"POST /api/v1/exports/schedules/sch-1/run": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, ExportHistoryEntry{ID: "exp-1", Source: "scheduled", Records: 4})
		},
		"GET /api/v1/exports/history": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{
				"data": []ExportHistoryEntry{{ID: "exp-1", Filename: "nightly-users_only-2026-03-15.csv"}},
			})
		},
	})

	ctx := context.Background()

	sched, err := c.Exports.CreateSchedule(ctx, &ScheduleRequest{
		Name: "Nightly", Scope: "users_only", Format: "csv",
		Frequency: "daily", TimeUTC: "02:00", Enabled: true, Actor: "admin",
	})
	if err != nil {
		t.Fatalf("CreateSchedule error: %v", err)
	}
	if sched.ID != "sch-1" || sched.Name != "Nightly" {
		t.Errorf("got schedule %+v", sched)
	}

	run, err := c.Exports.RunSchedule(ctx, "sch-1", "admin")
	if err != nil {
		t.Fatalf("RunSchedule error: %v", err)
	}
	if run.Records != 4 {
		t.Errorf("got run %+v", run)
	}

	history, err := c.Exports.History(ctx, 0)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("got history %+v", history)
	}
}

func TestGovernance(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PUT /api/v1/governance": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 200, GovernanceConfig{RequireApproval: req["require_approval"] == true})
		},
		"GET /api/v1/alert-rules": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, AlertRuleConfig{Enabled: true, HighRiskThreshold: 80})
		},
	})

	ctx := context.Background()

	cfg, err := c.Governance.Set(ctx, true, "admin")
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !cfg.RequireApproval {
		t.Errorf("got require_approval=false, want true")
	}

	rules, err := c.Governance.AlertRules(ctx)
	if err != nil {
		t.Fatalf("AlertRules error: %v", err)
	}
	if rules.HighRiskThreshold != 80 {
		t.Errorf("got threshold %d, want 80", rules.HighRiskThreshold)
	}
}

func TestAPIErrorParsing(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/missing/timeline": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "message": "user not found"})
		},
	})
	_, err := c.Users.Timeline(context.Background(), "missing", 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.Code != "not_found" {
		t.Errorf("got code %q, want not_found", apiErr.Code)
	}
}
