package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/config"
	"github.com/cephas20k/secops/internal/middleware"
	"github.com/cephas20k/secops/internal/security"
	"github.com/cephas20k/secops/internal/service"
	"github.com/cephas20k/secops/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Engine      *service.Engine
	Hub         *ws.Hub
	AdminToken  config.Secret
	CORSOrigins []string
	Version     string
	EnableWS    bool
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; largest payload is a bulk id list
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware(deps.Engine))

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log
	eng := deps.Engine

	health := NewHealthHandler(eng, deps.Hub, log, deps.Version)
	dashboard := NewDashboardHandler(eng, log)
	users := NewUserHandler(eng, log)
	actions := NewActionHandler(eng, log)
	audit := NewAuditHandler(eng, log)
	approvals := NewApprovalHandler(eng, log)
	governance := NewGovernanceHandler(eng, log)
	exports := NewExportHandler(eng, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication. Failed attempts feed the
	// brute-force guard and the login-attempt ledger.
	bfGuard := security.NewBruteForceGuard(ctx, log)
	api.Use(middleware.AuthMiddleware(deps.AdminToken, log, bfGuard, eng))

	// Dashboard.
	api.GET("/dashboard", dashboard.Snapshot)

	// Users.
	api.GET("/users", users.List)
	api.GET("/users/:id/devices", users.ListDevices)
	api.GET("/users/:id/timeline", users.Timeline)

	// Managed actions.
	api.PUT("/users/:id/active", actions.SetActive)
	api.POST("/users/bulk/active", actions.BulkSetActive)
	api.PUT("/users/:id/devices/:deviceID/trusted", actions.SetDeviceTrusted)
	api.POST("/users/:id/password-reset", actions.ForcePasswordReset)
	api.POST("/users/bulk/password-reset", actions.BulkForcePasswordReset)
	api.POST("/users/:id/reauth", actions.TriggerReauth)
	api.POST("/users/:id/lockdown", actions.Lockdown)

	// Audit ledger.
	api.GET("/audit", audit.Query)

	// Approvals.
	api.GET("/approvals", approvals.List)
	api.POST("/approvals", approvals.Request)
	api.POST("/approvals/:id/resolve", approvals.Resolve)

	// Governance and alerting policy.
	api.GET("/governance", governance.GetGovernance)
	api.PUT("/governance", governance.SetGovernance)
	api.GET("/alert-rules", governance.GetAlertRules)
	api.PUT("/alert-rules", governance.SetAlertRules)

	// Exports.
	api.GET("/exports/history", exports.History)
	api.POST("/exports/events", exports.RecordEvent)
	api.GET("/exports/schedules", exports.ListSchedules)
	api.POST("/exports/schedules", exports.CreateSchedule)
	api.PUT("/exports/schedules/:id", exports.UpdateSchedule)
	api.POST("/exports/schedules/:id/run", exports.RunSchedule)

	// WebSocket endpoint.
	if deps.EnableWS {
		api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
