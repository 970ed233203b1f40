// Package service implements the security-operations engine: governance over
// admin actions, dashboard snapshot assembly, export scheduling, and the
// ingestion surface consumed by external collaborators.
package service

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/clock"
	"github.com/cephas20k/secops/internal/ledger"
	"github.com/cephas20k/secops/internal/metrics"
	"github.com/cephas20k/secops/internal/store"
)

// EventSink receives engine events for live dashboard streaming.
type EventSink interface {
	Publish(eventType string, data any)
}

// NopSink discards events; used when streaming is disabled and in tests.
type NopSink struct{}

// Publish discards the event.
func (NopSink) Publish(string, any) {}

// Engine owns every mutable collection of the core and exposes the query,
// mutation, and ingestion surfaces. Construct one per process (or per test);
// nothing here is package-level state.
type Engine struct {
	// sweepMu serializes due-schedule sweeps so a due trigger fires at
	// most one export run even under concurrent snapshot requests.
	sweepMu sync.Mutex

	log        *logrus.Logger
	clock      clock.Clock
	ledger     *ledger.Ledger
	users      *store.UserStore
	approvals  *store.ApprovalStore
	schedules  *store.ScheduleStore
	history    *store.ExportHistoryStore
	apiMetrics *store.MetricStore
	config     *store.ConfigStore
	events     EventSink
}

// EngineDeps configures a new Engine.
type EngineDeps struct {
	Log             *logrus.Logger
	Clock           clock.Clock
	Events          EventSink
	RequireApproval bool
}

// NewEngine creates an Engine with empty collections.
func NewEngine(deps EngineDeps) *Engine {
	if deps.Log == nil {
		deps.Log = logrus.New()
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Events == nil {
		deps.Events = NopSink{}
	}

	return &Engine{
		log:        deps.Log,
		clock:      deps.Clock,
		ledger:     ledger.New(deps.Clock),
		users:      store.NewUserStore(),
		approvals:  store.NewApprovalStore(),
		schedules:  store.NewScheduleStore(),
		history:    store.NewExportHistoryStore(),
		apiMetrics: store.NewMetricStore(),
		config:     store.NewConfigStore(deps.RequireApproval),
		events:     deps.Events,
	}
}

// Users exposes the user store for seeding and tests.
func (e *Engine) Users() *store.UserStore { return e.users }

// Ledger exposes the audit ledger for seeding and tests.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

// updateGauges refreshes the Prometheus engine gauges after a mutation.
func (e *Engine) updateGauges() {
	metrics.ApprovalQueueDepth.Set(float64(e.approvals.PendingCount()))
	metrics.LedgerEntries.Set(float64(e.ledger.Len()))
}
