package service_test

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/clock"
	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// newTestEngine builds a memory-resident engine with a fixed clock and two
// seeded users. requireApproval controls the governance gate.
func newTestEngine(requireApproval bool) (*service.Engine, *clock.Fixed) {
	clk := &clock.Fixed{T: testNow}
	eng := service.NewEngine(service.EngineDeps{
		Log:             testLogger(),
		Clock:           clk,
		RequireApproval: requireApproval,
	})

	eng.Users().Put(models.User{
		ID:        "usr-1",
		Username:  "nadia",
		Email:     "nadia@example.com",
		CreatedAt: testNow.AddDate(0, -3, 0),
		LastLogin: testNow.Add(-2 * time.Hour),
		Geo:       "Lagos, NG",
		Active:    true,
		Devices: []models.Device{
			{ID: "dev-1", Label: "Pixel 8", Platform: "android", Trusted: true, LastSeen: testNow.Add(-time.Hour)},
			{ID: "dev-2", Label: "ThinkPad", Platform: "linux", Trusted: false, LastSeen: testNow.Add(-26 * time.Hour)},
		},
	})
	eng.Users().Put(models.User{
		ID:        "usr-2",
		Username:  "tomas",
		Email:     "tomas@example.com",
		CreatedAt: testNow.AddDate(0, -1, 0),
		LastLogin: testNow.Add(-30 * time.Hour),
		Geo:       "Porto, PT",
		Active:    true,
	})

	return eng, clk
}

// lastLedgerEntry returns the newest ledger entry in a category.
func lastLedgerEntry(eng *service.Engine, category models.AuditCategory) (models.AuditEntry, bool) {
	entries := eng.Ledger().Query(category, 1)
	if len(entries) == 0 {
		return models.AuditEntry{}, false
	}
	return entries[0], true
}
