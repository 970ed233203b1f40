// Package seed populates a fresh engine with deterministic demo data for
// local dashboard development.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/models"
	"github.com/cephas20k/secops/internal/service"
)

// demoSeed fixes the generator so repeated runs produce the same dataset.
const demoSeed = 42

var demoGeos = []string{
	"Lagos, NG", "Nairobi, KE", "Accra, GH", "Cairo, EG",
	"London, GB", "Berlin, DE", "Austin, US", "Toronto, CA",
	"Mumbai, IN", "Singapore, SG",
}

var demoPlatforms = []string{"android", "ios", "windows", "macos", "linux"}

var demoNames = []string{
	"amara", "bayo", "chidi", "dalia", "emeka", "farida", "goran", "hana",
	"idris", "jara", "kofi", "lena", "musa", "nadia", "obi", "priya",
	"quincy", "rana", "sefu", "tausi",
}

// Apply loads users, devices, a month of login history, and a default export
// schedule into the engine. now anchors the backdated history.
func Apply(eng *service.Engine, now time.Time, log *logrus.Logger) {
	rng := rand.New(rand.NewSource(demoSeed)) //nolint:gosec // demo data, not crypto

	users := seedUsers(eng, rng, now)
	entries := seedLoginHistory(eng, rng, now, users)
	seedSchedules(eng)

	log.WithFields(logrus.Fields{
		"users":   len(users),
		"entries": entries,
	}).Info("seed.demo_data_loaded")
}

func seedUsers(eng *service.Engine, rng *rand.Rand, now time.Time) []models.User {
	users := make([]models.User, 0, len(demoNames))

	for i, name := range demoNames {
		geo := demoGeos[rng.Intn(len(demoGeos))]
		createdDaysAgo := 30 + rng.Intn(330)

		u := models.User{
			ID:             fmt.Sprintf("usr-%03d", i+1),
			Username:       name,
			Email:          name + "@example.com",
			CreatedAt:      now.AddDate(0, 0, -createdDaysAgo),
			LastLogin:      now.Add(-time.Duration(rng.Intn(72)) * time.Hour),
			Geo:            geo,
			Active:         rng.Intn(10) > 0, // roughly one in ten deactivated
			RiskScore:      rng.Intn(100),
			LoginAnomalies: rng.Intn(5),
		}

		deviceCount := 1 + rng.Intn(3)
		for d := 0; d < deviceCount; d++ {
			u.Devices = append(u.Devices, models.Device{
				ID:        fmt.Sprintf("%s-dev-%d", u.ID, d+1),
				Label:     fmt.Sprintf("%s device %d", name, d+1),
				Platform:  demoPlatforms[rng.Intn(len(demoPlatforms))],
				Trusted:   rng.Intn(3) > 0,
				LastSeen:  now.Add(-time.Duration(rng.Intn(96)) * time.Hour),
				IPAddress: randomIP(rng),
				Geo:       geo,
			})
		}

		if u.LoginAnomalies >= 3 {
			u.AnomalyTags = []string{"velocity", "new_geo"}
		}

		eng.Users().Put(u)
		users = append(users, u)
	}

	return users
}

// seedLoginHistory backfills a month of login attempts so the risk and
// traffic trends have data on first load.
func seedLoginHistory(eng *service.Engine, rng *rand.Rand, now time.Time, users []models.User) int {
	entries := 0

	for day := 29; day >= 0; day-- {
		attempts := 8 + rng.Intn(16)
		for i := 0; i < attempts; i++ {
			u := users[rng.Intn(len(users))]
			ts := now.AddDate(0, 0, -day).Add(-time.Duration(rng.Intn(20)) * time.Hour)
			success := rng.Intn(100) >= 22 // ~22% failure rate

			status := models.StatusSuccess
			if !success {
				status = models.StatusFailed
			}

			eng.Ledger().AppendAt(ts, models.CategoryLoginAttempt, "admin_login", u.Username, "", status,
				map[string]any{"ip": randomIP(rng), "geo": u.Geo})
			entries++
		}
	}

	return entries
}

func seedSchedules(eng *service.Engine) {
	// Errors only arise from invalid input; this input is fixed.
	_, _ = eng.SetExportSchedule(models.ExportScheduleConfig{
		Name:      "Nightly user roster",
		Scope:     models.ScopeUsersOnly,
		Format:    models.FormatCSV,
		Frequency: models.FrequencyDaily,
		TimeUTC:   "02:00",
		Enabled:   true,
	}, "system")

	_, _ = eng.SetExportSchedule(models.ExportScheduleConfig{
		Name:      "Weekly full export",
		Scope:     models.ScopeUsersWithRelated,
		Format:    models.FormatPDF,
		Frequency: models.FrequencyWeekly,
		TimeUTC:   "06:30",
		DayOfWeek: 1,
		Enabled:   true,
	}, "system")
}

func randomIP(rng *rand.Rand) string {
	return fmt.Sprintf("203.0.%d.%d", rng.Intn(256), 1+rng.Intn(254))
}
