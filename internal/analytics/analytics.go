// Package analytics derives dashboard metrics, trend series, and alerts from
// the ledger and entity collections. Every function here is a pure read over
// the snapshot it is handed; nothing in this package mutates engine state.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cephas20k/secops/internal/models"
)

// Range and window constants.
const (
	MinRangeDays = 1
	MaxRangeDays = 180

	// DefaultGeoDays is the threat-geo lookback when the caller passes none.
	DefaultGeoDays = 30

	// geoTopN caps the threat-geo summary.
	geoTopN = 8

	// healthSampleWindow is how many recent API metric samples feed health.
	healthSampleWindow = 120

	failedLoginWindow  = 15 * time.Minute
	realtimeLoginWin   = 10 * time.Minute
	sessionWindow      = 24 * time.Hour
	geoSpreadWindow    = 24 * time.Hour
	adminFailureWindow = 60 * time.Second
)

// ClampRangeDays normalizes a requested trend range into [1, 180].
func ClampRangeDays(days int) int {
	if days < MinRangeDays {
		return MinRangeDays
	}
	if days > MaxRangeDays {
		return MaxRangeDays
	}
	return days
}

// localMidnight truncates t to local midnight.
func localMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// dayLabel switches from weekday name to "Mon D" once the range exceeds ten days.
func dayLabel(t time.Time, rangeDays int) string {
	if rangeDays > 10 {
		return t.Format("Jan 2")
	}
	return t.Format("Mon")
}

// RiskTrend builds rangeDays daily buckets ending today and scores each from
// its failure rate and anomaly count. Scores stay within [0, 100] and grow
// monotonically in both inputs.
func RiskTrend(entries []models.AuditEntry, rangeDays int, now time.Time) []models.RiskTrendPoint {
	rangeDays = ClampRangeDays(rangeDays)
	today := localMidnight(now)
	start := today.AddDate(0, 0, -(rangeDays - 1))
	end := today.AddDate(0, 0, 1)

	points := make([]models.RiskTrendPoint, rangeDays)
	byKey := make(map[string]*models.RiskTrendPoint, rangeDays)
	for i := 0; i < rangeDays; i++ {
		day := start.AddDate(0, 0, i)
		points[i] = models.RiskTrendPoint{Date: dayKey(day), Label: dayLabel(day, rangeDays)}
		byKey[points[i].Date] = &points[i]
	}

	for _, e := range entries {
		if e.Category != models.CategoryLoginAttempt {
			continue
		}
		ts := e.Timestamp.In(now.Location())
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		p, ok := byKey[dayKey(ts)]
		if !ok {
			continue
		}
		p.Attempts++
		if e.Status != models.StatusSuccess {
			p.Failed++
			p.Anomalies++
		}
	}

	for i := range points {
		points[i].Score = riskScore(points[i].Attempts, points[i].Failed, points[i].Anomalies)
	}

	return points
}

// riskScore is min(100, round(failRate*0.7 + anomalies*6)) where failRate is
// the rounded failure percentage (0 when there were no attempts).
func riskScore(attempts, failed, anomalies int) int {
	failRate := 0
	if attempts > 0 {
		failRate = int(math.Round(float64(failed) / float64(attempts) * 100))
	}

	score := int(math.Round(float64(failRate)*0.7 + float64(anomalies)*6))
	if score > 100 {
		score = 100
	}

	return score
}

// resolveGrowthMonths maps a trend range to the growth series length.
func resolveGrowthMonths(rangeDays int) int {
	switch {
	case rangeDays <= 30:
		return 3
	case rangeDays <= 60:
		return 6
	case rangeDays <= 120:
		return 9
	default:
		return 12
	}
}

// UserGrowth buckets user creation by month: newUsers within the month,
// totalUsers cumulative through month end.
func UserGrowth(users []models.User, rangeDays int, now time.Time) []models.GrowthPoint {
	months := resolveGrowthMonths(ClampRangeDays(rangeDays))
	y, m, _ := now.Date()
	currentMonth := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())

	points := make([]models.GrowthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		monthStart := currentMonth.AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		newUsers, totalUsers := 0, 0
		for _, u := range users {
			created := u.CreatedAt.In(now.Location())
			if created.Before(monthEnd) {
				totalUsers++
				if !created.Before(monthStart) {
					newUsers++
				}
			}
		}

		points = append(points, models.GrowthPoint{
			Month:      monthStart.Format("2006-01"),
			Label:      monthStart.Format("Jan 2006"),
			NewUsers:   newUsers,
			TotalUsers: totalUsers,
		})
	}

	return points
}

// Traffic tallies daily login_attempt buckets and summarizes totals, success
// rate, and distinct non-placeholder IPs and country tokens.
func Traffic(entries []models.AuditEntry, rangeDays int, now time.Time) models.TrafficInsights {
	rangeDays = ClampRangeDays(rangeDays)
	today := localMidnight(now)
	start := today.AddDate(0, 0, -(rangeDays - 1))
	end := today.AddDate(0, 0, 1)

	daily := make([]models.TrafficPoint, rangeDays)
	byKey := make(map[string]*models.TrafficPoint, rangeDays)
	for i := 0; i < rangeDays; i++ {
		day := start.AddDate(0, 0, i)
		daily[i] = models.TrafficPoint{Date: dayKey(day), Label: dayLabel(day, rangeDays)}
		byKey[daily[i].Date] = &daily[i]
	}

	summary := models.TrafficSummary{}
	ips := make(map[string]struct{})
	countries := make(map[string]struct{})

	for _, e := range entries {
		if e.Category != models.CategoryLoginAttempt {
			continue
		}
		ts := e.Timestamp.In(now.Location())
		if ts.Before(start) || !ts.Before(end) {
			continue
		}

		summary.TotalVisits++
		if p, ok := byKey[dayKey(ts)]; ok {
			p.Visits++
			if e.Status == models.StatusSuccess {
				p.Success++
			} else {
				p.Failed++
			}
		}
		if e.Status == models.StatusSuccess {
			summary.TotalSuccess++
		} else {
			summary.TotalFailed++
		}

		if ip := entryIP(e); ip != "" {
			ips[ip] = struct{}{}
		}
		if c := CountryToken(entryGeo(e)); c != "" {
			countries[c] = struct{}{}
		}
	}

	if summary.TotalVisits > 0 {
		summary.SuccessRate = int(math.Round(float64(summary.TotalSuccess) / float64(summary.TotalVisits) * 100))
	}
	summary.UniqueIPs = len(ips)
	summary.UniqueCountries = len(countries)

	return models.TrafficInsights{Daily: daily, Summary: summary}
}

// Realtime computes the point-in-time dashboard counters.
func Realtime(users []models.User, entries []models.AuditEntry, now time.Time) models.RealtimeMetrics {
	m := models.RealtimeMetrics{}

	for _, u := range users {
		if u.StepUpRequired {
			m.StepUpQueue++
		}
		if !u.Active {
			continue
		}
		for _, d := range u.Devices {
			if now.Sub(d.LastSeen) <= sessionWindow {
				m.ActiveSessions++
			}
		}
	}

	m.FailedLogins10m = countFailedLogins(entries, now, realtimeLoginWin)

	return m
}

// ThreatGeo groups login attempts within the lookback by geo string and
// returns the top offenders by failure count.
func ThreatGeo(entries []models.AuditEntry, days int, now time.Time) []models.GeoThreat {
	if days <= 0 {
		days = DefaultGeoDays
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	type group struct {
		threat models.GeoThreat
		ips    map[string]struct{}
		order  int
	}
	groups := make(map[string]*group)

	for _, e := range entries {
		if e.Category != models.CategoryLoginAttempt || e.Timestamp.Before(cutoff) {
			continue
		}

		geo := entryGeo(e)
		if geo == "" {
			geo = "Unknown"
		}

		g, ok := groups[geo]
		if !ok {
			g = &group{threat: models.GeoThreat{Geo: geo}, ips: make(map[string]struct{}), order: len(groups)}
			groups[geo] = g
		}

		g.threat.Attempts++
		if e.Status != models.StatusSuccess {
			g.threat.Failed++
		}
		if ip := entryIP(e); ip != "" {
			g.ips[ip] = struct{}{}
		}
	}

	out := make([]*group, 0, len(groups))
	for _, g := range groups {
		g.threat.UniqueIPs = len(g.ips)
		if g.threat.Attempts > 0 {
			succeeded := g.threat.Attempts - g.threat.Failed
			g.threat.SuccessRate = int(math.Round(float64(succeeded) / float64(g.threat.Attempts) * 100))
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].threat.Failed != out[j].threat.Failed {
			return out[i].threat.Failed > out[j].threat.Failed
		}
		if out[i].threat.Attempts != out[j].threat.Attempts {
			return out[i].threat.Attempts > out[j].threat.Attempts
		}
		return out[i].order < out[j].order
	})

	if len(out) > geoTopN {
		out = out[:geoTopN]
	}

	threats := make([]models.GeoThreat, len(out))
	for i, g := range out {
		threats[i] = g.threat
	}

	return threats
}

// TriggeredAlerts evaluates the alert rules against current state. Each
// triggered condition yields exactly one alert with a stable id; alerts are
// recomputed fresh on every pass.
func TriggeredAlerts(
	users []models.User, entries []models.AuditEntry,
	rules models.AlertRuleConfig, now time.Time,
) []models.Alert {
	if !rules.Enabled {
		return nil
	}

	var alerts []models.Alert

	if failed := countFailedLogins(entries, now, failedLoginWindow); failed >= rules.FailedLogins15mThreshold {
		alerts = append(alerts, models.Alert{
			ID:       "alert_failed_logins_15m",
			Severity: "critical",
			Title:    "Failed login spike",
			Description: fmt.Sprintf("%d failed login attempts in the last 15 minutes (threshold %d)",
				failed, rules.FailedLogins15mThreshold),
		})
	}

	highRisk := 0
	for _, u := range users {
		if u.RiskScore >= rules.HighRiskThreshold {
			highRisk++
		}
	}
	if highRisk > 0 {
		alerts = append(alerts, models.Alert{
			ID:       "alert_high_risk_accounts",
			Severity: "high",
			Title:    "High-risk accounts",
			Description: fmt.Sprintf("%d account(s) at or above risk score %d",
				highRisk, rules.HighRiskThreshold),
		})
	}

	countries := make(map[string]struct{})
	cutoff := now.Add(-geoSpreadWindow)
	for _, e := range entries {
		if e.Category != models.CategoryLoginAttempt || e.Timestamp.Before(cutoff) {
			continue
		}
		if c := CountryToken(entryGeo(e)); c != "" {
			countries[c] = struct{}{}
		}
	}
	if len(countries) >= rules.UniqueCountries24hThreshold {
		alerts = append(alerts, models.Alert{
			ID:       "alert_geo_spread",
			Severity: "warning",
			Title:    "Unusual geographic spread",
			Description: fmt.Sprintf("login traffic from %d countries in the last 24 hours (threshold %d)",
				len(countries), rules.UniqueCountries24hThreshold),
		})
	}

	return alerts
}

// Health reports average latency and failures over the recent API metric
// window, admin-action failures in the last minute, and queue depth.
func Health(
	apiMetrics []models.APIMetric, entries []models.AuditEntry,
	pendingApprovals int, now time.Time,
) models.DashboardHealth {
	h := models.DashboardHealth{ApprovalQueueDepth: pendingApprovals}

	samples := apiMetrics
	if len(samples) > healthSampleWindow {
		samples = samples[len(samples)-healthSampleWindow:]
	}

	var totalLatency float64
	for _, m := range samples {
		totalLatency += m.LatencyMs
		if !m.Success {
			h.APIFailures++
		}
	}
	if len(samples) > 0 {
		h.AvgLatencyMs = math.Round(totalLatency/float64(len(samples))*100) / 100
	}

	cutoff := now.Add(-adminFailureWindow)
	for _, e := range entries {
		if e.Category == models.CategoryAdminAction && e.Status == models.StatusFailed && !e.Timestamp.Before(cutoff) {
			h.RecentAdminFailures++
		}
	}

	return h
}

// CountryToken derives a country key from a geo string: the last
// comma-separated segment, uppercased. Empty and unknown tokens yield "".
func CountryToken(geo string) string {
	parts := strings.Split(geo, ",")
	token := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if token == "" || token == "UNKNOWN" {
		return ""
	}
	return token
}

func countFailedLogins(entries []models.AuditEntry, now time.Time, window time.Duration) int {
	cutoff := now.Add(-window)
	n := 0
	for _, e := range entries {
		if e.Category == models.CategoryLoginAttempt && e.Status != models.StatusSuccess && !e.Timestamp.Before(cutoff) {
			n++
		}
	}
	return n
}

func entryIP(e models.AuditEntry) string {
	ip, _ := e.Details["ip"].(string)
	switch strings.ToLower(ip) {
	case "", "unknown", "0.0.0.0":
		return ""
	}
	return ip
}

func entryGeo(e models.AuditEntry) string {
	geo, _ := e.Details["geo"].(string)
	return geo
}
