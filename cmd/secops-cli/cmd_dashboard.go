package main

import (
	"context"
	"fmt"

	"github.com/cephas20k/secops/client"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var (
		rangeDays int
		username  string
		role      string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch the analytics dashboard snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			snap, err := apiClient.Dashboard(context.Background(), &client.DashboardOptions{
				RangeDays: rangeDays,
				Username:  username,
				Role:      role,
			})
			if err != nil {
				fatal("dashboard", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"METRIC", "VALUE"},
					[][]string{
						{"Total Users", fmt.Sprintf("%d", snap.TotalUsers)},
						{"Active Users", fmt.Sprintf("%d", snap.ActiveUsers)},
						{"Active Sessions", fmt.Sprintf("%d", snap.Realtime.ActiveSessions)},
						{"Failed Logins (10m)", fmt.Sprintf("%d", snap.Realtime.FailedLogins10m)},
						{"Step-up Queue", fmt.Sprintf("%d", snap.Realtime.StepUpQueue)},
						{"Pending Approvals", fmt.Sprintf("%d", len(snap.PendingApprovals))},
						{"Alerts", fmt.Sprintf("%d", len(snap.Alerts))},
						{"Avg Latency (ms)", fmt.Sprintf("%.2f", snap.Health.AvgLatencyMs)},
					},
				)
				return
			}
			output(snap, "")
		},
	}
	cmd.Flags().IntVar(&rangeDays, "range-days", 0, "Analytics range in days (default: server-side 30)")
	cmd.Flags().StringVar(&username, "username", "", "Viewer username for the snapshot header")
	cmd.Flags().StringVar(&role, "role", "", "Viewer role: super_admin|admin_analyst|auditor")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(resp, resp.Status)
		},
	}
}
