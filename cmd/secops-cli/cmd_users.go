package main

import (
	"context"
	"fmt"

	"github.com/cephas20k/secops/client"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse the monitored-user directory",
	}
	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersDevicesCmd())
	cmd.AddCommand(usersTimelineCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	var (
		query    string
		sortBy   string
		sortDir  string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with search, sort, and pagination",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Users.List(context.Background(), &client.ListOptions{
				Query:    query,
				SortBy:   sortBy,
				SortDir:  sortDir,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				fatal("users list", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "USERNAME", "EMAIL", "GEO", "ACTIVE", "RISK", "ANOMALIES"}
				var rows [][]string
				for _, u := range resp.Items {
					rows = append(rows, []string{
						u.ID, u.Username, u.Email, u.Geo,
						yesNo(u.Active),
						fmt.Sprintf("%d", u.RiskScore),
						fmt.Sprintf("%d", u.LoginAnomalies),
					})
				}
				formatTable(headers, rows)
				fmt.Printf("\nPage %d of %d (%d total)\n", resp.Page, resp.TotalPages, resp.Total)
				return
			}
			output(resp, "")
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search username or email")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field (username, email, risk_score, ...)")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "", "Sort direction: asc|desc")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page")
	return cmd
}

func usersDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices <user-id>",
		Short: "List a user's devices",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Users.Devices(context.Background(), args[0], nil)
			if err != nil {
				fatal("user devices", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "LABEL", "PLATFORM", "TRUSTED", "LAST_SEEN", "GEO"}
				var rows [][]string
				for _, d := range resp.Items {
					rows = append(rows, []string{
						d.ID, d.Label, d.Platform,
						yesNo(d.Trusted),
						d.LastSeen.Format("2006-01-02 15:04:05"),
						d.Geo,
					})
				}
				formatTable(headers, rows)
				return
			}
			output(resp, "")
		},
	}
	return cmd
}

func usersTimelineCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "timeline <user-id>",
		Short: "Show the user's audit timeline, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := apiClient.Users.Timeline(context.Background(), args[0], limit)
			if err != nil {
				fatal("user timeline", err)
			}
			if flagFmt == "table" {
				headers := []string{"TIMESTAMP", "CATEGORY", "ACTION", "ACTOR", "STATUS"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{
						e.Timestamp.Format("2006-01-02 15:04:05"),
						e.Category, e.Action, e.Actor, e.Status,
					})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries")
	return cmd
}
