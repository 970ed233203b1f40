package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var category string
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit ledger",
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := apiClient.Audit.Query(context.Background(), category, limit)
			if err != nil {
				fatal("audit query", err)
			}
			if flagFmt == "table" {
				headers := []string{"TIMESTAMP", "CATEGORY", "ACTION", "ACTOR", "TARGET", "STATUS"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{
						e.Timestamp.Format("2006-01-02 15:04:05"),
						e.Category, e.Action, e.Actor, e.Target, e.Status,
					})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter: login_attempt|otp|admin_action|account")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	return cmd
}
