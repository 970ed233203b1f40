package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newApprovalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "Review and resolve pending approvals",
	}
	cmd.AddCommand(approvalsListCmd())
	cmd.AddCommand(approvalsApproveCmd())
	cmd.AddCommand(approvalsRejectCmd())
	return cmd
}

func approvalsListCmd() *cobra.Command {
	var status string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approval requests",
		Run: func(cmd *cobra.Command, args []string) {
			approvals, err := apiClient.Approvals.List(context.Background(), status, limit)
			if err != nil {
				fatal("approvals list", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "TARGET", "REQUESTED_BY", "STATUS", "REQUESTED_AT"}
				var rows [][]string
				for _, a := range approvals {
					rows = append(rows, []string{
						a.ID, a.ActionType, a.Target, a.RequestedBy, a.Status,
						a.RequestedAt.Format("2006-01-02 15:04:05"),
					})
				}
				formatTable(headers, rows)
				return
			}
			output(approvals, "")
		},
	}
	cmd.Flags().StringVar(&status, "status", "pending", "Filter by status: pending|approved|rejected (empty for all)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	return cmd
}

func approvalsApproveCmd() *cobra.Command {
	var resolvedBy string
	cmd := &cobra.Command{
		Use:   "approve <approval-id>",
		Short: "Approve a pending request and execute its action",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Approvals.Resolve(context.Background(), args[0], "approve", resolvedBy)
			if err != nil {
				fatal("approve", err)
			}
			output(out, out.Approval.ID)
		},
	}
	cmd.Flags().StringVar(&resolvedBy, "by", "", "Resolving admin identity (default: admin)")
	return cmd
}

func approvalsRejectCmd() *cobra.Command {
	var resolvedBy string
	cmd := &cobra.Command{
		Use:   "reject <approval-id>",
		Short: "Reject a pending request without executing it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Approvals.Resolve(context.Background(), args[0], "reject", resolvedBy)
			if err != nil {
				fatal("reject", err)
			}
			output(out, out.Approval.ID)
		},
	}
	cmd.Flags().StringVar(&resolvedBy, "by", "", "Resolving admin identity (default: admin)")
	return cmd
}
