package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cephas20k/secops/client"
	"github.com/spf13/cobra"
)

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Perform managed admin actions on users",
		Long:  "Managed actions apply immediately, or queue for approval when governance requires it",
	}
	cmd.AddCommand(actionActivateCmd())
	cmd.AddCommand(actionDeactivateCmd())
	cmd.AddCommand(actionTrustDeviceCmd())
	cmd.AddCommand(actionPasswordResetCmd())
	cmd.AddCommand(actionReauthCmd())
	cmd.AddCommand(actionLockdownCmd())
	cmd.AddCommand(actionBulkActiveCmd())
	cmd.AddCommand(actionBulkPasswordResetCmd())
	return cmd
}

var flagActor string

func addActorFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagActor, "actor", "", "Acting admin identity (default: admin)")
}

// printOutcome reports whether the action applied or queued, in the
// selected output format.
func printOutcome(out *client.ActionOutcome) {
	if flagFmt == "quiet" {
		if out.Approval != nil {
			formatQuiet(out.Approval.ID)
			return
		}
		formatQuiet(out.Status)
		return
	}
	if out.Status == "pending_approval" && flagFmt == "table" {
		fmt.Printf("Queued for approval: %s (%s on %s)\n",
			out.Approval.ID, out.Approval.ActionType, out.Approval.Target)
		return
	}
	formatJSON(out)
}

func actionActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate <user-id>",
		Short: "Activate a user account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Actions.SetActive(context.Background(), args[0], true, flagActor)
			if err != nil {
				fatal("activate", err)
			}
			printOutcome(out)
		},
	}
	addActorFlag(cmd)
	return cmd
}

func actionDeactivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate <user-id>",
		Short: "Deactivate a user account (forces step-up on next sign-in)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Actions.SetActive(context.Background(), args[0], false, flagActor)
			if err != nil {
				fatal("deactivate", err)
			}
			printOutcome(out)
		},
	}
	addActorFlag(cmd)
	return cmd
}

func actionTrustDeviceCmd() *cobra.Command {
	var untrust bool
	cmd := &cobra.Command{
		Use:   "trust-device <user-id> <device-id>",
		Short: "Mark a user's device trusted (or untrusted with --untrust)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Actions.SetDeviceTrusted(context.Background(), args[0], args[1], !untrust, flagActor)
			if err != nil {
				fatal("trust-device", err)
			}
			printOutcome(out)
		},
	}
	cmd.Flags().BoolVar(&untrust, "untrust", false, "Revoke trust instead of granting it")
	addActorFlag(cmd)
	return cmd
}

func actionPasswordResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset <user-id>",
		Short: "Force a password reset on next sign-in",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Actions.ForcePasswordReset(context.Background(), args[0], flagActor)
			if err != nil {
				fatal("password-reset", err)
			}
			printOutcome(out)
		},
	}
	addActorFlag(cmd)
	return cmd
}

func actionReauthCmd() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "reauth <user-id>",
		Short: "Require the user to re-authenticate",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out, err := apiClient.Actions.TriggerReauth(context.Background(), args[0], method, flagActor)
			if err != nil {
				fatal("reauth", err)
			}
			printOutcome(out)
		},
	}
	cmd.Flags().StringVar(&method, "method", "otp", "Re-auth method")
	addActorFlag(cmd)
	return cmd
}

func actionLockdownCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "lockdown <user-id>",
		Short: "Deactivate the user and untrust every device in one step",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if !yes {
				fmt.Fprintln(os.Stderr, "lockdown is destructive; re-run with --yes to confirm")
				os.Exit(1)
			}
			out, err := apiClient.Actions.Lockdown(context.Background(), args[0], flagActor)
			if err != nil {
				fatal("lockdown", err)
			}
			printOutcome(out)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the lockdown")
	addActorFlag(cmd)
	return cmd
}

func actionBulkActiveCmd() *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "bulk-active <user-id>...",
		Short: "Toggle active across many users at once",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Actions.BulkSetActive(context.Background(), args, active, flagActor)
			if err != nil {
				fatal("bulk-active", err)
			}
			output(res, fmt.Sprintf("%d", res.Updated))
		},
	}
	cmd.Flags().BoolVar(&active, "active", true, "Target active state")
	addActorFlag(cmd)
	return cmd
}

func actionBulkPasswordResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk-password-reset <user-id>...",
		Short: "Force password reset across many users at once",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Actions.BulkForcePasswordReset(context.Background(), args, flagActor)
			if err != nil {
				fatal("bulk-password-reset", err)
			}
			output(res, fmt.Sprintf("%d", res.Updated))
		},
	}
	addActorFlag(cmd)
	return cmd
}
