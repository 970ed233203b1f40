package main

import (
	"context"

	"github.com/cephas20k/secops/client"
	"github.com/spf13/cobra"
)

func newGovernanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Inspect and update governance policy",
	}
	cmd.AddCommand(governanceShowCmd())
	cmd.AddCommand(governanceSetCmd())
	cmd.AddCommand(governanceAlertRulesCmd())
	return cmd
}

func governanceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current governance configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := apiClient.Governance.Get(context.Background())
			if err != nil {
				fatal("governance show", err)
			}
			output(cfg, yesNo(cfg.RequireApproval))
		},
	}
}

func governanceSetCmd() *cobra.Command {
	var requireApproval bool
	var actor string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the approval gate",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := apiClient.Governance.Set(context.Background(), requireApproval, actor)
			if err != nil {
				fatal("governance set", err)
			}
			output(cfg, yesNo(cfg.RequireApproval))
		},
	}
	cmd.Flags().BoolVar(&requireApproval, "require-approval", true, "Queue managed actions for approval")
	cmd.Flags().StringVar(&actor, "actor", "", "Acting admin identity (default: admin)")
	return cmd
}

func governanceAlertRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert-rules",
		Short: "Show alert rule thresholds",
		Run: func(cmd *cobra.Command, args []string) {
			rules, err := apiClient.Governance.AlertRules(context.Background())
			if err != nil {
				fatal("alert-rules", err)
			}
			output(rules, "")
		},
	}
	cmd.AddCommand(governanceAlertRulesSetCmd())
	return cmd
}

func governanceAlertRulesSetCmd() *cobra.Command {
	var rules client.AlertRuleConfig
	var actor string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace alert rule thresholds",
		Run: func(cmd *cobra.Command, args []string) {
			saved, err := apiClient.Governance.SetAlertRules(context.Background(), &rules, actor)
			if err != nil {
				fatal("alert-rules set", err)
			}
			output(saved, "")
		},
	}
	cmd.Flags().BoolVar(&rules.Enabled, "enabled", true, "Enable alert evaluation")
	cmd.Flags().IntVar(&rules.FailedLogins15mThreshold, "failed-logins-15m", 5, "Failed logins in 15m before alerting")
	cmd.Flags().IntVar(&rules.HighRiskThreshold, "high-risk", 80, "Risk score treated as high risk (1-100)")
	cmd.Flags().IntVar(&rules.UniqueCountries24hThreshold, "unique-countries-24h", 3, "Distinct countries in 24h before alerting")
	cmd.Flags().StringVar(&actor, "actor", "", "Acting admin identity (default: admin)")
	return cmd
}
