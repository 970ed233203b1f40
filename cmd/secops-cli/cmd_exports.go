package main

import (
	"context"
	"fmt"

	"github.com/cephas20k/secops/client"
	"github.com/spf13/cobra"
)

func newExportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Manage export schedules and history",
	}
	cmd.AddCommand(exportsHistoryCmd())
	cmd.AddCommand(exportsSchedulesCmd())
	cmd.AddCommand(exportsRunCmd())
	cmd.AddCommand(exportsRecordCmd())
	return cmd
}

func exportsHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed exports, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := apiClient.Exports.History(context.Background(), limit)
			if err != nil {
				fatal("exports history", err)
			}
			if flagFmt == "table" {
				headers := []string{"TIMESTAMP", "ACTOR", "FORMAT", "SCOPE", "RECORDS", "SOURCE", "FILENAME"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{
						e.Timestamp.Format("2006-01-02 15:04:05"),
						e.Actor, e.Format, e.Scope,
						fmt.Sprintf("%d", e.Records),
						e.Source, e.Filename,
					})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	return cmd
}

func exportsSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List configured export schedules",
		Run: func(cmd *cobra.Command, args []string) {
			schedules, err := apiClient.Exports.Schedules(context.Background())
			if err != nil {
				fatal("exports schedules", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "NAME", "FREQUENCY", "TIME_UTC", "FORMAT", "SCOPE", "ENABLED", "NEXT_RUN"}
				var rows [][]string
				for _, s := range schedules {
					nextRun := "-"
					if s.NextRunAt != nil {
						nextRun = s.NextRunAt.Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{
						s.ID, s.Name, s.Frequency, s.TimeUTC, s.Format, s.Scope,
						yesNo(s.Enabled), nextRun,
					})
				}
				formatTable(headers, rows)
				return
			}
			output(schedules, "")
		},
	}
	cmd.AddCommand(exportsScheduleCreateCmd())
	return cmd
}

func exportsScheduleCreateCmd() *cobra.Command {
	var req client.ScheduleRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new recurring export",
		Run: func(cmd *cobra.Command, args []string) {
			req.Enabled = true
			saved, err := apiClient.Exports.CreateSchedule(context.Background(), &req)
			if err != nil {
				fatal("schedule create", err)
			}
			output(saved, saved.ID)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Schedule name")
	cmd.Flags().StringVar(&req.Scope, "scope", "users_only", "Scope: users_only|users_with_related")
	cmd.Flags().StringVar(&req.Format, "export-format", "csv", "Format: csv|pdf")
	cmd.Flags().StringVar(&req.Frequency, "frequency", "daily", "Frequency: daily|weekly")
	cmd.Flags().StringVar(&req.TimeUTC, "time-utc", "08:00", "Run time, HH:MM UTC")
	cmd.Flags().IntVar(&req.DayOfWeek, "day-of-week", 0, "Weekly run day (0 = Sunday)")
	cmd.Flags().StringVar(&req.Actor, "actor", "", "Acting admin identity (default: admin)")
	return cmd
}

func exportsRunCmd() *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "run <schedule-id>",
		Short: "Fire a schedule immediately regardless of its due time",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entry, err := apiClient.Exports.RunSchedule(context.Background(), args[0], actor)
			if err != nil {
				fatal("exports run", err)
			}
			output(entry, entry.Filename)
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Acting admin identity (default: admin)")
	return cmd
}

func exportsRecordCmd() *cobra.Command {
	var ev client.ExportEvent
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a manual export performed outside the scheduler",
		Run: func(cmd *cobra.Command, args []string) {
			entry, err := apiClient.Exports.RecordEvent(context.Background(), &ev)
			if err != nil {
				fatal("exports record", err)
			}
			output(entry, entry.Filename)
		},
	}
	cmd.Flags().StringVar(&ev.Format, "export-format", "csv", "Format: csv|pdf")
	cmd.Flags().StringVar(&ev.Scope, "scope", "users_only", "Scope: users_only|users_with_related")
	cmd.Flags().IntVar(&ev.Records, "records", 0, "Record count")
	cmd.Flags().StringVar(&ev.Source, "source", "manual", "Source label")
	cmd.Flags().StringVar(&ev.Filename, "filename", "", "Filename (derived when empty)")
	cmd.Flags().StringVar(&ev.Actor, "actor", "", "Acting admin identity (default: admin)")
	return cmd
}
