package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds a root command tree identical to main() but with
// PersistentPreRun stubbed out so the API client is never initialised.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "secops",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Skip client initialisation in tests.
		},
	}
	root.PersistentFlags().StringVar(&flagURL, "url", defaultServerURL, "")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "")

	root.AddCommand(newUsersCmd())
	root.AddCommand(newActionCmd())
	root.AddCommand(newApprovalsCmd())
	return root
}

// --- single-target commands ---

func TestSingleUserArgCommands(t *testing.T) {
	// Commands taking exactly one user or approval ID. Args validation
	// fires before Run, so missing or extra IDs fail without a client.
	tests := []struct {
		name string
		args []string
	}{
		{"users devices missing id", []string{"users", "devices"}},
		{"users timeline missing id", []string{"users", "timeline"}},
		{"users timeline extra arg", []string{"users", "timeline", "usr-1", "extra"}},
		{"action activate missing id", []string{"action", "activate"}},
		{"action deactivate extra arg", []string{"action", "deactivate", "usr-1", "extra"}},
		{"action lockdown missing id", []string{"action", "lockdown"}},
		{"approvals approve missing id", []string{"approvals", "approve"}},
		{"approvals reject extra arg", []string{"approvals", "reject", "apr-1", "extra"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			if err := executeArgs(t, root, tc.args...); err == nil {
				t.Errorf("expected arg validation error for %v", tc.args)
			}
		})
	}
}

// --- trust-device ---

func TestTrustDeviceArgCount(t *testing.T) {
	argsValidator := cobra.ExactArgs(2)

	cases := []struct {
		args    []string
		wantErr bool
	}{
		{[]string{"usr-1", "dev-1"}, false},
		{[]string{"usr-1"}, true},
		{[]string{"usr-1", "dev-1", "dev-2"}, true},
		{[]string{}, true},
	}
	for _, tc := range cases {
		err := argsValidator(nil, tc.args)
		if tc.wantErr && err == nil {
			t.Errorf("args %v: expected error", tc.args)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("args %v: unexpected error: %v", tc.args, err)
		}
	}
}

// --- bulk commands ---

func TestBulkCommandsRequireAtLeastOneID(t *testing.T) {
	argsValidator := cobra.MinimumNArgs(1)

	if err := argsValidator(nil, []string{"usr-1"}); err != nil {
		t.Errorf("one id should be valid: %v", err)
	}
	if err := argsValidator(nil, []string{"usr-1", "usr-2", "usr-3"}); err != nil {
		t.Errorf("many ids should be valid: %v", err)
	}
	if err := argsValidator(nil, []string{}); err == nil {
		t.Error("zero ids should fail MinimumNArgs(1)")
	}

	root := newTestRoot()
	if err := executeArgs(t, root, "action", "bulk-active"); err == nil {
		t.Error("bulk-active with no ids should fail")
	}
}

// --- unknown subcommands ---

func TestUnknownSubcommand(t *testing.T) {
	root := newTestRoot()
	if err := executeArgs(t, root, "users", "nuke"); err == nil {
		t.Error("unknown subcommand should error")
	}
}
