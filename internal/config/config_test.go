package config_test

import (
	"strings"
	"testing"

	"github.com/cephas20k/secops/internal/config"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_API_TOKEN", "local-admin-token-0123456789")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000")
}

func TestLoad_ValidConfig(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "3040" {
		t.Errorf("expected default port 3040, got %s", cfg.Port)
	}

	if cfg.ListenHost != "127.0.0.1" {
		t.Errorf("expected default listen host 127.0.0.1, got %s", cfg.ListenHost)
	}

	if cfg.Addr() != "127.0.0.1:3040" {
		t.Errorf("expected addr 127.0.0.1:3040, got %s", cfg.Addr())
	}

	if cfg.SweepInterval != 30 {
		t.Errorf("expected default sweep interval 30, got %d", cfg.SweepInterval)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.RequireApproval {
		t.Error("expected RequireApproval=true by default")
	}

	if !cfg.SeedDemoData {
		t.Error("expected SeedDemoData=true by default")
	}

	if !cfg.EnableWS {
		t.Error("expected EnableWS=true by default")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("unexpected LogLevel default: %s", cfg.LogLevel)
	}
}

func TestLoad_SecretRedaction(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AdminAPIToken.String() != "[REDACTED]" {
		t.Errorf("expected redacted token string, got %s", cfg.AdminAPIToken.String())
	}

	if cfg.AdminAPIToken.Value() != "local-admin-token-0123456789" {
		t.Error("expected Value() to return the raw token")
	}
}

func TestLoad_ErrorCases(t *testing.T) {
	tests := []struct {
		name         string
		envOverrides map[string]string
		envClear     []string
		wantErr      string
	}{
		{
			name:     "missing ADMIN_API_TOKEN",
			envClear: []string{"ADMIN_API_TOKEN"},
			wantErr:  "ADMIN_API_TOKEN is required",
		},
		{
			name:         "short ADMIN_API_TOKEN",
			envOverrides: map[string]string{"ADMIN_API_TOKEN": "short"},
			wantErr:      "ADMIN_API_TOKEN must be at least 16 characters",
		},
		{
			name:         "invalid PORT zero",
			envOverrides: map[string]string{"PORT": "0"},
			wantErr:      "PORT must be between 1 and 65535",
		},
		{
			name:         "invalid PORT non-numeric",
			envOverrides: map[string]string{"PORT": "abc"},
			wantErr:      "PORT must be a valid integer",
		},
		{
			name:         "CORS wildcard",
			envOverrides: map[string]string{"CORS_ORIGINS": "*"},
			wantErr:      "CORS_ORIGINS must not contain wildcard",
		},
		{
			name:         "CORS invalid origin",
			envOverrides: map[string]string{"CORS_ORIGINS": "not-a-url"},
			wantErr:      "CORS_ORIGINS contains invalid origin",
		},
		{
			name:         "invalid LOG_LEVEL",
			envOverrides: map[string]string{"LOG_LEVEL": "verbose"},
			wantErr:      "LOG_LEVEL must be one of",
		},
		{
			name:         "sweep interval zero",
			envOverrides: map[string]string{"SWEEP_INTERVAL_SECONDS": "0"},
			wantErr:      "SWEEP_INTERVAL_SECONDS must be an integer between 1 and 3600",
		},
		{
			name:         "sweep interval non-numeric",
			envOverrides: map[string]string{"SWEEP_INTERVAL_SECONDS": "abc"},
			wantErr:      "SWEEP_INTERVAL_SECONDS must be an integer between 1 and 3600",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setValidEnv(t)
			for _, k := range tc.envClear {
				t.Setenv(k, "")
			}
			for k, v := range tc.envOverrides {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}
