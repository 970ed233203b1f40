package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, token, fmt string }{flagURL, flagToken, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagToken = orig.token
		flagFmt = orig.fmt
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// writeTestConfig writes a config file under a temp HOME and returns it.
func writeTestConfig(t *testing.T, content string) {
	t.Helper()
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)
	cfgDir := filepath.Join(tmp, ".secops")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// TestResolveConfigEnvURL verifies that SECOPS_URL overrides the default URL.
func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_ADMIN_TOKEN")
	setEnv(t, "SECOPS_URL", "http://env-server:9090")

	// Point HOME at a temp dir so there's no config file to interfere.
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://env-server:9090")
	}
}

// TestResolveConfigEnvToken verifies that SECOPS_ADMIN_TOKEN sets the token.
func TestResolveConfigEnvToken(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_URL")
	setEnv(t, "SECOPS_ADMIN_TOKEN", "secret-token-from-env")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig()

	if flagToken != "secret-token-from-env" {
		t.Errorf("flagToken: got %q, want %q", flagToken, "secret-token-from-env")
	}
}

// TestResolveConfigFlagTakesPrecedenceOverEnv verifies that an explicit flag
// value is not overridden by the environment variable.
func TestResolveConfigFlagTakesPrecedenceOverEnv(t *testing.T) {
	resetFlags(t)
	setEnv(t, "SECOPS_URL", "http://env-server:9090")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	// Simulate flag being explicitly set to a non-default value.
	flagURL = "http://explicit-flag:1234"
	resolveConfig()

	if flagURL != "http://explicit-flag:1234" {
		t.Errorf("explicit flag should win; got %q", flagURL)
	}
}

// TestResolveConfigProfileYAML verifies that profile-based config is resolved
// using the active_profile key.
func TestResolveConfigProfileYAML(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_URL")
	unsetEnv(t, "SECOPS_ADMIN_TOKEN")

	writeTestConfig(t, `
active_profile: staging
profiles:
  default:
    url: http://default:3040
    token: default-token
  staging:
    url: http://staging:4040
    token: staging-token
`)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://staging:4040" {
		t.Errorf("flagURL from profile: got %q, want %q", flagURL, "http://staging:4040")
	}
	if flagToken != "staging-token" {
		t.Errorf("flagToken from profile: got %q, want %q", flagToken, "staging-token")
	}
}

// TestResolveConfigDefaultProfile verifies that when active_profile is empty
// the "default" profile is used.
func TestResolveConfigDefaultProfile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_URL")
	unsetEnv(t, "SECOPS_ADMIN_TOKEN")

	writeTestConfig(t, `
profiles:
  default:
    url: http://default-profile:5050
    token: default-profile-token
`)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig()

	if flagURL != "http://default-profile:5050" {
		t.Errorf("flagURL from default profile: got %q, want %q", flagURL, "http://default-profile:5050")
	}
	if flagToken != "default-profile-token" {
		t.Errorf("flagToken from default profile: got %q", flagToken)
	}
}

// TestResolveConfigMissingFile verifies that a missing config file is silently
// ignored and flag defaults are unchanged.
func TestResolveConfigMissingFile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_URL")
	unsetEnv(t, "SECOPS_ADMIN_TOKEN")

	// HOME has no .secops directory.
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig() // must not panic

	if flagURL != defaultServerURL {
		t.Errorf("flagURL should stay default; got %q", flagURL)
	}
	if flagToken != "" {
		t.Errorf("flagToken should stay empty; got %q", flagToken)
	}
}

// TestResolveConfigInvalidYAML verifies that a malformed config file is
// silently ignored.
func TestResolveConfigInvalidYAML(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "SECOPS_URL")
	unsetEnv(t, "SECOPS_ADMIN_TOKEN")

	writeTestConfig(t, ":::not-yaml:::")

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig() // must not panic

	if flagURL != defaultServerURL {
		t.Errorf("flagURL should stay default on bad YAML; got %q", flagURL)
	}
}

// TestResolveConfigEnvNotOverriddenByFile verifies that env vars take
// precedence over config file values.
func TestResolveConfigEnvNotOverriddenByFile(t *testing.T) {
	resetFlags(t)
	setEnv(t, "SECOPS_ADMIN_TOKEN", "env-wins-token")
	unsetEnv(t, "SECOPS_URL")

	writeTestConfig(t, `
profiles:
  default:
    url: http://file:9000
    token: file-token
`)

	flagURL = defaultServerURL
	flagToken = ""
	resolveConfig()

	// Env token should win over file token.
	if flagToken != "env-wins-token" {
		t.Errorf("flagToken should be env value; got %q", flagToken)
	}
}
