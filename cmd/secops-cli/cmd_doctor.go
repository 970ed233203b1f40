package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, and auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func (r checkResult) print() {
	mark := "✅"
	if !r.Passed {
		mark = "❌"
	}

	if r.Detail != "" {
		fmt.Printf("%s %s: %s\n", mark, r.Name, r.Detail)
	} else {
		fmt.Printf("%s %s\n", mark, r.Name)
	}

	if !r.Passed && r.Hint != "" {
		fmt.Printf("   Hint: %s\n", r.Hint)
	}
}

func runDoctor() error {
	fmt.Println("\nSecops Doctor")
	fmt.Println("=============")

	cfgPath, cfg, cfgErr := doctorLoadConfig()
	url, token := doctorResolveSettings(cfg)

	results := []checkResult{
		checkConfigFile(cfgPath, cfgErr),
		checkServerURL(url),
		checkAdminToken(token),
	}
	if url != "" {
		results = append(results, checkServerReachable(url))
	}
	if url != "" && token != "" {
		results = append(results, checkAuthentication(url, token))
	}

	fmt.Println()
	allPassed := true
	for _, r := range results {
		r.print()
		allPassed = allPassed && r.Passed
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("✅ All checks passed!")

	return nil
}

func checkConfigFile(cfgPath string, cfgErr error) checkResult {
	if cfgErr != nil {
		return checkResult{
			Name: "Config file", Passed: false,
			Detail: cfgPath,
			Hint:   "Run: secops init",
		}
	}
	return checkResult{
		Name: "Config file", Passed: true,
		Detail: fmt.Sprintf("found (%s)", cfgPath),
	}
}

func checkServerURL(url string) checkResult {
	if url == "" {
		return checkResult{
			Name: "Server URL", Passed: false,
			Hint: "Set --url, SECOPS_URL, or run secops init",
		}
	}
	return checkResult{Name: "Server URL", Passed: true, Detail: url}
}

func checkAdminToken(token string) checkResult {
	if token == "" {
		return checkResult{
			Name: "Admin token", Passed: false,
			Hint: "Set --token, SECOPS_ADMIN_TOKEN, or run secops init",
		}
	}
	return checkResult{Name: "Admin token", Passed: true, Detail: "configured"}
}

func checkServerReachable(url string) checkResult {
	ver, err := doctorCheckHealth(url)
	if err != nil {
		return checkResult{
			Name: "Server reachable", Passed: false,
			Detail: url,
			Hint:   fmt.Sprintf("Is the secops server running? Try: systemctl status secops\n   Error: %v", err),
		}
	}

	detail := url
	if ver != "" {
		detail = fmt.Sprintf("v%s", ver)
	}
	return checkResult{Name: "Server reachable", Passed: true, Detail: detail}
}

func checkAuthentication(url, token string) checkResult {
	if err := doctorCheckAuth(url, token); err != nil {
		return checkResult{
			Name: "Authentication", Passed: false,
			Hint: fmt.Sprintf("Check your admin token. Error: %v", err),
		}
	}
	return checkResult{Name: "Authentication", Passed: true, Detail: "valid"}
}

func doctorLoadConfig() (string, *profilesFile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	cfgPath := filepath.Join(home, ".secops", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg profilesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}
	return cfgPath, &cfg, nil
}

// doctorResolveSettings mirrors resolveConfig's precedence (flag, env,
// profile) but tolerates a missing config file so each check can report
// independently.
func doctorResolveSettings(cfg *profilesFile) (url, token string) {
	url = flagURL
	token = flagToken

	if url == defaultServerURL {
		if v := os.Getenv("SECOPS_URL"); v != "" {
			url = v
		}
	}
	if token == "" {
		token = os.Getenv("SECOPS_ADMIN_TOKEN")
	}

	if cfg != nil {
		profile := cfg.ActiveProfile
		if profile == "" {
			profile = "default"
		}
		if p, ok := cfg.Profiles[profile]; ok {
			if url == defaultServerURL && p.URL != "" {
				url = p.URL
			}
			if token == "" && p.Token != "" {
				token = p.Token
			}
		}
	}

	return url, token
}

func doctorCheckHealth(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/v1/health", nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var health struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return "", err
	}
	return health.Version, nil
}

func doctorCheckAuth(url, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/v1/governance", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("authentication failed (HTTP %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
