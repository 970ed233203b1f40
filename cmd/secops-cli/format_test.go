package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout replaces os.Stdout with a pipe, calls f, then returns the
// captured output and restores os.Stdout. It is NOT safe for parallel use
// because os.Stdout is a package-level variable.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	f()

	w.Close()
	<-done
	os.Stdout = orig
	r.Close()
	return buf.String()
}

// TestFormatJSON verifies that formatJSON emits indented JSON to stdout.
func TestFormatJSON(t *testing.T) {
	type sample struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	v := sample{ID: "usr-001", Username: "nadia"}

	got := captureStdout(t, func() { formatJSON(v) })

	var out sample
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, got)
	}
	if out.ID != "usr-001" {
		t.Errorf("id: got %q, want %q", out.ID, "usr-001")
	}
	if out.Username != "nadia" {
		t.Errorf("username: got %q, want %q", out.Username, "nadia")
	}
	// Must be indented (contains newlines and spaces).
	if !strings.Contains(got, "\n") {
		t.Errorf("expected indented JSON but got: %s", got)
	}
}

// TestFormatTable verifies header, separator, and row alignment.
func TestFormatTable(t *testing.T) {
	got := captureStdout(t, func() {
		formatTable(
			[]string{"ID", "USERNAME"},
			[][]string{
				{"usr-001", "nadia"},
				{"usr-002", "tomas"},
			},
		)
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, sep, 2 rows), got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "--") {
		t.Errorf("separator: got %q", lines[1])
	}
	if !strings.Contains(lines[2], "nadia") || !strings.Contains(lines[3], "tomas") {
		t.Errorf("rows: got %q / %q", lines[2], lines[3])
	}
}

// TestOutputQuiet verifies quiet format prints only the quiet value.
func TestOutputQuiet(t *testing.T) {
	origFmt := flagFmt
	flagFmt = "quiet"
	t.Cleanup(func() { flagFmt = origFmt })

	got := captureStdout(t, func() {
		output(map[string]string{"id": "apr-1", "status": "pending"}, "apr-1")
	})
	if strings.TrimSpace(got) != "apr-1" {
		t.Errorf("quiet output: got %q, want apr-1", got)
	}
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Errorf("yesNo: got %q/%q", yesNo(true), yesNo(false))
	}
}
