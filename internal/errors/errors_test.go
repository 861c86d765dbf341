package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "plain error", err: errors.New("boom"), expected: "Error: boom"},
		{name: "wrapped sentinel", err: fmt.Errorf("absences/42: %w", ErrNotFound), expected: "Error: absences/42: record not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("unknown collection %q", "buses")
	if got != `Error: unknown collection "buses"` {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: fmt.Errorf("todos/42: %w", ErrNotFound), want: "record list"},
		{name: "permission", err: fmt.Errorf("view notices: %w", ErrPermissionDenied), want: "admin"},
		{name: "plain", err: errors.New("boom"), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, fmt.Errorf("lights: %w", ErrUnknownCollection))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("report() wrote %d lines, want error and hint:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Error: lights: unknown collection" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("view roadworks: %w", ErrPermissionDenied)
	if !Is(err, ErrPermissionDenied) {
		t.Error("Is() = false for wrapped ErrPermissionDenied, want true")
	}
	if Is(err, ErrNotFound) {
		t.Error("Is() = true for unrelated sentinel, want false")
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok || e.Success() {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if e.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") {
		t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
	}
}
