package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()
	out, err := exec.Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	exec := New()
	_, err := exec.Execute(context.Background(), "definitely-not-a-binary-xyz")
	if err == nil {
		t.Error("Execute() should fail for missing binary")
	}
}

func TestExecuteStdin(t *testing.T) {
	exec := New()
	out, err := exec.ExecuteStdin(context.Background(), []byte("piped\n"), "cat")
	if err != nil {
		t.Fatalf("ExecuteStdin() error = %v", err)
	}
	if string(out) != "piped\n" {
		t.Errorf("ExecuteStdin() = %q, want %q", out, "piped\n")
	}
}
