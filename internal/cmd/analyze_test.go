package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("good morning 😊\nhttp://x.com/a.png\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"analyze", path, "--output", "json", "--log-level", "error"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected analyze to succeed, got %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("expected json output from flag, got %q", cfg.Output)
	}
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	rootCmd.SetArgs([]string{"analyze", missing, "--log-level", "error"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for missing export")
	}
}
