package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func next(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p, ok := <-ch:
		if !ok {
			t.Fatal("changes channel closed")
		}
		return p
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return ""
}

func TestExpandRecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(dir, "top.txt"), filepath.Join(nested, "deep.txt"), filepath.Join(nested, "skip.log")} {
		if err := os.WriteFile(p, []byte("hi\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{filepath.Join(dir, "**", "*.txt")}, 10*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	if w.Count() != 2 {
		t.Errorf("expected 2 watched files, got %v", w.Paths())
	}
}

func TestEmitsInitialAndOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{path}, 20*time.Millisecond, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	abs, _ := filepath.Abs(path)
	if got := next(t, w.Changes()); got != abs {
		t.Errorf("expected initial %q, got %q", abs, got)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("second\n")
	_, _ = f.WriteString("third\n")
	f.Close()

	if got := next(t, w.Changes()); got != abs {
		t.Errorf("expected change for %q, got %q", abs, got)
	}

	cancel()
	time.Sleep(100 * time.Millisecond)
}

func TestNoMatches(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "*.txt")}, 0, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer w.fsw.Close()

	if w.Count() != 0 {
		t.Errorf("expected no watched files, got %v", w.Paths())
	}
}
