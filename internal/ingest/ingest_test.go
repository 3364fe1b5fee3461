package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/atikulmunna/chatlens/internal/apperr"
)

func TestLoadFileText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	content := "alice: good morning 😊\nbob: https://x.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(0, zaptest.NewLogger(t))
	up, err := r.LoadFile("alice@example.com", path)
	if err != nil {
		t.Fatal(err)
	}

	if up.Text != content {
		t.Errorf("expected content round-trip, got %q", up.Text)
	}
	if up.Source != path {
		t.Errorf("expected source %q, got %q", path, up.Source)
	}
	if up.Owner != "alice@example.com" {
		t.Errorf("expected owner alice@example.com, got %q", up.Owner)
	}
}

func TestLoadEmpty(t *testing.T) {
	r := New(0, zaptest.NewLogger(t))

	up, err := r.Load("local", "empty.txt", strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected empty export to be accepted, got %v", err)
	}
	if up.Text != "" {
		t.Errorf("expected empty text, got %q", up.Text)
	}
}

func TestLoadRejectsBinary(t *testing.T) {
	r := New(0, zaptest.NewLogger(t))
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"

	_, err := r.Load("local", "photo.png", strings.NewReader(png))
	if err == nil {
		t.Fatal("expected error for binary upload")
	}
	if apperr.KindOf(err) != apperr.KindUnreadable {
		t.Errorf("expected %s, got %s", apperr.KindUnreadable, apperr.KindOf(err))
	}
}

func TestLoadTooLarge(t *testing.T) {
	r := New(8, zaptest.NewLogger(t))

	_, err := r.Load("local", "big.txt", strings.NewReader("this is longer than eight bytes"))
	if apperr.KindOf(err) != apperr.KindTooLarge {
		t.Errorf("expected %s, got %v", apperr.KindTooLarge, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	r := New(0, zaptest.NewLogger(t))

	_, err := r.LoadFile("local", filepath.Join(t.TempDir(), "nope.txt"))
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected %s, got %v", apperr.KindNotFound, err)
	}
}
