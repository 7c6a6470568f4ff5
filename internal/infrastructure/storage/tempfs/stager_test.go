package tempfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageWritesAndReleases(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStager(dir)
	if err != nil {
		t.Fatalf("NewStager() error = %v", err)
	}

	path, release, err := s.Stage(context.Background(), "Jane CV.PDF", bytes.NewBufferString("content"))
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, ".pdf") {
		t.Fatalf("unexpected staged path %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "content" {
		t.Fatalf("unexpected staged content %q, err=%v", raw, err)
	}

	release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	release()
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestStageCleansUpOnWriteError(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStager(dir)

	if _, _, err := s.Stage(context.Background(), "a.pdf", failingReader{}); err == nil {
		t.Fatalf("expected error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no leftover temp files, got %d", len(entries))
	}
}

func TestStageHonoursCancelledContext(t *testing.T) {
	s, _ := NewStager(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := s.Stage(ctx, "a.pdf", bytes.NewBufferString("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
