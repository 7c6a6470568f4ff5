package tempfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Stager writes documents to uniquely named temporary files so file-based
// extractors can read them. Callers must invoke the returned release func.
type Stager struct {
	dir string
}

func NewStager(dir string) (*Stager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &Stager{dir: dir}, nil
}

func (s *Stager) Stage(ctx context.Context, name string, data io.Reader) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	f, err := os.CreateTemp(s.dir, "resume-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("temp_file_remove_failed", "path", path, "error", err)
		}
	}

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		release()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, release, nil
}
