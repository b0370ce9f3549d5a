package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02T15-04-05"

// maxAttempts bounds the collision counter.
const maxAttempts = 1000

// Storage handles calendar output files
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir, creating the directory if needed.
// A leading "~/" is expanded to the home directory.
func New(dir string) (*Storage, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("output path %s is not a directory", dir)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("checking output directory: %w", err)
	}

	return &Storage{dir: dir}, nil
}

// Dir returns the resolved output directory.
func (s *Storage) Dir() string {
	return s.dir
}

// candidatePath returns the file name for attempt n; attempt 0 has no suffix.
func (s *Storage) candidatePath(prefix string, now time.Time, n int) string {
	name := fmt.Sprintf("%s-%s", prefix, now.UTC().Format(timestampLayout))
	if n > 0 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	return filepath.Join(s.dir, name+".ics")
}

// WriteCalendar writes content to a new file and returns its path.
func (s *Storage) WriteCalendar(prefix, content string, now time.Time) (string, error) {
	for n := 0; n < maxAttempts; n++ {
		path := s.candidatePath(prefix, now, n)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating calendar file: %w", err)
		}

		if _, err := f.WriteString(content); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("writing calendar file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing calendar file: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free file name for %s after %d attempts", s.candidatePath(prefix, now, 0), maxAttempts)
}
