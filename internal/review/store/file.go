package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"benchreview/pkg/platform/sentinel"
)

// FileStore loads and persists the dataset as a single record file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a store backed by the record file at path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{path: path, logger: logger}
}

// Path is the record file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole record file. A missing file wraps sentinel.ErrNotFound;
// any other open or read failure wraps sentinel.ErrUnavailable.
func (s *FileStore) Load(ctx context.Context) (*Index, LoadStats, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, LoadStats{}, fmt.Errorf("dataset file %s: %w", s.path, sentinel.ErrNotFound)
		}
		return nil, LoadStats{}, fmt.Errorf("opening dataset file %s: %w: %w", s.path, sentinel.ErrUnavailable, err)
	}
	defer f.Close()

	idx, stats, err := Load(ctx, f, s.logger.With("file", s.path))
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return idx, stats, nil
}

// Persist atomically replaces the record file with content.
func (s *FileStore) Persist(_ context.Context, content []byte) error {
	if err := AtomicReplace(s.path, content); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
