package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
)

// FileStore keeps each figure as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/specbox/figures/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "specbox", "figures")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create figure dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Create(ctx context.Context, name string, f *figure.Figure) (*Record, error) {
	t := now()
	rec := &Record{ID: NewID(), Name: name, Figure: f, CreatedAt: t, UpdatedAt: t}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateFigureID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read figure dir")
	}
	out := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		rec, err := s.read(id)
		if err != nil {
			continue
		}
		out = append(out, rec.summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Update(ctx context.Context, id string, f *figure.Figure) (*Record, error) {
	if err := errors.ValidateFigureID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(id)
	if err != nil {
		return nil, err
	}
	rec.Figure = f
	rec.UpdatedAt = now()
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateFigureID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "remove figure file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the figure files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(id string) (*Record, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read figure file")
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "parse figure %s", id)
	}
	return &rec, nil
}

func (s *FileStore) write(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFigure, err, "marshal figure")
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write figure file")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
