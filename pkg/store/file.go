package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/tiler/pkg/layoutfile"
)

// FileStore keeps one indented JSON record per layout in a directory, by
// default ~/.config/tiler/layouts.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore opens or creates the store in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "tiler", "layouts")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) file(id string) string { return filepath.Join(s.dir, id+".json") }

func (s *FileStore) Save(ctx context.Context, def *layoutfile.Definition) (*Record, error) {
	rec, err := newRecord(def)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.file(rec.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return nil, fmt.Errorf("write layout %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmp, s.file(rec.ID)); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("write layout %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.file(id), id)
}

func (s *FileStore) read(path, id string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse layout file %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	out := []Summary{}
	for _, f := range files {
		// Unreadable records are skipped rather than failing the listing.
		if rec, err := s.read(f, filepath.Base(f)); err == nil {
			out = append(out, rec.Summary())
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.file(id))
	switch {
	case os.IsNotExist(err):
		return notFound(id)
	case err != nil:
		return fmt.Errorf("remove layout %s: %w", id, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the store directory.
func (s *FileStore) Path() string { return s.dir }

var _ Store = (*FileStore)(nil)
