package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/tiler/pkg/layoutfile"
)

// Memory is an in-memory Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

func (m *Memory) Save(ctx context.Context, def *layoutfile.Definition) (*Record, error) {
	rec, err := newRecord(def)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.records[rec.ID] = rec
	m.mu.Unlock()
	return rec, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return rec, nil
}

func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	out := make([]Summary, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.Summary())
	}
	m.mu.RUnlock()
	sortSummaries(out)
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return notFound(id)
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) Close() error { return nil }

// sortSummaries orders newest first, then by ID for a stable listing.
func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Store = (*Memory)(nil)
