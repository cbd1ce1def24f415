package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps entries in a map. It is used by tests and by runs that
// do not persist the catalog.
type MemoryStore struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Save stores a copy of entry.
func (s *MemoryStore) Save(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	cp.ConfigJSON = append([]byte(nil), entry.ConfigJSON...)
	s.entries[entry.ID] = &cp
	return nil
}

// Get returns the newest entry for pony.
func (s *MemoryStore) Get(ctx context.Context, pony string) (*Entry, error) {
	entries, _ := s.List(ctx, Query{Pony: pony, Limit: 1})
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries[0], nil
}

// List returns matching entries, newest first.
func (s *MemoryStore) List(ctx context.Context, query Query) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if query.matches(e) {
			cp := *e
			results = append(results, &cp)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ConvertedAt.Equal(results[j].ConvertedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].ConvertedAt.After(results[j].ConvertedAt)
	})

	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Prune deletes entries converted before olderThan.
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, e := range s.entries {
		if e.ConvertedAt.Before(olderThan) {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close drops all entries.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	return nil
}
