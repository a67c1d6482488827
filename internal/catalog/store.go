package catalog

import (
	"context"
	"sync"
	"time"

	"mangashelf/pkg/models"
)

// Store holds the current collection. Replacing it swaps the whole slice;
// readers keep whatever snapshot they already took.
type Store struct {
	mu       sync.RWMutex
	items    []models.Item
	loaded   bool
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{items: []models.Item{}}
}

func (s *Store) Replace(items []models.Item) {
	if items == nil {
		items = []models.Item{}
	}
	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Items returns the current snapshot. Callers must not modify it.
func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Reload runs the loader and replaces the collection with its result, even
// when that result is empty.
func (s *Store) Reload(ctx context.Context, l *Loader) int {
	items := l.Load(ctx)
	s.Replace(items)
	return len(items)
}

// Get finds an item by id in the current snapshot.
func (s *Store) Get(id models.ItemID) (models.Item, bool) {
	for _, it := range s.Items() {
		if it.ID == id {
			return it, true
		}
	}
	return models.Item{}, false
}
