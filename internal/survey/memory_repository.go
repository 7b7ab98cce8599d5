package survey

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Survey
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Survey)}
}

func (r *memoryRepository) Create(_ context.Context, s Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[s.ID] = s
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.storage[id]
	if !ok {
		return Survey{}, ErrNotFound
	}
	return s, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Survey
	for _, s := range r.storage {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, s Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[s.ID]; !ok {
		return ErrNotFound
	}
	r.storage[s.ID] = s
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return ErrNotFound
	}
	delete(r.storage, id)
	return nil
}
