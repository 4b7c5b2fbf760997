package userdetail

import (
	"context"
	"sync"
)

// InMemRepo is an in-memory detail store used in tests.
type InMemRepo struct {
	mu      sync.RWMutex
	details map[string]Detail
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{details: make(map[string]Detail)}
}

func (r *InMemRepo) Store(_ context.Context, d *Detail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details[d.UserID] = *d
	return nil
}

func (r *InMemRepo) Get(_ context.Context, userID string) (*Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.details[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *InMemRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.details, userID)
	return nil
}

func (r *InMemRepo) List(_ context.Context) ([]*Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	details := make([]*Detail, 0, len(r.details))
	for _, d := range r.details {
		found := d
		details = append(details, &found)
	}
	return details, nil
}
