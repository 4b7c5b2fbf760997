package subm

import (
	"context"
	"fmt"
	"sync"
)

// InMemRepo is an in-memory submission repo used in tests.
type InMemRepo struct {
	mu    sync.RWMutex
	subms map[string]Submission
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{
		subms: make(map[string]Submission),
	}
}

// Create implements Repo
func (r *InMemRepo) Create(ctx context.Context, s *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subms[s.ID]; ok {
		return fmt.Errorf("submission %s already exists", s.ID)
	}
	r.subms[s.ID] = *s
	return nil
}

// Get implements Repo
func (r *InMemRepo) Get(ctx context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.subms[id]; ok {
		cp := s
		cp.Responses = append([]Response(nil), s.Responses...)
		cp.MediaURLs = append([]string(nil), s.MediaURLs...)
		return &cp, nil
	}
	return nil, nil
}

// Save implements Repo
func (r *InMemRepo) Save(ctx context.Context, s *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subms[s.ID] = *s
	return nil
}

// List implements Repo
func (r *InMemRepo) List(ctx context.Context) ([]*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subms := make([]*Submission, 0, len(r.subms))
	for _, s := range r.subms {
		s := s
		subms = append(subms, &s)
	}
	return subms, nil
}
