package exam

import (
	"context"
	"sync"
)

// InMemRepo is an in-memory exam repo used in tests.
type InMemRepo struct {
	mu    sync.RWMutex
	exams map[string]Exam
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{
		exams: make(map[string]Exam),
	}
}

// Store implements Repo
func (r *InMemRepo) Store(ctx context.Context, e *Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[e.ID] = *e
	return nil
}

// Get implements Repo
func (r *InMemRepo) Get(ctx context.Context, id string) (*Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.exams[id]; ok {
		return &e, nil
	}
	return nil, nil
}

// List implements Repo
func (r *InMemRepo) List(ctx context.Context) ([]*Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exams := make([]*Exam, 0, len(r.exams))
	for _, e := range r.exams {
		e := e
		exams = append(exams, &e)
	}
	return exams, nil
}
