package task

import (
	"context"
	"sync"
)

// InMemRepo is an in-memory task repo used in tests.
type InMemRepo struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{
		tasks: make(map[string]Task),
	}
}

// Store implements Repo
func (r *InMemRepo) Store(ctx context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *t
	return nil
}

// Get implements Repo
func (r *InMemRepo) Get(ctx context.Context, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// List implements Repo
func (r *InMemRepo) List(ctx context.Context) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		t := t
		tasks = append(tasks, &t)
	}
	return tasks, nil
}
