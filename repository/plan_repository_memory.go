package repository

import (
	"context"
	"sync"

	"debt-planner/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository,
// used in tests and when no store path is configured.
type PlanRepositoryMemory struct {
	mu    sync.RWMutex
	runs  map[string]domain.PlanRun
	order []string // insertion order, newest last
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		runs: make(map[string]domain.PlanRun),
	}
}

func (r *PlanRepositoryMemory) Save(_ context.Context, run domain.PlanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.runs[run.ID]; !exists {
		r.order = append(r.order, run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

func (r *PlanRepositoryMemory) Get(_ context.Context, id string) (domain.PlanRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return domain.PlanRun{}, ErrPlanNotFound
	}
	return run, nil
}

func (r *PlanRepositoryMemory) List(_ context.Context, limit int) ([]domain.PlanRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}
	out := make([]domain.PlanRun, 0, limit)
	// Newest first.
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[r.order[i]])
	}
	return out, nil
}
