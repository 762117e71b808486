package repository

import (
	"context"
	"errors"

	"debt-planner/domain"
)

// ErrPlanNotFound is returned when a plan run id has no stored record.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepository stores completed simulation runs for later retrieval.
type PlanRepository interface {
	Save(ctx context.Context, run domain.PlanRun) error
	Get(ctx context.Context, id string) (domain.PlanRun, error)
	List(ctx context.Context, limit int) ([]domain.PlanRun, error)
}
