package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/shared"
)

// RunFilter holds optional filters for run listings
type RunFilter struct {
	Type   StatementType
	Month  int
	Year   int
	Limit  int
	Offset int
}

// RunRepository persists reconciliation runs. A run is terminal once stored;
// the only write after creation is whole-run replacement for the same
// (type, month, year) key.
type RunRepository interface {
	// ReplaceForPeriod atomically deletes any existing run for the run's
	// (type, month, year) key, items included, and inserts the new run.
	// Either both steps are visible or neither; a failure leaves the
	// prior run intact.
	ReplaceForPeriod(ctx context.Context, run *ReconciliationRun) error

	// FindByID loads a run with its items. Returns shared.ErrNotFound
	// when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*ReconciliationRun, error)

	// FindForPeriod loads the run for a (type, month, year) key, items
	// included. Returns shared.ErrNotFound when absent.
	FindForPeriod(ctx context.Context, t StatementType, period shared.Period) (*ReconciliationRun, error)

	// List returns run summaries (no items) matching the filter.
	List(ctx context.Context, filter RunFilter) ([]ReconciliationRun, int64, error)
}
