package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	recon "github.com/salesops/backend/internal/domain/reconciliation"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReconciliationRunRepository implements RunRepository using GORM
type GormReconciliationRunRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRunRepository creates a new
// GormReconciliationRunRepository
func NewGormReconciliationRunRepository(db *gorm.DB) *GormReconciliationRunRepository {
	return &GormReconciliationRunRepository{db: db}
}

// ReplaceForPeriod deletes any existing run for the run's (type, month, year)
// key and inserts the new run, items included, inside one transaction. A
// failure rolls back and leaves the prior run intact.
func (r *GormReconciliationRunRepository) ReplaceForPeriod(ctx context.Context, run *recon.ReconciliationRun) error {
	var model models.ReconciliationRunModel
	model.FromDomain(run)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.ReconciliationRunModel
		err := tx.Where("type = ? AND month = ? AND year = ?", model.Type, model.Month, model.Year).
			First(&prior).Error
		switch {
		case err == nil:
			if err := tx.Where("run_id = ?", prior.ID).Delete(&models.LineItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&prior).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Create(&model).Error
	})
}

// FindByID loads a run with its items ordered by position
func (r *GormReconciliationRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*recon.ReconciliationRun, error) {
	var model models.ReconciliationRunModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForPeriod loads the run for a (type, month, year) key with its items
func (r *GormReconciliationRunRepository) FindForPeriod(ctx context.Context, t recon.StatementType, period shared.Period) (*recon.ReconciliationRun, error) {
	var model models.ReconciliationRunModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("type = ? AND month = ? AND year = ?", t.String(), period.Month, period.Year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns run summaries without items, newest first
func (r *GormReconciliationRunRepository) List(ctx context.Context, filter recon.RunFilter) ([]recon.ReconciliationRun, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReconciliationRunModel{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var runModels []models.ReconciliationRunModel
	if err := query.Order("year DESC, month DESC, type").Find(&runModels).Error; err != nil {
		return nil, 0, err
	}

	runs := make([]recon.ReconciliationRun, len(runModels))
	for i := range runModels {
		runs[i] = *runModels[i].ToDomain()
	}
	return runs, total, nil
}
