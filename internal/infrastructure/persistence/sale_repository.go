package persistence

import (
	"context"

	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/salesops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// ListForPeriod returns every sale issued inside the period with returns
// eagerly loaded. The period is the half-open interval [Start, End).
func (r *GormSaleRepository) ListForPeriod(ctx context.Context, period shared.Period) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Returns").
		Where("issued_at >= ? AND issued_at < ?", period.Start(), period.End()).
		Order("issued_at").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]trade.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales, nil
}

// Save inserts or updates a sale with its returns
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Save(&model).Error
}
