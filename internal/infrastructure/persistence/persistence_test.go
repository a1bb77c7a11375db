package persistence

import (
	"testing"
	"time"

	"github.com/salesops/backend/internal/domain/partner"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/salesops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.ClientModel{},
		&models.SaleModel{},
		&models.SaleReturnModel{},
		&models.InvoiceModel{},
		&models.InstallmentModel{},
		&models.ReconciliationRunModel{},
		&models.LineItemModel{},
	))

	return db
}

func newTestClient(code, name string) *partner.Client {
	return &partner.Client{
		BaseEntity:      shared.NewBaseEntity(),
		DistributorCode: code,
		Name:            name,
		Active:          true,
	}
}

func newTestSale(client *partner.Client, issuedAt time.Time, total string) *trade.Sale {
	return &trade.Sale{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   client.ID,
		ClientCode: client.DistributorCode,
		IssuedAt:   issuedAt,
		Total:      decimal.RequireFromString(total),
	}
}
