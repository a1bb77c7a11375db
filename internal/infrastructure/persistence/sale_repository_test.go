package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSaleRepositoryListForPeriod(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clients := NewGormClientRepository(db)
	repo := NewGormSaleRepository(db)

	client := newTestClient("12345", "Mercado Bom Preco LTDA")
	require.NoError(t, clients.Save(ctx, client))

	december := newTestSale(client, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), "150.00")
	december.Returns = []trade.SaleReturn{{
		BaseEntity:        shared.NewBaseEntity(),
		SaleID:            december.ID,
		OccurredAt:        time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		ReturnedAmount:    decimal.RequireFromString("20.00"),
		ReplacementAmount: decimal.RequireFromString("5.00"),
	}}
	november := newTestSale(client, time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC), "80.00")
	january := newTestSale(client, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "60.00")

	for _, s := range []*trade.Sale{december, november, january} {
		require.NoError(t, repo.Save(ctx, s))
	}

	period, err := shared.NewPeriod(12, 2025)
	require.NoError(t, err)

	sales, err := repo.ListForPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got := sales[0]
	assert.Equal(t, december.ID, got.ID)
	assert.Equal(t, "12345", got.ClientCode)
	require.Len(t, got.Returns, 1)
	// Net: 150 - 20 returned + 5 replacement.
	assert.True(t, got.NetValue().Equal(decimal.RequireFromString("135.00")),
		"net %s", got.NetValue())
}

func TestGormSaleRepositoryListForPeriodEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	period, err := shared.NewPeriod(6, 2025)
	require.NoError(t, err)

	sales, err := repo.ListForPeriod(context.Background(), period)
	require.NoError(t, err)
	assert.Empty(t, sales)
}
