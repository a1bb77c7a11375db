package reconciliation

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

func testPeriod(t *testing.T) shared.Period {
	t.Helper()
	p, err := shared.NewPeriod(12, 2025)
	require.NoError(t, err)
	return p
}

func decPtrEqual(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "got %s, want %s", got, want)
}

func TestSalesMatcherMatchesWithinTolerance(t *testing.T) {
	ledger := newFakeLedger()
	period := testPeriod(t)
	client := ledger.addClient("12345")
	issued := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)

	// Two sales rows for the same client in the month, one carrying a
	// return with partial replacement: net = (100-10+5) + 40 = 135.
	ledger.addSale(client.ID, "12345", issued, "100.00", "0", trade.SaleReturn{
		ReturnedAmount:    decimal.RequireFromString("10.00"),
		ReplacementAmount: decimal.RequireFromString("5.00"),
	})
	ledger.addSale(client.ID, "12345", issued, "40.00", "0")

	matcher := NewSalesMatcher(ledger)

	t.Run("exact value matches", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), period, &SalesStatement{
			Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("135.00")}},
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)

		item := result.Items[0]
		assert.True(t, item.Matched)
		assert.Nil(t, item.Kind)
		decPtrEqual(t, "135.00", item.InternalNet)
		decPtrEqual(t, "0", item.NetDifference)
		assert.True(t, result.InternalNet.Equal(decimal.RequireFromString("135.00")))
	})

	t.Run("one cent off still matches", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), period, &SalesStatement{
			Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("135.01")}},
		})
		require.NoError(t, err)
		item := result.Items[0]
		assert.True(t, item.Matched)
		// The difference is forced to exactly zero on a match.
		decPtrEqual(t, "0", item.NetDifference)
	})

	t.Run("two cents off is a value mismatch", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), period, &SalesStatement{
			Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("135.02")}},
		})
		require.NoError(t, err)
		item := result.Items[0]
		assert.False(t, item.Matched)
		require.NotNil(t, item.Kind)
		assert.Equal(t, DiscrepancyValueMismatch, *item.Kind)
		decPtrEqual(t, "0.02", item.NetDifference)
	})
}

func TestSalesMatcherClientNotFound(t *testing.T) {
	ledger := newFakeLedger()
	matcher := NewSalesMatcher(ledger)

	result, err := matcher.Match(context.Background(), testPeriod(t), &SalesStatement{
		Lines: []SalesLine{{ClientCode: "99999", ClientName: "DESCONHECIDO", Net: decimal.RequireFromString("50.00")}},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.False(t, item.Matched)
	require.NotNil(t, item.Kind)
	assert.Equal(t, DiscrepancyClientNotFound, *item.Kind)
	assert.Nil(t, item.InternalNet)
	assert.Nil(t, item.InternalClientID)
}

func TestSalesMatcherSaleNotFound(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("77777")
	matcher := NewSalesMatcher(ledger)

	result, err := matcher.Match(context.Background(), testPeriod(t), &SalesStatement{
		Lines: []SalesLine{{ClientCode: "77777", Net: decimal.RequireFromString("50.00")}},
	})
	require.NoError(t, err)

	item := result.Items[0]
	require.NotNil(t, item.Kind)
	assert.Equal(t, DiscrepancySaleNotFound, *item.Kind)
	require.NotNil(t, item.InternalClientID)
	assert.Equal(t, client.ID, *item.InternalClientID)
	assert.Nil(t, item.InternalNet)
}

func TestSalesMatcherExtraSale(t *testing.T) {
	ledger := newFakeLedger()
	period := testPeriod(t)
	issued := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	mentioned := ledger.addClient("12345")
	ledger.addSale(mentioned.ID, "12345", issued, "100.00", "0")
	unmentioned := ledger.addClient("55555")
	ledger.addSale(unmentioned.ID, "55555", issued, "80.00", "0")

	matcher := NewSalesMatcher(ledger)
	result, err := matcher.Match(context.Background(), period, &SalesStatement{
		Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("100.00")}},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	extra := result.Items[1]
	assert.Equal(t, "55555", extra.ClientCode)
	require.NotNil(t, extra.Kind)
	assert.Equal(t, DiscrepancyExtraSale, *extra.Kind)
	decPtrEqual(t, "80.00", extra.InternalNet)
	// Difference is the negation of the internal value.
	decPtrEqual(t, "-80.00", extra.NetDifference)
	assert.True(t, extra.ExternalNet.IsZero())

	// The run total is a true period total across both clients.
	assert.True(t, result.InternalNet.Equal(decimal.RequireFromString("180.00")))
}

func TestSalesMatcherObjectiveValueInNet(t *testing.T) {
	ledger := newFakeLedger()
	period := testPeriod(t)
	issued := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	client := ledger.addClient("12345")
	ledger.addSale(client.ID, "12345", issued, "100.00", "25.00")

	matcher := NewSalesMatcher(ledger)
	result, err := matcher.Match(context.Background(), period, &SalesStatement{
		Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("125.00")}},
	})
	require.NoError(t, err)

	item := result.Items[0]
	assert.True(t, item.Matched)
	decPtrEqual(t, "125.00", item.InternalNet)
	// The objective share stays broken out for display.
	decPtrEqual(t, "25.00", item.InternalObjective)
}

func TestSalesMatcherIgnoresSalesOutsidePeriod(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addSale(client.ID, "12345", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), "999.00", "0")
	ledger.addSale(client.ID, "12345", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "60.00", "0")

	matcher := NewSalesMatcher(ledger)
	result, err := matcher.Match(context.Background(), testPeriod(t), &SalesStatement{
		Lines: []SalesLine{{ClientCode: "12345", Net: decimal.RequireFromString("60.00")}},
	})
	require.NoError(t, err)
	assert.True(t, result.Items[0].Matched)
	assert.True(t, result.InternalNet.Equal(decimal.RequireFromString("60.00")))
}
