package reconciliation

import (
	"context"
	"testing"

	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installmentInvoice builds a 1000.00 invoice with net-of-tax 900.00,
// commission 50.00 and installments of 400.00 and 600.00. Prorated internal
// values for installment 1 are net 360.00 and commission 20.00.
func installmentInvoice() *trade.Invoice {
	netOfTax := decimal.RequireFromString("900.00")
	inv := &trade.Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Total:      decimal.RequireFromString("1000.00"),
		NetOfTax:   &netOfTax,
		Commission: decimal.RequireFromString("50.00"),
	}
	inv.Installments = []trade.Installment{
		{BaseEntity: shared.NewBaseEntity(), InvoiceID: inv.ID, Sequence: 1, Amount: decimal.RequireFromString("400.00")},
		{BaseEntity: shared.NewBaseEntity(), InvoiceID: inv.ID, Sequence: 2, Amount: decimal.RequireFromString("600.00")},
	}
	return inv
}

func commissionLine(code string, number, seq int, net, commission string) CommissionLine {
	return CommissionLine{
		ClientCode:     code,
		DocumentNumber: number,
		InstallmentSeq: seq,
		NetValue:       decimal.RequireFromString(net),
		Commission:     decimal.RequireFromString(commission),
	}
}

func TestCommissionMatcherInstallmentProration(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addInvoice(client.ID, 4401, installmentInvoice())
	matcher := NewCommissionMatcher(ledger)

	result, err := matcher.Match(context.Background(), &CommissionStatement{
		Lines: []CommissionLine{commissionLine("12345", 4401, 1, "360.00", "20.00")},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.True(t, item.Matched)
	decPtrEqual(t, "360.00", item.InternalNet)
	decPtrEqual(t, "20.00", item.InternalCommission)
	require.NotNil(t, item.InternalInstallmentID)
	decPtrEqual(t, "0", item.NetDifference)
	decPtrEqual(t, "0", item.CommissionDifference)
}

func TestCommissionMatcherNetToleranceBoundary(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addInvoice(client.ID, 4401, installmentInvoice())
	matcher := NewCommissionMatcher(ledger)

	t.Run("exactly 0.10 off matches", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 4401, 1, "360.10", "20.00")},
		})
		require.NoError(t, err)
		item := result.Items[0]
		assert.True(t, item.Matched)
		decPtrEqual(t, "0", item.NetDifference)
	})

	t.Run("0.11 off is a value mismatch", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 4401, 1, "360.11", "20.00")},
		})
		require.NoError(t, err)
		item := result.Items[0]
		assert.False(t, item.Matched)
		require.NotNil(t, item.Kind)
		assert.Equal(t, DiscrepancyValueMismatch, *item.Kind)
		decPtrEqual(t, "0.11", item.NetDifference)
		// The commission difference is still recorded.
		decPtrEqual(t, "0", item.CommissionDifference)
	})
}

func TestCommissionMatcherCommissionToleranceBoundary(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addInvoice(client.ID, 4401, installmentInvoice())
	matcher := NewCommissionMatcher(ledger)

	t.Run("exactly 0.15 off matches", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 4401, 1, "360.00", "20.15")},
		})
		require.NoError(t, err)
		assert.True(t, result.Items[0].Matched)
	})

	t.Run("0.16 off is a commission mismatch", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 4401, 1, "360.00", "20.16")},
		})
		require.NoError(t, err)
		item := result.Items[0]
		require.NotNil(t, item.Kind)
		assert.Equal(t, DiscrepancyCommissionMismatch, *item.Kind)
		decPtrEqual(t, "0.16", item.CommissionDifference)
	})
}

func TestCommissionMatcherResolutionFailures(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addInvoice(client.ID, 4401, installmentInvoice())
	matcher := NewCommissionMatcher(ledger)

	tests := []struct {
		name string
		line CommissionLine
		kind DiscrepancyKind
	}{
		{"unknown client", commissionLine("99999", 4401, 1, "360.00", "20.00"), DiscrepancyClientNotFound},
		{"unknown invoice", commissionLine("12345", 9999, 1, "360.00", "20.00"), DiscrepancyInvoiceNotFound},
		{"unknown installment", commissionLine("12345", 4401, 3, "360.00", "20.00"), DiscrepancyInstallmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := matcher.Match(context.Background(), &CommissionStatement{
				Lines: []CommissionLine{tt.line},
			})
			require.NoError(t, err)
			item := result.Items[0]
			assert.False(t, item.Matched)
			require.NotNil(t, item.Kind)
			assert.Equal(t, tt.kind, *item.Kind)
			assert.Nil(t, item.InternalNet)
		})
	}
}

func TestCommissionMatcherSingleInvoice(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	netOfTax := decimal.RequireFromString("450.00")
	ledger.addInvoice(client.ID, 7700, &trade.Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Total:      decimal.RequireFromString("500.00"),
		NetOfTax:   &netOfTax,
		Commission: decimal.RequireFromString("25.00"),
	})
	matcher := NewCommissionMatcher(ledger)

	t.Run("sequence 1 compares against the whole invoice", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 7700, 1, "450.00", "25.00")},
		})
		require.NoError(t, err)
		item := result.Items[0]
		assert.True(t, item.Matched)
		decPtrEqual(t, "450.00", item.InternalNet)
		decPtrEqual(t, "25.00", item.InternalCommission)
		assert.Nil(t, item.InternalInstallmentID)
	})

	t.Run("any other sequence is installment-not-found", func(t *testing.T) {
		result, err := matcher.Match(context.Background(), &CommissionStatement{
			Lines: []CommissionLine{commissionLine("12345", 7700, 2, "450.00", "25.00")},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Items[0].Kind)
		assert.Equal(t, DiscrepancyInstallmentNotFound, *result.Items[0].Kind)
	})
}

func TestCommissionMatcherRunTotalsAreLineSums(t *testing.T) {
	ledger := newFakeLedger()
	client := ledger.addClient("12345")
	ledger.addInvoice(client.ID, 4401, installmentInvoice())
	matcher := NewCommissionMatcher(ledger)

	result, err := matcher.Match(context.Background(), &CommissionStatement{
		Lines: []CommissionLine{
			commissionLine("12345", 4401, 1, "360.00", "20.00"),
			commissionLine("12345", 4401, 2, "540.00", "30.00"),
			commissionLine("99999", 1, 1, "100.00", "5.00"),
		},
	})
	require.NoError(t, err)

	// 360 + 540 from the two resolved installments; the unresolved line
	// contributes nothing internal.
	assert.True(t, result.InternalNet.Equal(decimal.RequireFromString("900.00")), "net %s", result.InternalNet)
	assert.True(t, result.InternalCommission.Equal(decimal.RequireFromString("50.00")))
}
