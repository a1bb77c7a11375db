package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Invoice is an internal billing record (cobrança), possibly split into
// installments. Number is the document number the distributor echoes back on
// commission statements.
type Invoice struct {
	shared.BaseEntity
	ClientID   uuid.UUID
	Number     int
	Series     string
	IssuedAt   time.Time
	Total      decimal.Decimal
	// NetOfTax is the invoice value net of taxes. Nil when the issuer did
	// not break taxes out; comparisons then fall back to Total.
	NetOfTax     *decimal.Decimal
	Commission   decimal.Decimal
	Installments []Installment
}

// Installment is one scheduled payment slice (parcela) of an invoice.
// Sequence is 1-based and unique within the invoice.
type Installment struct {
	shared.BaseEntity
	InvoiceID uuid.UUID
	Sequence  int
	DueAt     time.Time
	Amount    decimal.Decimal
}

// HasInstallments reports whether the invoice is installment-based.
func (i *Invoice) HasInstallments() bool {
	return len(i.Installments) > 0
}

// InstallmentBySequence returns the installment with the given sequence
// number, or nil.
func (i *Invoice) InstallmentBySequence(seq int) *Installment {
	for idx := range i.Installments {
		if i.Installments[idx].Sequence == seq {
			return &i.Installments[idx]
		}
	}
	return nil
}

// TaxRatio is net-of-tax value divided by total, used to prorate installment
// amounts for comparison against tax-exclusive external figures. Defaults to
// 1 when NetOfTax is absent or the total is zero.
func (i *Invoice) TaxRatio() decimal.Decimal {
	one := decimal.NewFromInt(1)
	if i.NetOfTax == nil || i.Total.IsZero() {
		return one
	}
	return i.NetOfTax.Div(i.Total)
}

// InvoiceRepository defines read access to invoices
type InvoiceRepository interface {
	// FindByClientAndNumber resolves an invoice by owning client and
	// document number, with installments eagerly loaded. Returns
	// shared.ErrNotFound when absent.
	FindByClientAndNumber(ctx context.Context, clientID uuid.UUID, number int) (*Invoice, error)
}
