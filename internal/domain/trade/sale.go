package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is one billed sale for a client in a given month. A client can have
// several sales rows inside the same period; reconciliation always works on
// the per-client sum.
type Sale struct {
	shared.BaseEntity
	ClientID       uuid.UUID
	ClientCode     string
	IssuedAt       time.Time
	Total          decimal.Decimal
	// SpecialObjectiveValue is an incentive amount the distributor reports
	// inside the same gross-sales figure. It is kept separate here so the
	// reconciliation report can break it out for display.
	SpecialObjectiveValue decimal.Decimal
	Returns               []SaleReturn
}

// SaleReturn is a reversal or replacement adjustment attached to a sale.
type SaleReturn struct {
	shared.BaseEntity
	SaleID            uuid.UUID
	OccurredAt        time.Time
	ReturnedAmount    decimal.Decimal
	ReplacementAmount decimal.Decimal
}

// NetValue is the value the distributor's gross-sales statement should agree
// with: sale total minus returned amounts plus replacement amounts, plus the
// special objective value.
func (s *Sale) NetValue() decimal.Decimal {
	net := s.Total
	for _, r := range s.Returns {
		net = net.Sub(r.ReturnedAmount).Add(r.ReplacementAmount)
	}
	return net.Add(s.SpecialObjectiveValue)
}

// SaleRepository defines read access to the sales ledger
type SaleRepository interface {
	// ListForPeriod returns every sale issued inside the period, with
	// returns eagerly loaded. Reconciliation fetches the whole period once
	// and groups in memory rather than querying per client.
	ListForPeriod(ctx context.Context, period shared.Period) ([]Sale, error)
}
