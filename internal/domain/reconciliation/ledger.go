package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/partner"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
)

// Ledger is the read-only view of the internal ledger the matchers consume.
// Implementations live in infrastructure; the matchers never write through
// it.
type Ledger interface {
	// FindClientByCode resolves a client by distributor code. Returns
	// shared.ErrNotFound when no client carries the code.
	FindClientByCode(ctx context.Context, code string) (*partner.Client, error)

	// FindInvoiceByClientAndNumber resolves an invoice with its
	// installments eagerly loaded. Returns shared.ErrNotFound when
	// absent.
	FindInvoiceByClientAndNumber(ctx context.Context, clientID uuid.UUID, number int) (*trade.Invoice, error)

	// ListSalesForPeriod returns every sale of the period with returns
	// and special-objective values eagerly loaded.
	ListSalesForPeriod(ctx context.Context, period shared.Period) ([]trade.Sale, error)
}
