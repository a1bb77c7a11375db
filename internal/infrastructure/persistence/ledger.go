package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/partner"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormLedger bundles the client, sale and invoice repositories behind the
// read-only view the matchers consume.
type GormLedger struct {
	clients  *GormClientRepository
	sales    *GormSaleRepository
	invoices *GormInvoiceRepository
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{
		clients:  NewGormClientRepository(db),
		sales:    NewGormSaleRepository(db),
		invoices: NewGormInvoiceRepository(db),
	}
}

// FindClientByCode resolves a client by distributor code
func (l *GormLedger) FindClientByCode(ctx context.Context, code string) (*partner.Client, error) {
	return l.clients.FindByDistributorCode(ctx, code)
}

// FindInvoiceByClientAndNumber resolves an invoice with installments loaded
func (l *GormLedger) FindInvoiceByClientAndNumber(ctx context.Context, clientID uuid.UUID, number int) (*trade.Invoice, error) {
	return l.invoices.FindByClientAndNumber(ctx, clientID, number)
}

// ListSalesForPeriod returns every sale of the period with returns loaded
func (l *GormLedger) ListSalesForPeriod(ctx context.Context, period shared.Period) ([]trade.Sale, error) {
	return l.sales.ListForPeriod(ctx, period)
}
