package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/partner"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// fakeLedger is an in-memory Ledger used by the matcher tests.
type fakeLedger struct {
	clients  map[string]*partner.Client
	invoices map[string]*trade.Invoice
	sales    []trade.Sale
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		clients:  make(map[string]*partner.Client),
		invoices: make(map[string]*trade.Invoice),
	}
}

func (f *fakeLedger) addClient(code string) *partner.Client {
	c := &partner.Client{
		BaseEntity:      shared.NewBaseEntity(),
		DistributorCode: code,
		Name:            "CLIENTE " + code,
		Active:          true,
	}
	f.clients[code] = c
	return c
}

func (f *fakeLedger) addInvoice(clientID uuid.UUID, number int, inv *trade.Invoice) {
	inv.ClientID = clientID
	inv.Number = number
	f.invoices[invoiceMapKey(clientID, number)] = inv
}

func (f *fakeLedger) addSale(clientID uuid.UUID, code string, issuedAt time.Time, total, objective string, returns ...trade.SaleReturn) {
	sale := trade.Sale{
		BaseEntity:            shared.NewBaseEntity(),
		ClientID:              clientID,
		ClientCode:            code,
		IssuedAt:              issuedAt,
		Total:                 decimal.RequireFromString(total),
		SpecialObjectiveValue: decimal.RequireFromString(objective),
		Returns:               returns,
	}
	f.sales = append(f.sales, sale)
}

func (f *fakeLedger) FindClientByCode(_ context.Context, code string) (*partner.Client, error) {
	if c, ok := f.clients[code]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLedger) FindInvoiceByClientAndNumber(_ context.Context, clientID uuid.UUID, number int) (*trade.Invoice, error) {
	if inv, ok := f.invoices[invoiceMapKey(clientID, number)]; ok {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLedger) ListSalesForPeriod(_ context.Context, period shared.Period) ([]trade.Sale, error) {
	var out []trade.Sale
	for _, s := range f.sales {
		if !s.IssuedAt.Before(period.Start()) && s.IssuedAt.Before(period.End()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func invoiceMapKey(clientID uuid.UUID, number int) string {
	return fmt.Sprintf("%s/%d", clientID, number)
}
