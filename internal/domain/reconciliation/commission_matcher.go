package reconciliation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/partner"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// The two tolerances are intentionally asymmetric and independent: 0.10 on
// the net value, 0.15 on the commission. Proportional allocation of the
// invoice commission across installments introduces more rounding noise than
// the net comparison does, so the commission side gets the wider band.
var (
	defaultCommissionNetTolerance   = decimal.NewFromFloat(0.10)
	defaultCommissionValueTolerance = decimal.NewFromFloat(0.15)
)

// CommissionMatcher cross-checks a parsed commission-settlement statement
// against the ledger's invoices and installments.
type CommissionMatcher struct {
	ledger         Ledger
	netTolerance   decimal.Decimal
	valueTolerance decimal.Decimal
}

// CommissionMatcherOption is a functional option for CommissionMatcher
type CommissionMatcherOption func(*CommissionMatcher)

// WithNetTolerance overrides the net-value tolerance
func WithNetTolerance(tol decimal.Decimal) CommissionMatcherOption {
	return func(m *CommissionMatcher) {
		if tol.IsPositive() {
			m.netTolerance = tol
		}
	}
}

// WithCommissionTolerance overrides the commission-value tolerance
func WithCommissionTolerance(tol decimal.Decimal) CommissionMatcherOption {
	return func(m *CommissionMatcher) {
		if tol.IsPositive() {
			m.valueTolerance = tol
		}
	}
}

// NewCommissionMatcher creates a new CommissionMatcher
func NewCommissionMatcher(ledger Ledger, opts ...CommissionMatcherOption) *CommissionMatcher {
	m := &CommissionMatcher{
		ledger:         ledger,
		netTolerance:   defaultCommissionNetTolerance,
		valueTolerance: defaultCommissionValueTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// invoiceKey caches invoice lookups per (client, document number) so a
// multi-installment invoice settled across several detail lines is fetched
// once.
type invoiceKey struct {
	clientID uuid.UUID
	number   int
}

// Match resolves every detail line to its client, invoice and installment,
// computes the prorated internal values and classifies the outcome. Run
// totals are the sums of the per-line internal values.
func (m *CommissionMatcher) Match(ctx context.Context, stmt *CommissionStatement) (*MatchResult, error) {
	result := &MatchResult{
		InternalNet:        decimal.Zero,
		InternalCommission: decimal.Zero,
	}

	clients := make(map[string]*partner.Client)
	invoices := make(map[invoiceKey]*trade.Invoice)

	for _, line := range stmt.Lines {
		item, err := m.matchLine(ctx, line, clients, invoices)
		if err != nil {
			return nil, err
		}
		if item.InternalNet != nil {
			result.InternalNet = result.InternalNet.Add(*item.InternalNet)
		}
		if item.InternalCommission != nil {
			result.InternalCommission = result.InternalCommission.Add(*item.InternalCommission)
		}
		result.Items = append(result.Items, item)
	}

	result.InternalNet = result.InternalNet.Round(2)
	result.InternalCommission = result.InternalCommission.Round(2)
	return result, nil
}

func (m *CommissionMatcher) matchLine(
	ctx context.Context,
	line CommissionLine,
	clients map[string]*partner.Client,
	invoices map[invoiceKey]*trade.Invoice,
) (LineItem, error) {
	number := line.DocumentNumber
	seq := line.InstallmentSeq
	item := LineItem{
		BaseEntity:         shared.NewBaseEntity(),
		ClientCode:         line.ClientCode,
		PaymentDate:        line.PaymentDate,
		DocumentNumber:     &number,
		InstallmentSeq:     &seq,
		ExternalNet:        line.NetValue,
		ExternalCommission: line.Commission,
	}

	client, ok := clients[line.ClientCode]
	if !ok {
		var err error
		client, err = m.ledger.FindClientByCode(ctx, line.ClientCode)
		if errors.Is(err, shared.ErrNotFound) {
			client = nil
		} else if err != nil {
			return LineItem{}, fmt.Errorf("resolving client %s: %w", line.ClientCode, err)
		}
		clients[line.ClientCode] = client
	}
	if client == nil {
		return m.problem(item, DiscrepancyClientNotFound), nil
	}
	item.InternalClientID = &client.ID

	key := invoiceKey{clientID: client.ID, number: line.DocumentNumber}
	invoice, ok := invoices[key]
	if !ok {
		var err error
		invoice, err = m.ledger.FindInvoiceByClientAndNumber(ctx, client.ID, line.DocumentNumber)
		if errors.Is(err, shared.ErrNotFound) {
			invoice = nil
		} else if err != nil {
			return LineItem{}, fmt.Errorf("resolving invoice %d for client %s: %w", line.DocumentNumber, line.ClientCode, err)
		}
		invoices[key] = invoice
	}
	if invoice == nil {
		return m.problem(item, DiscrepancyInvoiceNotFound), nil
	}
	item.InternalInvoiceID = &invoice.ID

	internalNet, internalCommission, installmentID, found := m.internalValues(invoice, line.InstallmentSeq)
	if !found {
		return m.problem(item, DiscrepancyInstallmentNotFound), nil
	}
	item.InternalInstallmentID = installmentID
	item.InternalNet = &internalNet
	item.InternalCommission = &internalCommission

	netDiff := line.NetValue.Sub(internalNet)
	commissionDiff := line.Commission.Sub(internalCommission)

	if netDiff.Abs().LessThanOrEqual(m.netTolerance) &&
		commissionDiff.Abs().LessThanOrEqual(m.valueTolerance) {
		item.Matched = true
		zero := decimal.Zero
		item.NetDifference = &zero
		zc := decimal.Zero
		item.CommissionDifference = &zc
		return item, nil
	}

	item.NetDifference = &netDiff
	item.CommissionDifference = &commissionDiff
	kind := DiscrepancyCommissionMismatch
	if netDiff.Abs().GreaterThan(m.netTolerance) {
		kind = DiscrepancyValueMismatch
	}
	item.Kind = &kind
	return item, nil
}

// internalValues computes the ledger-side net and commission for one detail
// line. Installment-based invoices prorate by installment amount; single
// invoices accept only sequence 1.
func (m *CommissionMatcher) internalValues(invoice *trade.Invoice, seq int) (net, commission decimal.Decimal, installmentID *uuid.UUID, found bool) {
	if invoice.HasInstallments() {
		installment := invoice.InstallmentBySequence(seq)
		if installment == nil {
			return decimal.Zero, decimal.Zero, nil, false
		}
		net = installment.Amount.Mul(invoice.TaxRatio()).Round(2)
		if invoice.Total.IsZero() {
			commission = decimal.Zero
		} else {
			commission = installment.Amount.Div(invoice.Total).Mul(invoice.Commission).Round(2)
		}
		return net, commission, &installment.ID, true
	}

	if seq != 1 {
		return decimal.Zero, decimal.Zero, nil, false
	}
	if invoice.NetOfTax != nil {
		net = invoice.NetOfTax.Round(2)
	} else {
		net = invoice.Total.Round(2)
	}
	return net, invoice.Commission.Round(2), nil, true
}

func (m *CommissionMatcher) problem(item LineItem, kind DiscrepancyKind) LineItem {
	item.Kind = &kind
	netDiff := item.ExternalNet
	commissionDiff := item.ExternalCommission
	item.NetDifference = &netDiff
	item.CommissionDifference = &commissionDiff
	return item
}
