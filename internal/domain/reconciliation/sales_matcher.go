package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/salesops/backend/internal/domain/shared"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// defaultSalesTolerance absorbs cent-level rounding between the statement's
// accumulated per-client net and our summed ledger net.
var defaultSalesTolerance = decimal.NewFromFloat(0.01)

// SalesMatcher cross-checks a parsed gross-sales statement against the
// ledger's sales for the period.
type SalesMatcher struct {
	ledger    Ledger
	tolerance decimal.Decimal
}

// SalesMatcherOption is a functional option for SalesMatcher configuration
type SalesMatcherOption func(*SalesMatcher)

// WithSalesTolerance overrides the absolute net-value tolerance
func WithSalesTolerance(tol decimal.Decimal) SalesMatcherOption {
	return func(m *SalesMatcher) {
		if tol.IsPositive() {
			m.tolerance = tol
		}
	}
}

// NewSalesMatcher creates a new SalesMatcher
func NewSalesMatcher(ledger Ledger, opts ...SalesMatcherOption) *SalesMatcher {
	m := &SalesMatcher{
		ledger:    ledger,
		tolerance: defaultSalesTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// clientSales is the per-client aggregate of one period's ledger sales.
type clientSales struct {
	clientID  uuid.UUID
	sales     []trade.Sale
	net       decimal.Decimal
	objective decimal.Decimal
}

// Match resolves every statement line against the ledger and classifies the
// outcome. The period's sales are fetched once and indexed by client code so
// the pass does no per-line sale queries; only client existence checks for
// unknown codes go back to the ledger.
func (m *SalesMatcher) Match(ctx context.Context, period shared.Period, stmt *SalesStatement) (*MatchResult, error) {
	sales, err := m.ledger.ListSalesForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("listing sales for %d/%d: %w", period.Month, period.Year, err)
	}

	byCode := make(map[string]*clientSales)
	internalTotal := decimal.Zero
	for i := range sales {
		s := sales[i]
		cs, ok := byCode[s.ClientCode]
		if !ok {
			cs = &clientSales{clientID: s.ClientID, net: decimal.Zero, objective: decimal.Zero}
			byCode[s.ClientCode] = cs
		}
		cs.sales = append(cs.sales, s)
		cs.net = cs.net.Add(s.NetValue())
		cs.objective = cs.objective.Add(s.SpecialObjectiveValue)
		// The run total is a true period total, independent of whether
		// the statement references the client. Operators use it to see
		// systematic drift even when every line matches.
		internalTotal = internalTotal.Add(s.NetValue())
	}

	result := &MatchResult{InternalNet: internalTotal.Round(2)}
	referenced := make(map[string]bool, len(stmt.Lines))

	for _, line := range stmt.Lines {
		referenced[line.ClientCode] = true
		item, err := m.matchLine(ctx, line, byCode[line.ClientCode])
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, item)
	}

	// Clients with ledger sales the statement never mentioned become
	// synthetic EXTRA_SALE items, appended in code order so reruns are
	// deterministic.
	extraCodes := make([]string, 0)
	for code := range byCode {
		if !referenced[code] {
			extraCodes = append(extraCodes, code)
		}
	}
	sort.Strings(extraCodes)
	for _, code := range extraCodes {
		result.Items = append(result.Items, m.extraSaleItem(code, byCode[code]))
	}

	return result, nil
}

func (m *SalesMatcher) matchLine(ctx context.Context, line SalesLine, cs *clientSales) (LineItem, error) {
	item := LineItem{
		BaseEntity:        shared.NewBaseEntity(),
		ClientCode:        line.ClientCode,
		ClientName:        line.ClientName,
		ExternalGross:     line.Gross,
		ExternalDeduction: line.Deduction,
		ExternalNet:       line.Net,
	}

	if cs == nil {
		// No period sales under this code. Distinguish an unknown
		// client from a known client without sales.
		client, err := m.ledger.FindClientByCode(ctx, line.ClientCode)
		if errors.Is(err, shared.ErrNotFound) {
			return m.problem(item, DiscrepancyClientNotFound), nil
		}
		if err != nil {
			return LineItem{}, fmt.Errorf("resolving client %s: %w", line.ClientCode, err)
		}
		item.InternalClientID = &client.ID
		return m.problem(item, DiscrepancySaleNotFound), nil
	}

	clientID := cs.clientID
	item.InternalClientID = &clientID
	net := cs.net.Round(2)
	objective := cs.objective.Round(2)
	item.InternalNet = &net
	item.InternalObjective = &objective

	diff := line.Net.Sub(net)
	if diff.Abs().LessThanOrEqual(m.tolerance) {
		item.Matched = true
		zero := decimal.Zero
		item.NetDifference = &zero
		return item, nil
	}

	item.NetDifference = &diff
	kind := DiscrepancyValueMismatch
	item.Kind = &kind
	return item, nil
}

func (m *SalesMatcher) extraSaleItem(code string, cs *clientSales) LineItem {
	clientID := cs.clientID
	net := cs.net.Round(2)
	objective := cs.objective.Round(2)
	diff := net.Neg()
	kind := DiscrepancyExtraSale
	return LineItem{
		BaseEntity:        shared.NewBaseEntity(),
		ClientCode:        code,
		InternalClientID:  &clientID,
		InternalNet:       &net,
		InternalObjective: &objective,
		Kind:              &kind,
		NetDifference:     &diff,
	}
}

func (m *SalesMatcher) problem(item LineItem, kind DiscrepancyKind) LineItem {
	item.Kind = &kind
	diff := item.ExternalNet
	item.NetDifference = &diff
	return item
}
