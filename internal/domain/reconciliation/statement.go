package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementType identifies which kind of distributor statement a document or
// reconciliation run came from.
type StatementType string

const (
	StatementTypeSales      StatementType = "SALES"
	StatementTypeCommission StatementType = "COMMISSION"
)

// IsValid checks if the statement type is valid
func (t StatementType) IsValid() bool {
	return t == StatementTypeSales || t == StatementTypeCommission
}

// String returns the string representation of StatementType
func (t StatementType) String() string {
	return string(t)
}

// StatementHeader carries the document-level fields of a distributor
// statement: the reporting period, the filer identity and the declared
// totals. Immutable after parse.
type StatementHeader struct {
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Filer       string

	// Sales statements declare gross, deductions and net. Commission
	// statements declare net-paid and commission; the unused fields stay
	// zero.
	DeclaredGross      decimal.Decimal
	DeclaredDeductions decimal.Decimal
	DeclaredNet        decimal.Decimal
	DeclaredCommission decimal.Decimal
}

// SalesLine is one reconstructed per-client record of a gross-sales report.
// Values accumulate across the brand sub-lines of the client's block.
type SalesLine struct {
	ClientCode string
	ClientName string
	Gross      decimal.Decimal
	Deduction  decimal.Decimal
	Net        decimal.Decimal
}

// SalesStatement is the parsed form of a distributor gross-sales report.
type SalesStatement struct {
	Header StatementHeader
	Lines  []SalesLine
}

// CommissionLine is one detail line of a commission-settlement report. One
// record per printed line; nothing accumulates.
type CommissionLine struct {
	PaymentDate    *time.Time
	ClientCode     string
	DocumentType   string
	Series         string
	DocumentNumber int
	InstallmentSeq int
	NetValue       decimal.Decimal
	Commission     decimal.Decimal
}

// CommissionStatement is the parsed form of a commission-settlement report.
type CommissionStatement struct {
	Header StatementHeader
	Lines  []CommissionLine
}
