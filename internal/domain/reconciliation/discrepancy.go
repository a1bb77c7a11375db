package reconciliation

// DiscrepancyKind classifies a line-level reconciliation outcome. A nil kind
// on a line item means the line matched. Discrepancies are data, not errors:
// a run where every line is a discrepancy is still a successful run.
type DiscrepancyKind string

const (
	// DiscrepancyClientNotFound: the statement's client code resolves to
	// no client in the ledger.
	DiscrepancyClientNotFound DiscrepancyKind = "CLIENT_NOT_FOUND"
	// DiscrepancySaleNotFound: the client exists but has no sales in the
	// reconciled period.
	DiscrepancySaleNotFound DiscrepancyKind = "SALE_NOT_FOUND"
	// DiscrepancyValueMismatch: the compared net values differ beyond
	// tolerance.
	DiscrepancyValueMismatch DiscrepancyKind = "VALUE_MISMATCH"
	// DiscrepancyInvoiceNotFound: no invoice with the stated document
	// number exists for the client.
	DiscrepancyInvoiceNotFound DiscrepancyKind = "INVOICE_NOT_FOUND"
	// DiscrepancyInstallmentNotFound: the stated installment sequence does
	// not exist on the invoice.
	DiscrepancyInstallmentNotFound DiscrepancyKind = "INSTALLMENT_NOT_FOUND"
	// DiscrepancyCommissionMismatch: net matched but the commission value
	// differs beyond tolerance.
	DiscrepancyCommissionMismatch DiscrepancyKind = "COMMISSION_MISMATCH"
	// DiscrepancyExtraSale: the ledger has period sales for a client the
	// statement never mentions.
	DiscrepancyExtraSale DiscrepancyKind = "EXTRA_SALE"
)

// IsValid checks if the kind is a known DiscrepancyKind
func (k DiscrepancyKind) IsValid() bool {
	switch k {
	case DiscrepancyClientNotFound, DiscrepancySaleNotFound, DiscrepancyValueMismatch,
		DiscrepancyInvoiceNotFound, DiscrepancyInstallmentNotFound,
		DiscrepancyCommissionMismatch, DiscrepancyExtraSale:
		return true
	}
	return false
}

// String returns the string representation of DiscrepancyKind
func (k DiscrepancyKind) String() string {
	return string(k)
}
