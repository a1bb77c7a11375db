package reconciliation

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RunState is the overall approval state of a reconciliation run. It is
// derived from the problem count, never stored independently of it.
type RunState string

const (
	RunStateApproved    RunState = "APPROVED"
	RunStateHasProblems RunState = "HAS_PROBLEMS"
)

// IsValid checks if the state is a valid RunState
func (s RunState) IsValid() bool {
	return s == RunStateApproved || s == RunStateHasProblems
}

// String returns the string representation of RunState
func (s RunState) String() string {
	return string(s)
}

// stateForProblemCount derives the run state from the problem item count.
func stateForProblemCount(problems int) RunState {
	if problems > 0 {
		return RunStateHasProblems
	}
	return RunStateApproved
}

// LineItem is one reconciled line of a run: the raw external values, the
// resolved internal identifiers, the internal computed values and the match
// outcome. Items are created during the run and immutable afterwards; each
// belongs to exactly one run.
type LineItem struct {
	shared.BaseEntity
	RunID    uuid.UUID
	Position int

	// External (statement) side.
	ClientCode         string
	ClientName         string
	PaymentDate        *time.Time
	DocumentNumber     *int
	InstallmentSeq     *int
	ExternalGross      decimal.Decimal
	ExternalDeduction  decimal.Decimal
	ExternalNet        decimal.Decimal
	ExternalCommission decimal.Decimal

	// Internal (ledger) side. Nil identifiers mean the entity could not
	// be resolved; nil values mean no internal figure exists for the
	// line.
	InternalClientID      *uuid.UUID
	InternalInvoiceID     *uuid.UUID
	InternalInstallmentID *uuid.UUID
	InternalNet           *decimal.Decimal
	InternalCommission    *decimal.Decimal
	// InternalObjective breaks the special-objective share out of
	// InternalNet for display. The comparison always uses the combined
	// figure.
	InternalObjective *decimal.Decimal

	// Outcome. Kind nil means matched; differences are external minus
	// internal, forced to exactly zero on a match.
	Matched              bool
	Kind                 *DiscrepancyKind
	NetDifference        *decimal.Decimal
	CommissionDifference *decimal.Decimal
}

// ReconciliationRun is one reconciliation attempt for one (type, month, year)
// period. A new upload for the same period wholly replaces the prior run.
// Terminal once created.
type ReconciliationRun struct {
	shared.BaseEntity
	Type           StatementType
	Period         shared.Period
	SourceDocument string

	// Declared header totals from the statement.
	DeclaredGross      decimal.Decimal
	DeclaredDeductions decimal.Decimal
	DeclaredNet        decimal.Decimal
	DeclaredCommission decimal.Decimal

	// Internal computed totals and the declared-vs-internal difference.
	InternalNet        decimal.Decimal
	InternalCommission decimal.Decimal
	Difference         decimal.Decimal

	TotalItems   int
	MatchedItems int
	ProblemItems int
	State        RunState

	Items []LineItem
}

// NewReconciliationRun assembles a run from a parsed header, the match
// outcome and the period. Counts, the run difference and the state are all
// computed here so they can never drift apart.
func NewReconciliationRun(
	t StatementType,
	period shared.Period,
	sourceDocument string,
	header StatementHeader,
	result *MatchResult,
) *ReconciliationRun {
	run := &ReconciliationRun{
		BaseEntity:         shared.NewBaseEntity(),
		Type:               t,
		Period:             period,
		SourceDocument:     sourceDocument,
		DeclaredGross:      header.DeclaredGross,
		DeclaredDeductions: header.DeclaredDeductions,
		DeclaredNet:        header.DeclaredNet,
		DeclaredCommission: header.DeclaredCommission,
		InternalNet:        result.InternalNet,
		InternalCommission: result.InternalCommission,
	}

	run.Items = make([]LineItem, len(result.Items))
	copy(run.Items, result.Items)
	for i := range run.Items {
		run.Items[i].RunID = run.ID
		run.Items[i].Position = i
		if run.Items[i].Matched {
			run.MatchedItems++
		} else {
			run.ProblemItems++
		}
	}
	run.TotalItems = len(run.Items)
	run.State = stateForProblemCount(run.ProblemItems)

	// The run-level difference compares what the filer declared against
	// what our ledger computes. It is independent of the per-line match
	// counts: every line can match and the totals still drift.
	run.Difference = header.DeclaredNet.Sub(result.InternalNet)

	return run
}

// Validate checks the run's structural invariants.
func (r *ReconciliationRun) Validate() error {
	if !r.Type.IsValid() {
		return shared.NewDomainError("INVALID_STATE", "Unknown statement type")
	}
	if r.TotalItems != r.MatchedItems+r.ProblemItems {
		return shared.NewDomainError("INVALID_STATE", "Item counts do not add up")
	}
	if r.TotalItems != len(r.Items) {
		return shared.NewDomainError("INVALID_STATE", "Item count does not match items")
	}
	if r.State != stateForProblemCount(r.ProblemItems) {
		return shared.NewDomainError("INVALID_STATE", "Run state does not match problem count")
	}
	for i := range r.Items {
		if r.Items[i].RunID != r.ID {
			return shared.NewDomainError("INVALID_STATE", "Line item does not belong to this run")
		}
		if r.Items[i].Kind != nil && !r.Items[i].Kind.IsValid() {
			return shared.NewDomainError("INVALID_STATE", "Unknown discrepancy kind")
		}
	}
	return nil
}

// MatchResult is the matcher output consumed by NewReconciliationRun: the
// ordered line items plus the run-level internal totals.
type MatchResult struct {
	Items              []LineItem
	InternalNet        decimal.Decimal
	InternalCommission decimal.Decimal
}
