package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	recon "github.com/salesops/backend/internal/domain/reconciliation"
)

// RunResponse is the full reconciliation run representation, items included.
type RunResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	SourceDocument string    `json:"source_document"`

	DeclaredGross      decimal.Decimal `json:"declared_gross"`
	DeclaredDeductions decimal.Decimal `json:"declared_deductions"`
	DeclaredNet        decimal.Decimal `json:"declared_net"`
	DeclaredCommission decimal.Decimal `json:"declared_commission"`
	InternalNet        decimal.Decimal `json:"internal_net"`
	InternalCommission decimal.Decimal `json:"internal_commission"`
	Difference         decimal.Decimal `json:"difference"`

	TotalItems   int    `json:"total_items"`
	MatchedItems int    `json:"matched_items"`
	ProblemItems int    `json:"problem_items"`
	State        string `json:"state"`

	CreatedAt time.Time          `json:"created_at"`
	Items     []LineItemResponse `json:"items,omitempty"`
}

// RunSummaryResponse is the list representation of a run, without its items.
type RunSummaryResponse struct {
	ID             uuid.UUID       `json:"id"`
	Type           string          `json:"type"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	SourceDocument string          `json:"source_document"`
	DeclaredNet    decimal.Decimal `json:"declared_net"`
	InternalNet    decimal.Decimal `json:"internal_net"`
	Difference     decimal.Decimal `json:"difference"`
	TotalItems     int             `json:"total_items"`
	MatchedItems   int             `json:"matched_items"`
	ProblemItems   int             `json:"problem_items"`
	State          string          `json:"state"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LineItemResponse is one reconciled line of a run.
type LineItemResponse struct {
	Position           int             `json:"position"`
	ClientCode         string          `json:"client_code"`
	ClientName         string          `json:"client_name,omitempty"`
	PaymentDate        *time.Time      `json:"payment_date,omitempty"`
	DocumentNumber     *int            `json:"document_number,omitempty"`
	InstallmentSeq     *int            `json:"installment_seq,omitempty"`
	ExternalGross      decimal.Decimal `json:"external_gross"`
	ExternalDeduction  decimal.Decimal `json:"external_deduction"`
	ExternalNet        decimal.Decimal `json:"external_net"`
	ExternalCommission decimal.Decimal `json:"external_commission"`

	InternalClientID   *uuid.UUID       `json:"internal_client_id,omitempty"`
	InternalInvoiceID  *uuid.UUID       `json:"internal_invoice_id,omitempty"`
	InternalNet        *decimal.Decimal `json:"internal_net,omitempty"`
	InternalCommission *decimal.Decimal `json:"internal_commission,omitempty"`
	InternalObjective  *decimal.Decimal `json:"internal_objective,omitempty"`

	Matched              bool             `json:"matched"`
	Kind                 *string          `json:"kind,omitempty"`
	NetDifference        *decimal.Decimal `json:"net_difference,omitempty"`
	CommissionDifference *decimal.Decimal `json:"commission_difference,omitempty"`
}

// ToRunResponse converts a domain run, items included
func ToRunResponse(run *recon.ReconciliationRun) RunResponse {
	resp := RunResponse{
		ID:                 run.ID,
		Type:               run.Type.String(),
		Month:              run.Period.Month,
		Year:               run.Period.Year,
		SourceDocument:     run.SourceDocument,
		DeclaredGross:      run.DeclaredGross,
		DeclaredDeductions: run.DeclaredDeductions,
		DeclaredNet:        run.DeclaredNet,
		DeclaredCommission: run.DeclaredCommission,
		InternalNet:        run.InternalNet,
		InternalCommission: run.InternalCommission,
		Difference:         run.Difference,
		TotalItems:         run.TotalItems,
		MatchedItems:       run.MatchedItems,
		ProblemItems:       run.ProblemItems,
		State:              run.State.String(),
		CreatedAt:          run.CreatedAt,
	}

	resp.Items = make([]LineItemResponse, len(run.Items))
	for i := range run.Items {
		resp.Items[i] = toLineItemResponse(&run.Items[i])
	}
	return resp
}

// ToRunSummaryResponse converts a domain run to its list form
func ToRunSummaryResponse(run *recon.ReconciliationRun) RunSummaryResponse {
	return RunSummaryResponse{
		ID:             run.ID,
		Type:           run.Type.String(),
		Month:          run.Period.Month,
		Year:           run.Period.Year,
		SourceDocument: run.SourceDocument,
		DeclaredNet:    run.DeclaredNet,
		InternalNet:    run.InternalNet,
		Difference:     run.Difference,
		TotalItems:     run.TotalItems,
		MatchedItems:   run.MatchedItems,
		ProblemItems:   run.ProblemItems,
		State:          run.State.String(),
		CreatedAt:      run.CreatedAt,
	}
}

func toLineItemResponse(item *recon.LineItem) LineItemResponse {
	resp := LineItemResponse{
		Position:             item.Position,
		ClientCode:           item.ClientCode,
		ClientName:           item.ClientName,
		PaymentDate:          item.PaymentDate,
		DocumentNumber:       item.DocumentNumber,
		InstallmentSeq:       item.InstallmentSeq,
		ExternalGross:        item.ExternalGross,
		ExternalDeduction:    item.ExternalDeduction,
		ExternalNet:          item.ExternalNet,
		ExternalCommission:   item.ExternalCommission,
		InternalClientID:     item.InternalClientID,
		InternalInvoiceID:    item.InternalInvoiceID,
		InternalNet:          item.InternalNet,
		InternalCommission:   item.InternalCommission,
		InternalObjective:    item.InternalObjective,
		Matched:              item.Matched,
		NetDifference:        item.NetDifference,
		CommissionDifference: item.CommissionDifference,
	}
	if item.Kind != nil {
		kind := item.Kind.String()
		resp.Kind = &kind
	}
	return resp
}
