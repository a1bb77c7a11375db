package models

import (
	"time"

	"github.com/google/uuid"
	recon "github.com/salesops/backend/internal/domain/reconciliation"
	"github.com/salesops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReconciliationRunModel is the persistence model for the ReconciliationRun
// aggregate. One row per (type, month, year); a re-upload replaces the row
// and its items.
type ReconciliationRunModel struct {
	BaseModel
	Type           string `gorm:"type:varchar(20);not null;uniqueIndex:idx_run_type_period,priority:1"`
	Month          int    `gorm:"not null;uniqueIndex:idx_run_type_period,priority:2"`
	Year           int    `gorm:"not null;uniqueIndex:idx_run_type_period,priority:3"`
	SourceDocument string `gorm:"type:varchar(500)"`

	DeclaredGross      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeclaredDeductions decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeclaredNet        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeclaredCommission decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	InternalNet        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	InternalCommission decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Difference         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	TotalItems   int    `gorm:"not null;default:0"`
	MatchedItems int    `gorm:"not null;default:0"`
	ProblemItems int    `gorm:"not null;default:0"`
	State        string `gorm:"type:varchar(20);not null"`

	Items []LineItemModel `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReconciliationRunModel) TableName() string {
	return "reconciliation_runs"
}

// ToDomain converts the persistence model to a domain ReconciliationRun.
func (m *ReconciliationRunModel) ToDomain() *recon.ReconciliationRun {
	run := &recon.ReconciliationRun{
		BaseEntity:         m.BaseModel.ToDomain(),
		Type:               recon.StatementType(m.Type),
		Period:             shared.Period{Month: m.Month, Year: m.Year},
		SourceDocument:     m.SourceDocument,
		DeclaredGross:      m.DeclaredGross,
		DeclaredDeductions: m.DeclaredDeductions,
		DeclaredNet:        m.DeclaredNet,
		DeclaredCommission: m.DeclaredCommission,
		InternalNet:        m.InternalNet,
		InternalCommission: m.InternalCommission,
		Difference:         m.Difference,
		TotalItems:         m.TotalItems,
		MatchedItems:       m.MatchedItems,
		ProblemItems:       m.ProblemItems,
		State:              recon.RunState(m.State),
	}
	for i := range m.Items {
		run.Items = append(run.Items, *m.Items[i].ToDomain())
	}
	return run
}

// FromDomain populates the persistence model from a domain ReconciliationRun.
func (m *ReconciliationRunModel) FromDomain(run *recon.ReconciliationRun) {
	m.FromDomainBaseEntity(run.BaseEntity)
	m.Type = run.Type.String()
	m.Month = run.Period.Month
	m.Year = run.Period.Year
	m.SourceDocument = run.SourceDocument
	m.DeclaredGross = run.DeclaredGross
	m.DeclaredDeductions = run.DeclaredDeductions
	m.DeclaredNet = run.DeclaredNet
	m.DeclaredCommission = run.DeclaredCommission
	m.InternalNet = run.InternalNet
	m.InternalCommission = run.InternalCommission
	m.Difference = run.Difference
	m.TotalItems = run.TotalItems
	m.MatchedItems = run.MatchedItems
	m.ProblemItems = run.ProblemItems
	m.State = run.State.String()
	m.Items = m.Items[:0]
	for i := range run.Items {
		var im LineItemModel
		im.FromDomain(&run.Items[i])
		m.Items = append(m.Items, im)
	}
}

// LineItemModel is the persistence model for one reconciled line of a run.
type LineItemModel struct {
	BaseModel
	RunID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`

	ClientCode         string          `gorm:"type:varchar(20);not null;index"`
	ClientName         string          `gorm:"type:varchar(200)"`
	PaymentDate        *time.Time
	DocumentNumber     *int
	InstallmentSeq     *int
	ExternalGross      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ExternalDeduction  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ExternalNet        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ExternalCommission decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	InternalClientID      *uuid.UUID       `gorm:"type:uuid"`
	InternalInvoiceID     *uuid.UUID       `gorm:"type:uuid"`
	InternalInstallmentID *uuid.UUID       `gorm:"type:uuid"`
	InternalNet           *decimal.Decimal `gorm:"type:decimal(18,2)"`
	InternalCommission    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	InternalObjective     *decimal.Decimal `gorm:"type:decimal(18,2)"`

	Matched              bool             `gorm:"not null;default:false"`
	Kind                 *string          `gorm:"type:varchar(30);index"`
	NetDifference        *decimal.Decimal `gorm:"type:decimal(18,2)"`
	CommissionDifference *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "reconciliation_line_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *LineItemModel) ToDomain() *recon.LineItem {
	item := &recon.LineItem{
		BaseEntity:            m.BaseModel.ToDomain(),
		RunID:                 m.RunID,
		Position:              m.Position,
		ClientCode:            m.ClientCode,
		ClientName:            m.ClientName,
		PaymentDate:           m.PaymentDate,
		DocumentNumber:        m.DocumentNumber,
		InstallmentSeq:        m.InstallmentSeq,
		ExternalGross:         m.ExternalGross,
		ExternalDeduction:     m.ExternalDeduction,
		ExternalNet:           m.ExternalNet,
		ExternalCommission:    m.ExternalCommission,
		InternalClientID:      m.InternalClientID,
		InternalInvoiceID:     m.InternalInvoiceID,
		InternalInstallmentID: m.InternalInstallmentID,
		InternalNet:           m.InternalNet,
		InternalCommission:    m.InternalCommission,
		InternalObjective:     m.InternalObjective,
		Matched:               m.Matched,
		NetDifference:         m.NetDifference,
		CommissionDifference:  m.CommissionDifference,
	}
	if m.Kind != nil {
		kind := recon.DiscrepancyKind(*m.Kind)
		item.Kind = &kind
	}
	return item
}

// FromDomain populates the persistence model from a domain LineItem.
func (m *LineItemModel) FromDomain(item *recon.LineItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.RunID = item.RunID
	m.Position = item.Position
	m.ClientCode = item.ClientCode
	m.ClientName = item.ClientName
	m.PaymentDate = item.PaymentDate
	m.DocumentNumber = item.DocumentNumber
	m.InstallmentSeq = item.InstallmentSeq
	m.ExternalGross = item.ExternalGross
	m.ExternalDeduction = item.ExternalDeduction
	m.ExternalNet = item.ExternalNet
	m.ExternalCommission = item.ExternalCommission
	m.InternalClientID = item.InternalClientID
	m.InternalInvoiceID = item.InternalInvoiceID
	m.InternalInstallmentID = item.InternalInstallmentID
	m.InternalNet = item.InternalNet
	m.InternalCommission = item.InternalCommission
	m.InternalObjective = item.InternalObjective
	m.Matched = item.Matched
	m.NetDifference = item.NetDifference
	m.CommissionDifference = item.CommissionDifference
	if item.Kind != nil {
		kind := item.Kind.String()
		m.Kind = &kind
	} else {
		m.Kind = nil
	}
}
