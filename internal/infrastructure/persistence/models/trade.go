package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale domain entity.
type SaleModel struct {
	BaseModel
	ClientID              uuid.UUID         `gorm:"type:uuid;not null;index"`
	ClientCode            string            `gorm:"type:varchar(20);not null;index"`
	IssuedAt              time.Time         `gorm:"not null;index"`
	Total                 decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	SpecialObjectiveValue decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Returns               []SaleReturnModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *trade.Sale {
	s := &trade.Sale{
		BaseEntity:            m.BaseModel.ToDomain(),
		ClientID:              m.ClientID,
		ClientCode:            m.ClientCode,
		IssuedAt:              m.IssuedAt,
		Total:                 m.Total,
		SpecialObjectiveValue: m.SpecialObjectiveValue,
	}
	for i := range m.Returns {
		s.Returns = append(s.Returns, *m.Returns[i].ToDomain())
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ClientID = s.ClientID
	m.ClientCode = s.ClientCode
	m.IssuedAt = s.IssuedAt
	m.Total = s.Total
	m.SpecialObjectiveValue = s.SpecialObjectiveValue
	m.Returns = m.Returns[:0]
	for i := range s.Returns {
		var rm SaleReturnModel
		rm.FromDomain(&s.Returns[i])
		m.Returns = append(m.Returns, rm)
	}
}

// SaleReturnModel is the persistence model for the SaleReturn domain entity.
type SaleReturnModel struct {
	BaseModel
	SaleID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	OccurredAt        time.Time       `gorm:"not null"`
	ReturnedAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReplacementAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleReturnModel) TableName() string {
	return "sale_returns"
}

// ToDomain converts the persistence model to a domain SaleReturn entity.
func (m *SaleReturnModel) ToDomain() *trade.SaleReturn {
	return &trade.SaleReturn{
		BaseEntity:        m.BaseModel.ToDomain(),
		SaleID:            m.SaleID,
		OccurredAt:        m.OccurredAt,
		ReturnedAmount:    m.ReturnedAmount,
		ReplacementAmount: m.ReplacementAmount,
	}
}

// FromDomain populates the persistence model from a domain SaleReturn entity.
func (m *SaleReturnModel) FromDomain(r *trade.SaleReturn) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SaleID = r.SaleID
	m.OccurredAt = r.OccurredAt
	m.ReturnedAmount = r.ReturnedAmount
	m.ReplacementAmount = r.ReplacementAmount
}

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	ClientID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_client_number,priority:1"`
	Number       int                `gorm:"not null;uniqueIndex:idx_invoice_client_number,priority:2"`
	Series       string             `gorm:"type:varchar(10)"`
	IssuedAt     time.Time          `gorm:"not null;index"`
	Total        decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	NetOfTax     *decimal.Decimal   `gorm:"type:decimal(18,2)"`
	Commission   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Installments []InstallmentModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *trade.Invoice {
	inv := &trade.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		ClientID:   m.ClientID,
		Number:     m.Number,
		Series:     m.Series,
		IssuedAt:   m.IssuedAt,
		Total:      m.Total,
		NetOfTax:   m.NetOfTax,
		Commission: m.Commission,
	}
	for i := range m.Installments {
		inv.Installments = append(inv.Installments, *m.Installments[i].ToDomain())
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *trade.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.ClientID = inv.ClientID
	m.Number = inv.Number
	m.Series = inv.Series
	m.IssuedAt = inv.IssuedAt
	m.Total = inv.Total
	m.NetOfTax = inv.NetOfTax
	m.Commission = inv.Commission
	m.Installments = m.Installments[:0]
	for i := range inv.Installments {
		var im InstallmentModel
		im.FromDomain(&inv.Installments[i])
		m.Installments = append(m.Installments, im)
	}
}

// InstallmentModel is the persistence model for the Installment domain entity.
type InstallmentModel struct {
	BaseModel
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_installment_invoice_seq,priority:1"`
	Sequence  int             `gorm:"not null;uniqueIndex:idx_installment_invoice_seq,priority:2"`
	DueAt     time.Time       `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToDomain converts the persistence model to a domain Installment entity.
func (m *InstallmentModel) ToDomain() *trade.Installment {
	return &trade.Installment{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Sequence:   m.Sequence,
		DueAt:      m.DueAt,
		Amount:     m.Amount,
	}
}

// FromDomain populates the persistence model from a domain Installment entity.
func (m *InstallmentModel) FromDomain(i *trade.Installment) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.InvoiceID = i.InvoiceID
	m.Sequence = i.Sequence
	m.DueAt = i.DueAt
	m.Amount = i.Amount
}
