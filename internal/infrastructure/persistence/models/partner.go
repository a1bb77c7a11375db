package models

import (
	"github.com/salesops/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	DistributorCode string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name            string `gorm:"type:varchar(200);not null"`
	TradeName       string `gorm:"type:varchar(200)"`
	City            string `gorm:"type:varchar(100)"`
	State           string `gorm:"type:varchar(2)"`
	Active          bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity:      m.BaseModel.ToDomain(),
		DistributorCode: m.DistributorCode,
		Name:            m.Name,
		TradeName:       m.TradeName,
		City:            m.City,
		State:           m.State,
		Active:          m.Active,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.DistributorCode = c.DistributorCode
	m.Name = c.Name
	m.TradeName = c.TradeName
	m.City = c.City
	m.State = c.State
	m.Active = c.Active
}
