package models

import (
	"github.com/finapp/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Industry     string `gorm:"type:varchar(100);index"`
	ContactEmail string `gorm:"type:varchar(200);index"`
	ContactPhone string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Industry:     m.Industry,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Address:      m.Address,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Industry = c.Industry
	m.ContactEmail = c.ContactEmail
	m.ContactPhone = c.ContactPhone
	m.Address = c.Address
}
