package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/payments"
)

// TransactionModel is the GORM database model for transactions (infrastructure concern)
type TransactionModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	LeaseID         string `gorm:"index;type:uuid"`
	InstallmentID   string `gorm:"index;type:uuid"`
	PayerID         string `gorm:"not null;index;type:uuid"`
	PayeeID         string `gorm:"not null;index;type:uuid"`
	TransactionType string `gorm:"not null;type:varchar(32)"`
	Status          string `gorm:"not null;index;type:varchar(32)"`
	Method          string `gorm:"type:varchar(32)"`
	AmountCents     int64  `gorm:"not null"`
	Currency        string `gorm:"not null;type:varchar(3)"`
	Reference       string `gorm:"uniqueIndex;type:varchar(100)"`
	Description     string `gorm:"type:varchar(500)"`
	SettledAt       *time.Time
	DateTimeCreated time.Time `gorm:"not null;index"`
	DateTimeUpdated time.Time
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts GORM model to domain entity
func (m *TransactionModel) ToDomain() *payments.Transaction {
	return &payments.Transaction{
		ID:              m.ID,
		LeaseID:         m.LeaseID,
		InstallmentID:   m.InstallmentID,
		PayerID:         m.PayerID,
		PayeeID:         m.PayeeID,
		TransactionType: m.TransactionType,
		Status:          m.Status,
		Method:          m.Method,
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		Reference:       m.Reference,
		Description:     m.Description,
		SettledAt:       m.SettledAt,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TransactionModel) FromDomain(t *payments.Transaction) {
	m.ID = t.ID
	m.LeaseID = t.LeaseID
	m.InstallmentID = t.InstallmentID
	m.PayerID = t.PayerID
	m.PayeeID = t.PayeeID
	m.TransactionType = t.TransactionType
	m.Status = t.Status
	m.Method = t.Method
	m.AmountCents = t.AmountCents
	m.Currency = t.Currency
	m.Reference = t.Reference
	m.Description = t.Description
	m.SettledAt = t.SettledAt
	m.DateTimeCreated = t.DateTimeCreated
	m.DateTimeUpdated = t.DateTimeUpdated
}
