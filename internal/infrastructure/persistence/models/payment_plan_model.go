package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/payments"
)

// PaymentPlanModel is the GORM database model for payment plans (infrastructure concern)
type PaymentPlanModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	LeaseID         string    `gorm:"not null;uniqueIndex;type:uuid"`
	TotalCents      int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;type:varchar(3)"`
	InstallmentNum  int       `gorm:"not null"`
	Frequency       string    `gorm:"not null;type:varchar(16)"`
	FirstDueDate    time.Time `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PaymentPlanModel) TableName() string {
	return "payment_plans"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentPlanModel) ToDomain() *payments.PaymentPlan {
	return &payments.PaymentPlan{
		ID:              m.ID,
		LeaseID:         m.LeaseID,
		TotalCents:      m.TotalCents,
		Currency:        m.Currency,
		InstallmentNum:  m.InstallmentNum,
		Frequency:       m.Frequency,
		FirstDueDate:    m.FirstDueDate,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentPlanModel) FromDomain(p *payments.PaymentPlan) {
	m.ID = p.ID
	m.LeaseID = p.LeaseID
	m.TotalCents = p.TotalCents
	m.Currency = p.Currency
	m.InstallmentNum = p.InstallmentNum
	m.Frequency = p.Frequency
	m.FirstDueDate = p.FirstDueDate
	m.DateTimeCreated = p.DateTimeCreated
}
