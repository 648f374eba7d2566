package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/payments"
)

// InstallmentModel is the GORM database model for plan installments (infrastructure concern)
type InstallmentModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	PlanID          string    `gorm:"not null;index;type:uuid"`
	Sequence        int       `gorm:"not null"`
	AmountCents     int64     `gorm:"not null"`
	DueDate         time.Time `gorm:"not null;index"`
	Status          string    `gorm:"not null;index;type:varchar(16)"`
	PaidAt          *time.Time
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (InstallmentModel) TableName() string {
	return "plan_installments"
}

// ToDomain converts GORM model to domain entity
func (m *InstallmentModel) ToDomain() *payments.Installment {
	return &payments.Installment{
		ID:              m.ID,
		PlanID:          m.PlanID,
		Sequence:        m.Sequence,
		AmountCents:     m.AmountCents,
		DueDate:         m.DueDate,
		Status:          m.Status,
		PaidAt:          m.PaidAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *InstallmentModel) FromDomain(i *payments.Installment) {
	m.ID = i.ID
	m.PlanID = i.PlanID
	m.Sequence = i.Sequence
	m.AmountCents = i.AmountCents
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidAt = i.PaidAt
	m.DateTimeCreated = i.DateTimeCreated
}
