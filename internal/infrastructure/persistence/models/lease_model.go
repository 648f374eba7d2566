package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/leases"
)

// LeaseModel is the GORM database model for leases (infrastructure concern)
type LeaseModel struct {
	ID                string    `gorm:"primaryKey;type:uuid"`
	PropertyID        string    `gorm:"not null;index;type:uuid"`
	LandlordID        string    `gorm:"not null;index;type:uuid"`
	TenantID          string    `gorm:"not null;index;type:uuid"`
	MatchID           string    `gorm:"type:uuid"`
	Status            string    `gorm:"not null;index;type:varchar(32)"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           time.Time `gorm:"not null;index"`
	RentCents         int64     `gorm:"not null"`
	DepositCents      int64     `gorm:"not null;default:0"`
	Currency          string    `gorm:"not null;type:varchar(3)"`
	PaymentDay        int       `gorm:"not null"`
	Terms             string    `gorm:"type:text"`
	LandlordSignedAt  *time.Time
	TenantSignedAt    *time.Time
	TerminatedAt      *time.Time
	TerminationReason string    `gorm:"type:text"`
	DateTimeCreated   time.Time `gorm:"not null"`
	DateTimeUpdated   time.Time
}

// TableName specifies the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts GORM model to domain entity
func (m *LeaseModel) ToDomain() *leases.Lease {
	return &leases.Lease{
		ID:                m.ID,
		PropertyID:        m.PropertyID,
		LandlordID:        m.LandlordID,
		TenantID:          m.TenantID,
		MatchID:           m.MatchID,
		Status:            m.Status,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		RentCents:         m.RentCents,
		DepositCents:      m.DepositCents,
		Currency:          m.Currency,
		PaymentDay:        m.PaymentDay,
		Terms:             m.Terms,
		LandlordSignedAt:  m.LandlordSignedAt,
		TenantSignedAt:    m.TenantSignedAt,
		TerminatedAt:      m.TerminatedAt,
		TerminationReason: m.TerminationReason,
		DateTimeCreated:   m.DateTimeCreated,
		DateTimeUpdated:   m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *LeaseModel) FromDomain(l *leases.Lease) {
	m.ID = l.ID
	m.PropertyID = l.PropertyID
	m.LandlordID = l.LandlordID
	m.TenantID = l.TenantID
	m.MatchID = l.MatchID
	m.Status = l.Status
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.RentCents = l.RentCents
	m.DepositCents = l.DepositCents
	m.Currency = l.Currency
	m.PaymentDay = l.PaymentDay
	m.Terms = l.Terms
	m.LandlordSignedAt = l.LandlordSignedAt
	m.TenantSignedAt = l.TenantSignedAt
	m.TerminatedAt = l.TerminatedAt
	m.TerminationReason = l.TerminationReason
	m.DateTimeCreated = l.DateTimeCreated
	m.DateTimeUpdated = l.DateTimeUpdated
}
