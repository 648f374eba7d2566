package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/matching"
)

// MatchModel is the GORM database model for match requests (infrastructure concern)
type MatchModel struct {
	ID                   string    `gorm:"primaryKey;type:uuid"`
	PropertyID           string    `gorm:"not null;index;type:uuid"`
	TenantID             string    `gorm:"not null;index;type:uuid"`
	LandlordID           string    `gorm:"not null;index;type:uuid"`
	Status               string    `gorm:"not null;index;type:varchar(32)"`
	Message              string    `gorm:"type:text"`
	MonthlyIncomeCents   int64     `gorm:"not null;default:0"`
	Employment           string    `gorm:"type:varchar(200)"`
	VisitScheduledAt     *time.Time
	VisitCompletedAt     *time.Time
	DocumentsSubmittedAt *time.Time
	DocumentsApprovedAt  *time.Time
	ExpiresAt            time.Time `gorm:"not null;index"`
	DateTimeCreated      time.Time `gorm:"not null"`
	DateTimeUpdated      time.Time
}

// TableName specifies the table name for GORM
func (MatchModel) TableName() string {
	return "match_requests"
}

// ToDomain converts GORM model to domain entity
func (m *MatchModel) ToDomain() *matching.MatchRequest {
	return &matching.MatchRequest{
		ID:                   m.ID,
		PropertyID:           m.PropertyID,
		TenantID:             m.TenantID,
		LandlordID:           m.LandlordID,
		Status:               m.Status,
		Message:              m.Message,
		MonthlyIncomeCents:   m.MonthlyIncomeCents,
		Employment:           m.Employment,
		VisitScheduledAt:     m.VisitScheduledAt,
		VisitCompletedAt:     m.VisitCompletedAt,
		DocumentsSubmittedAt: m.DocumentsSubmittedAt,
		DocumentsApprovedAt:  m.DocumentsApprovedAt,
		ExpiresAt:            m.ExpiresAt,
		DateTimeCreated:      m.DateTimeCreated,
		DateTimeUpdated:      m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MatchModel) FromDomain(r *matching.MatchRequest) {
	m.ID = r.ID
	m.PropertyID = r.PropertyID
	m.TenantID = r.TenantID
	m.LandlordID = r.LandlordID
	m.Status = r.Status
	m.Message = r.Message
	m.MonthlyIncomeCents = r.MonthlyIncomeCents
	m.Employment = r.Employment
	m.VisitScheduledAt = r.VisitScheduledAt
	m.VisitCompletedAt = r.VisitCompletedAt
	m.DocumentsSubmittedAt = r.DocumentsSubmittedAt
	m.DocumentsApprovedAt = r.DocumentsApprovedAt
	m.ExpiresAt = r.ExpiresAt
	m.DateTimeCreated = r.DateTimeCreated
	m.DateTimeUpdated = r.DateTimeUpdated
}
