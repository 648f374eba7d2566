package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/leases"
)

// SignatureModel is the GORM database model for lease signature records (infrastructure concern)
type SignatureModel struct {
	ID                 string  `gorm:"primaryKey;type:uuid"`
	LeaseID            string  `gorm:"not null;index:idx_signatures_lease_signer;type:uuid"`
	SignerID           string  `gorm:"not null;index:idx_signatures_lease_signer;type:uuid"`
	Role               string  `gorm:"not null;type:varchar(16)"`
	DocumentVerified   bool    `gorm:"not null;default:false"`
	DocumentConfidence float64 `gorm:"not null;default:0"`
	FaceVerified       bool    `gorm:"not null;default:false"`
	FaceConfidence     float64 `gorm:"not null;default:0"`
	SignatureImageURL  string  `gorm:"type:varchar(500)"`
	CompletedAt        *time.Time
	DateTimeCreated    time.Time `gorm:"not null"`
	DateTimeUpdated    time.Time
}

// TableName specifies the table name for GORM
func (SignatureModel) TableName() string {
	return "lease_signatures"
}

// ToDomain converts GORM model to domain entity
func (m *SignatureModel) ToDomain() *leases.SignatureRecord {
	return &leases.SignatureRecord{
		ID:                 m.ID,
		LeaseID:            m.LeaseID,
		SignerID:           m.SignerID,
		Role:               m.Role,
		DocumentVerified:   m.DocumentVerified,
		DocumentConfidence: m.DocumentConfidence,
		FaceVerified:       m.FaceVerified,
		FaceConfidence:     m.FaceConfidence,
		SignatureImageURL:  m.SignatureImageURL,
		CompletedAt:        m.CompletedAt,
		DateTimeCreated:    m.DateTimeCreated,
		DateTimeUpdated:    m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SignatureModel) FromDomain(s *leases.SignatureRecord) {
	m.ID = s.ID
	m.LeaseID = s.LeaseID
	m.SignerID = s.SignerID
	m.Role = s.Role
	m.DocumentVerified = s.DocumentVerified
	m.DocumentConfidence = s.DocumentConfidence
	m.FaceVerified = s.FaceVerified
	m.FaceConfidence = s.FaceConfidence
	m.SignatureImageURL = s.SignatureImageURL
	m.CompletedAt = s.CompletedAt
	m.DateTimeCreated = s.DateTimeCreated
	m.DateTimeUpdated = s.DateTimeUpdated
}
