package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/ratings"
)

// RatingModel is the GORM database model for ratings (infrastructure concern)
type RatingModel struct {
	ID                 string    `gorm:"primaryKey;type:uuid"`
	ReviewerID         string    `gorm:"not null;index;type:uuid"`
	RevieweeID         string    `gorm:"not null;index;type:uuid"`
	LeaseID            string    `gorm:"not null;index;type:uuid"`
	OverallScore       int       `gorm:"not null"`
	CommunicationScore int       `gorm:"not null;default:0"`
	PunctualityScore   int       `gorm:"not null;default:0"`
	CareScore          int       `gorm:"not null;default:0"`
	Comment            string    `gorm:"type:text"`
	Response           string    `gorm:"type:text"`
	RespondedAt        *time.Time
	DateTimeCreated    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (RatingModel) TableName() string {
	return "ratings"
}

// ToDomain converts GORM model to domain entity
func (m *RatingModel) ToDomain() *ratings.Rating {
	return &ratings.Rating{
		ID:                 m.ID,
		ReviewerID:         m.ReviewerID,
		RevieweeID:         m.RevieweeID,
		LeaseID:            m.LeaseID,
		OverallScore:       m.OverallScore,
		CommunicationScore: m.CommunicationScore,
		PunctualityScore:   m.PunctualityScore,
		CareScore:          m.CareScore,
		Comment:            m.Comment,
		Response:           m.Response,
		RespondedAt:        m.RespondedAt,
		DateTimeCreated:    m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RatingModel) FromDomain(r *ratings.Rating) {
	m.ID = r.ID
	m.ReviewerID = r.ReviewerID
	m.RevieweeID = r.RevieweeID
	m.LeaseID = r.LeaseID
	m.OverallScore = r.OverallScore
	m.CommunicationScore = r.CommunicationScore
	m.PunctualityScore = r.PunctualityScore
	m.CareScore = r.CareScore
	m.Comment = r.Comment
	m.Response = r.Response
	m.RespondedAt = r.RespondedAt
	m.DateTimeCreated = r.DateTimeCreated
}
