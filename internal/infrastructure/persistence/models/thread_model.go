package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/messaging"
)

// ThreadModel is the GORM database model for message threads (infrastructure concern)
type ThreadModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Subject         string    `gorm:"type:varchar(200)"`
	InitiatorID     string    `gorm:"not null;index;type:uuid"`
	RecipientID     string    `gorm:"not null;index;type:uuid"`
	PropertyID      string    `gorm:"type:uuid"`
	LastMessageAt   time.Time `gorm:"index"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ThreadModel) TableName() string {
	return "message_threads"
}

// ToDomain converts GORM model to domain entity
func (m *ThreadModel) ToDomain() *messaging.Thread {
	return &messaging.Thread{
		ID:              m.ID,
		Subject:         m.Subject,
		InitiatorID:     m.InitiatorID,
		RecipientID:     m.RecipientID,
		PropertyID:      m.PropertyID,
		LastMessageAt:   m.LastMessageAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ThreadModel) FromDomain(t *messaging.Thread) {
	m.ID = t.ID
	m.Subject = t.Subject
	m.InitiatorID = t.InitiatorID
	m.RecipientID = t.RecipientID
	m.PropertyID = t.PropertyID
	m.LastMessageAt = t.LastMessageAt
	m.DateTimeCreated = t.DateTimeCreated
}
