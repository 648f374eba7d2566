package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/messaging"
)

// MessageModel is the GORM database model for messages (infrastructure concern)
type MessageModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	ThreadID        string `gorm:"not null;index;type:uuid"`
	SenderID        string `gorm:"not null;index;type:uuid"`
	Body            string `gorm:"not null;type:text"`
	ReadAt          *time.Time
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		ID:              m.ID,
		ThreadID:        m.ThreadID,
		SenderID:        m.SenderID,
		Body:            m.Body,
		ReadAt:          m.ReadAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.ID = msg.ID
	m.ThreadID = msg.ThreadID
	m.SenderID = msg.SenderID
	m.Body = msg.Body
	m.ReadAt = msg.ReadAt
	m.DateTimeCreated = msg.DateTimeCreated
}
