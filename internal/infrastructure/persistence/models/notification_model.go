package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/notifications"
)

// NotificationModel is the GORM database model for notifications (infrastructure concern)
type NotificationModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	UserID           string `gorm:"not null;index;type:uuid"`
	NotificationType string `gorm:"not null;type:varchar(32)"`
	Title            string `gorm:"not null;type:varchar(200)"`
	Body             string `gorm:"type:text"`
	RelatedID        string `gorm:"type:uuid"`
	ReadAt           *time.Time
	DateTimeCreated  time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts GORM model to domain entity
func (m *NotificationModel) ToDomain() *notifications.Notification {
	return &notifications.Notification{
		ID:               m.ID,
		UserID:           m.UserID,
		NotificationType: m.NotificationType,
		Title:            m.Title,
		Body:             m.Body,
		RelatedID:        m.RelatedID,
		ReadAt:           m.ReadAt,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotificationModel) FromDomain(n *notifications.Notification) {
	m.ID = n.ID
	m.UserID = n.UserID
	m.NotificationType = n.NotificationType
	m.Title = n.Title
	m.Body = n.Body
	m.RelatedID = n.RelatedID
	m.ReadAt = n.ReadAt
	m.DateTimeCreated = n.DateTimeCreated
}
