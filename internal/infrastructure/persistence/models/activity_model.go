package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/activity"
)

// ActivityModel is the GORM database model for audit log entries (infrastructure concern)
type ActivityModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	UserID          string    `gorm:"index;type:uuid"`
	Action          string    `gorm:"not null;index;type:varchar(100)"`
	TargetID        string    `gorm:"type:uuid"`
	Detail          string    `gorm:"type:text"`
	ClientIP        string    `gorm:"type:varchar(64)"`
	UserAgent       string    `gorm:"type:varchar(500)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (ActivityModel) TableName() string {
	return "activity_entries"
}

// ToDomain converts GORM model to domain entity
func (m *ActivityModel) ToDomain() *activity.Entry {
	return &activity.Entry{
		ID:              m.ID,
		UserID:          m.UserID,
		Action:          m.Action,
		TargetID:        m.TargetID,
		Detail:          m.Detail,
		ClientIP:        m.ClientIP,
		UserAgent:       m.UserAgent,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ActivityModel) FromDomain(e *activity.Entry) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Action = e.Action
	m.TargetID = e.TargetID
	m.Detail = e.Detail
	m.ClientIP = e.ClientIP
	m.UserAgent = e.UserAgent
	m.DateTimeCreated = e.DateTimeCreated
}
