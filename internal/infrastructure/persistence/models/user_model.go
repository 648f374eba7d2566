package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
)

// UserModel is the GORM database model for users (infrastructure concern)
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Email           string    `gorm:"not null;uniqueIndex;type:varchar(254)"`
	PasswordHash    string    `gorm:"not null;type:varchar(255)"`
	FirstName       string    `gorm:"not null;type:varchar(100)"`
	LastName        string    `gorm:"not null;type:varchar(100)"`
	Phone           string    `gorm:"type:varchar(32)"`
	Role            string    `gorm:"not null;index;type:varchar(32)"`
	IsAdmin         bool      `gorm:"not null;default:false"`
	IsVerified      bool      `gorm:"not null;default:false"`
	About           string    `gorm:"type:text"`
	AvatarURL       string    `gorm:"type:varchar(500)"`
	DateTimeCreated time.Time `gorm:"not null"`
	LastLoginAt     *time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *accounts.User {
	return &accounts.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Phone:           m.Phone,
		Role:            m.Role,
		IsAdmin:         m.IsAdmin,
		IsVerified:      m.IsVerified,
		About:           m.About,
		AvatarURL:       m.AvatarURL,
		DateTimeCreated: m.DateTimeCreated,
		LastLoginAt:     m.LastLoginAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *accounts.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.Role = u.Role
	m.IsAdmin = u.IsAdmin
	m.IsVerified = u.IsVerified
	m.About = u.About
	m.AvatarURL = u.AvatarURL
	m.DateTimeCreated = u.DateTimeCreated
	m.LastLoginAt = u.LastLoginAt
}
