package models

import (
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/properties"
)

// PropertyModel is the GORM database model for property listings (infrastructure concern)
type PropertyModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	LandlordID      string    `gorm:"not null;index;type:uuid"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Description     string    `gorm:"type:text"`
	PropertyType    string    `gorm:"not null;index;type:varchar(32)"`
	Status          string    `gorm:"not null;index;type:varchar(32)"`
	Address         string    `gorm:"not null;type:varchar(255)"`
	City            string    `gorm:"not null;index;type:varchar(100)"`
	State           string    `gorm:"type:varchar(100)"`
	Country         string    `gorm:"not null;type:varchar(100)"`
	Latitude        float64   `gorm:"not null;default:0"`
	Longitude       float64   `gorm:"not null;default:0"`
	Bedrooms        int       `gorm:"not null;default:0"`
	Bathrooms       int       `gorm:"not null;default:0"`
	AreaSqm         float64   `gorm:"not null;default:0"`
	RentPriceCents  int64     `gorm:"not null;index"`
	DepositCents    int64     `gorm:"not null;default:0"`
	Currency        string    `gorm:"not null;type:varchar(3)"`
	Amenities       string    `gorm:"type:text"`
	ImageURLs       string    `gorm:"type:text"`
	PetsAllowed     bool      `gorm:"not null;default:false"`
	Furnished       bool      `gorm:"not null;default:false"`
	AvailableFrom   time.Time
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time
}

// TableName specifies the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts GORM model to domain entity
func (m *PropertyModel) ToDomain() *properties.Property {
	return &properties.Property{
		ID:              m.ID,
		LandlordID:      m.LandlordID,
		Title:           m.Title,
		Description:     m.Description,
		PropertyType:    m.PropertyType,
		Status:          m.Status,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		Bedrooms:        m.Bedrooms,
		Bathrooms:       m.Bathrooms,
		AreaSqm:         m.AreaSqm,
		RentPriceCents:  m.RentPriceCents,
		DepositCents:    m.DepositCents,
		Currency:        m.Currency,
		Amenities:       unmarshalStringSlice(m.Amenities),
		ImageURLs:       unmarshalStringSlice(m.ImageURLs),
		PetsAllowed:     m.PetsAllowed,
		Furnished:       m.Furnished,
		AvailableFrom:   m.AvailableFrom,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PropertyModel) FromDomain(p *properties.Property) {
	m.ID = p.ID
	m.LandlordID = p.LandlordID
	m.Title = p.Title
	m.Description = p.Description
	m.PropertyType = p.PropertyType
	m.Status = p.Status
	m.Address = p.Address
	m.City = p.City
	m.State = p.State
	m.Country = p.Country
	m.Latitude = p.Latitude
	m.Longitude = p.Longitude
	m.Bedrooms = p.Bedrooms
	m.Bathrooms = p.Bathrooms
	m.AreaSqm = p.AreaSqm
	m.RentPriceCents = p.RentPriceCents
	m.DepositCents = p.DepositCents
	m.Currency = p.Currency
	m.Amenities = marshalStringSlice(p.Amenities)
	m.ImageURLs = marshalStringSlice(p.ImageURLs)
	m.PetsAllowed = p.PetsAllowed
	m.Furnished = p.Furnished
	m.AvailableFrom = p.AvailableFrom
	m.DateTimeCreated = p.DateTimeCreated
	m.DateTimeUpdated = p.DateTimeUpdated
}
