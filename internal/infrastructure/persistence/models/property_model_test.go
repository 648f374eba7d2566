//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/properties"

	"github.com/stretchr/testify/assert"
)

func TestPropertyModel_FromDomainToDomain(t *testing.T) {
	// Setup a test Property instance (domain entity)
	property := &properties.Property{
		ID:              "b1f4a8e2-0000-4000-8000-000000000001",
		LandlordID:      "b1f4a8e2-0000-4000-8000-000000000002",
		Title:           "Bright two-bedroom apartment",
		PropertyType:    properties.TypeApartment,
		Status:          properties.StatusAvailable,
		Address:         "Calle 63 #4-21",
		City:            "Bogota",
		Country:         "CO",
		Bedrooms:        2,
		Bathrooms:       1,
		RentPriceCents:  250000000,
		Currency:        "COP",
		Amenities:       []string{"parking", "gym", "laundry"},
		ImageURLs:       []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		PetsAllowed:     true,
		DateTimeCreated: time.Now(),
	}

	// Convert to PropertyModel and back
	model := &PropertyModel{}
	model.FromDomain(property)
	roundTripped := model.ToDomain()

	// Slice fields pass through a JSON text column
	assert.Equal(t, property.Amenities, roundTripped.Amenities)
	assert.Equal(t, property.ImageURLs, roundTripped.ImageURLs)

	assert.Equal(t, property.ID, roundTripped.ID)
	assert.Equal(t, property.Title, roundTripped.Title)
	assert.Equal(t, property.RentPriceCents, roundTripped.RentPriceCents)
	assert.Equal(t, property.PetsAllowed, roundTripped.PetsAllowed)
}

func TestPropertyModel_EmptySlices(t *testing.T) {
	// Empty slices are stored as empty strings and surface as nil
	property := &properties.Property{
		ID:        "b1f4a8e2-0000-4000-8000-000000000001",
		Amenities: nil,
		ImageURLs: []string{},
	}

	model := &PropertyModel{}
	model.FromDomain(property)
	assert.Equal(t, "", model.Amenities)
	assert.Equal(t, "", model.ImageURLs)

	roundTripped := model.ToDomain()
	assert.Nil(t, roundTripped.Amenities)
	assert.Nil(t, roundTripped.ImageURLs)
}
