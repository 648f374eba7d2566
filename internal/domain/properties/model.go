package properties

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Property types
const (
	TypeApartment  = "apartment"
	TypeHouse      = "house"
	TypeRoom       = "room"
	TypeOffice     = "office"
	TypeCommercial = "commercial"
)

// Property statuses
const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// ErrNotFound is returned when no property matches the lookup.
var ErrNotFound = errors.New("property not found")

// ErrHasActiveLease is returned when deleting a property that still backs an
// active lease.
var ErrHasActiveLease = errors.New("property has an active lease")

// ErrNotOwner is returned when a user modifies a property they do not own.
var ErrNotOwner = errors.New("user does not own this property")

// Property entity
type Property struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	LandlordID      string    `json:"landlord_id" validate:"required,uuid4"`
	Title           string    `json:"title" validate:"required,min=5,max=200"`
	Description     string    `json:"description" validate:"max=5000"`
	PropertyType    string    `json:"property_type" validate:"required,oneof=apartment house room office commercial"`
	Status          string    `json:"status" validate:"required,oneof=available rented maintenance inactive"`
	Address         string    `json:"address" validate:"required,max=255"`
	City            string    `json:"city" validate:"required,max=100"`
	State           string    `json:"state" validate:"max=100"`
	Country         string    `json:"country" validate:"required,max=100"`
	Latitude        float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude       float64   `json:"longitude" validate:"min=-180,max=180"`
	Bedrooms        int       `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms       int       `json:"bathrooms" validate:"min=0,max=50"`
	AreaSqm         float64   `json:"area_sqm" validate:"omitempty,min=1"`
	RentPriceCents  int64     `json:"rent_price_cents" validate:"required,min=1"`
	DepositCents    int64     `json:"deposit_cents" validate:"omitempty,min=0"`
	Currency        string    `json:"currency" validate:"required,len=3,uppercase"`
	Amenities       []string  `json:"amenities"`
	ImageURLs       []string  `json:"image_urls"`
	PetsAllowed     bool      `json:"pets_allowed"`
	Furnished       bool      `json:"furnished"`
	AvailableFrom   time.Time `json:"available_from"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

// Validate for validating Property struct
func (p *Property) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
