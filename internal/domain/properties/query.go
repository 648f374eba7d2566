package properties

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PropertyQuery defines filters for the public listing search.
type PropertyQuery struct {
	LandlordID    string `validate:"omitempty,uuid4"`
	City          string `validate:"omitempty,max=100"`
	PropertyType  string `validate:"omitempty,oneof=apartment house room office commercial"`
	Status        string `validate:"omitempty,oneof=available rented maintenance inactive"`
	MinPriceCents int64  `validate:"omitempty,min=0"`
	MaxPriceCents int64  `validate:"omitempty,min=0"`
	MinBedrooms   int    `validate:"omitempty,min=0"`
	MinBathrooms  int    `validate:"omitempty,min=0"`
	Furnished     *bool
	PetsAllowed   *bool
	Search        string `validate:"omitempty,max=200"`
	SortBy        string `validate:"omitempty,oneof=rent_price_cents date_time_created bedrooms area_sqm"`
	SortOrder     string `validate:"omitempty,oneof=asc desc"`
	Limit         int    `validate:"omitempty,min=1,max=100"`
	Offset        int    `validate:"omitempty,min=0"`
}

// NewPropertyQuery creates a PropertyQuery with default pagination
func NewPropertyQuery() *PropertyQuery {
	return &PropertyQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
		Limit:     20,
	}
}

// Validate for validating PropertyQuery struct
func (q *PropertyQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if q.MaxPriceCents > 0 && q.MinPriceCents > q.MaxPriceCents {
		return fmt.Errorf("min price must not exceed max price")
	}
	return nil
}
