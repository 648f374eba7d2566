package properties

import "context"

// CreateInput carries the fields accepted when listing a property.
type CreateInput struct {
	Title          string
	Description    string
	PropertyType   string
	Address        string
	City           string
	State          string
	Country        string
	Latitude       float64
	Longitude      float64
	Bedrooms       int
	Bathrooms      int
	AreaSqm        float64
	RentPriceCents int64
	DepositCents   int64
	Currency       string
	Amenities      []string
	ImageURLs      []string
	PetsAllowed    bool
	Furnished      bool
}

// UpdateInput carries mutable listing fields. Nil pointers leave the current
// value untouched.
type UpdateInput struct {
	Title          *string
	Description    *string
	Status         *string
	RentPriceCents *int64
	DepositCents   *int64
	Amenities      *[]string
	ImageURLs      *[]string
	PetsAllowed    *bool
	Furnished      *bool
}

// PropertyService defines listing management and search operations.
type PropertyService interface {
	// Create publishes a new listing owned by the landlord.
	Create(ctx context.Context, landlordID string, input CreateInput) (*Property, error)

	// GetByID retrieves a listing by ID.
	GetByID(ctx context.Context, propertyID string) (*Property, error)

	// List retrieves listings considering a query filter when set.
	List(ctx context.Context, query *PropertyQuery) ([]*Property, error)

	// Update applies changes to a listing. Only the owner may update.
	Update(ctx context.Context, landlordID, propertyID string, input UpdateInput) (*Property, error)

	// Delete removes a listing. Only the owner may delete, and only while no
	// active lease references the property.
	Delete(ctx context.Context, landlordID, propertyID string) error

	// SetStatus transitions the listing status (used by the lease lifecycle).
	SetStatus(ctx context.Context, propertyID, status string) error
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// Create adds a new Property to the database
	Create(ctx context.Context, property *Property) error
	// GetByID retrieves a Property from the database by ID
	GetByID(ctx context.Context, propertyID string) (*Property, error)
	// List lists Properties in the database with optional filter
	List(ctx context.Context, query *PropertyQuery) ([]*Property, error)
	// UpdateByID updates a Property in the database by ID
	UpdateByID(ctx context.Context, property *Property) error
	// DeleteByID deletes a Property in the database by ID
	DeleteByID(ctx context.Context, propertyID string) error
}
