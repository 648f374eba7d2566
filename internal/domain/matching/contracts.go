package matching

import (
	"context"
	"time"
)

// CreateInput carries the fields a tenant submits when requesting a match.
type CreateInput struct {
	PropertyID         string
	TenantID           string
	Message            string
	MonthlyIncomeCents int64
	Employment         string
}

// MatchService defines methods for the tenant-landlord match workflow
type MatchService interface {
	// Create opens a new match request for a tenant on an available property.
	Create(ctx context.Context, input *CreateInput) (*MatchRequest, error)
	// GetByID retrieves a match request by its ID.
	GetByID(ctx context.Context, matchID string) (*MatchRequest, error)
	// List retrieves match requests matching the query filters.
	List(ctx context.Context, query *MatchQuery) ([]*MatchRequest, error)
	// Accept moves a pending request to accepted. Only the property's
	// landlord may accept; anyone else gets ErrNotParty.
	Accept(ctx context.Context, matchID, landlordID string) (*MatchRequest, error)
	// Reject closes a request with the rejected status. Landlord only.
	Reject(ctx context.Context, matchID, landlordID string) (*MatchRequest, error)
	// Cancel closes a request with the cancelled status. Tenant only.
	Cancel(ctx context.Context, matchID, tenantID string) (*MatchRequest, error)
	// ScheduleVisit records the agreed visit time on an accepted request.
	ScheduleVisit(ctx context.Context, matchID, landlordID string, visitAt time.Time) (*MatchRequest, error)
	// CompleteVisit marks a scheduled visit as done. Landlord only.
	CompleteVisit(ctx context.Context, matchID, landlordID string) (*MatchRequest, error)
	// SubmitDocuments marks the tenant's documents as handed over.
	SubmitDocuments(ctx context.Context, matchID, tenantID string) (*MatchRequest, error)
	// ApproveDocuments marks the submitted documents as approved. Landlord only.
	ApproveDocuments(ctx context.Context, matchID, landlordID string) (*MatchRequest, error)
	// ExpireStale closes every live request whose ExpiresAt lies before now
	// and returns the number of requests expired.
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

// MatchRepository defines methods for match request persistence
type MatchRepository interface {
	// Create stores a new match request.
	Create(ctx context.Context, match *MatchRequest) error
	// GetByID retrieves a match request by its ID.
	GetByID(ctx context.Context, matchID string) (*MatchRequest, error)
	// List retrieves match requests matching the query filters.
	List(ctx context.Context, query *MatchQuery) ([]*MatchRequest, error)
	// GetLiveByTenantAndProperty returns the tenant's non-terminal request
	// for the property, or ErrNotFound.
	GetLiveByTenantAndProperty(ctx context.Context, tenantID, propertyID string) (*MatchRequest, error)
	// UpdateByID updates the stored match request.
	UpdateByID(ctx context.Context, match *MatchRequest) error
	// ListExpired returns live requests whose ExpiresAt lies before now.
	ListExpired(ctx context.Context, now time.Time) ([]*MatchRequest, error)
}
