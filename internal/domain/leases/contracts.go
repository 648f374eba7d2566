package leases

import (
	"context"
	"time"
)

// CreateInput carries the fields a landlord submits when drafting a lease.
type CreateInput struct {
	PropertyID   string
	LandlordID   string
	TenantID     string
	MatchID      string
	StartDate    time.Time
	EndDate      time.Time
	RentCents    int64
	DepositCents int64
	Currency     string
	PaymentDay   int
	Terms        string
}

// SignStepInput carries one step of the signature flow.
type SignStepInput struct {
	LeaseID    string
	SignerID   string
	Step       string
	Confidence float64
	ImageURL   string
}

// LeaseService defines methods for managing rental contracts
type LeaseService interface {
	// Create drafts a new lease. The property must be free of live leases.
	Create(ctx context.Context, input *CreateInput) (*Lease, error)
	// GetByID retrieves a lease by its ID.
	GetByID(ctx context.Context, leaseID string) (*Lease, error)
	// List retrieves leases matching the query filters.
	List(ctx context.Context, query *LeaseQuery) ([]*Lease, error)
	// Amend replaces the terms of a draft lease. Only the landlord may
	// amend, and only before signing has begun.
	Amend(ctx context.Context, leaseID, landlordID, terms string) (*Lease, error)
	// SignStep advances the signer's signature record by one step and, once
	// both parties have completed the flow, activates the lease.
	SignStep(ctx context.Context, input *SignStepInput) (*SignatureRecord, error)
	// GetSignature returns the signer's signature record for the lease.
	GetSignature(ctx context.Context, leaseID, signerID string) (*SignatureRecord, error)
	// Terminate ends an active lease before its end date. Either party may
	// terminate; anyone else gets ErrNotParty.
	Terminate(ctx context.Context, leaseID, actorID, reason string) (*Lease, error)
	// ExpireFinished marks active leases whose end date lies before now as
	// expired and returns the number of leases transitioned.
	ExpireFinished(ctx context.Context, now time.Time) (int, error)
}

// LeaseRepository defines methods for lease persistence
type LeaseRepository interface {
	// Create stores a new lease.
	Create(ctx context.Context, lease *Lease) error
	// GetByID retrieves a lease by its ID.
	GetByID(ctx context.Context, leaseID string) (*Lease, error)
	// List retrieves leases matching the query filters.
	List(ctx context.Context, query *LeaseQuery) ([]*Lease, error)
	// GetLiveByPropertyID returns the property's live lease, or ErrNotFound.
	GetLiveByPropertyID(ctx context.Context, propertyID string) (*Lease, error)
	// UpdateByID updates the stored lease.
	UpdateByID(ctx context.Context, lease *Lease) error
	// ListEnded returns active leases whose EndDate lies before now.
	ListEnded(ctx context.Context, now time.Time) ([]*Lease, error)
}

// SignatureRepository defines methods for signature record persistence
type SignatureRepository interface {
	// Create stores a new signature record.
	Create(ctx context.Context, record *SignatureRecord) error
	// GetByLeaseAndSigner returns the signer's record for the lease, or
	// ErrNotFound.
	GetByLeaseAndSigner(ctx context.Context, leaseID, signerID string) (*SignatureRecord, error)
	// ListByLeaseID returns all signature records for the lease.
	ListByLeaseID(ctx context.Context, leaseID string) ([]*SignatureRecord, error)
	// UpdateByID updates the stored signature record.
	UpdateByID(ctx context.Context, record *SignatureRecord) error
}
