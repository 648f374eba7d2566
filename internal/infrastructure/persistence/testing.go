//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	UserRepo         accounts.UserRepository
	PropertyRepo     properties.PropertyRepository
	MatchRepo        matching.MatchRepository
	LeaseRepo        leases.LeaseRepository
	SignatureRepo    leases.SignatureRepository
	ThreadRepo       messaging.ThreadRepository
	MessageRepo      messaging.MessageRepository
	TransactionRepo  payments.TransactionRepository
	PlanRepo         payments.PlanRepository
	RatingRepo       ratings.RatingRepository
	NotificationRepo notifications.NotificationRepository
	ActivityRepo     activity.EntryRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = MigrateAll(db)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	log := testutil.SetupTestLogger(t)

	tc := &TestContext{DB: db}

	tc.UserRepo, err = NewGormUserRepository(db, log)
	require.NoError(t, err, "Failed to create user repository")

	tc.PropertyRepo, err = NewGormPropertyRepository(db, log)
	require.NoError(t, err, "Failed to create property repository")

	tc.MatchRepo, err = NewGormMatchRepository(db, log)
	require.NoError(t, err, "Failed to create match repository")

	tc.LeaseRepo, err = NewGormLeaseRepository(db, log)
	require.NoError(t, err, "Failed to create lease repository")

	tc.SignatureRepo, err = NewGormSignatureRepository(db, log)
	require.NoError(t, err, "Failed to create signature repository")

	tc.ThreadRepo, err = NewGormThreadRepository(db, log)
	require.NoError(t, err, "Failed to create thread repository")

	tc.MessageRepo, err = NewGormMessageRepository(db, log)
	require.NoError(t, err, "Failed to create message repository")

	tc.TransactionRepo, err = NewGormTransactionRepository(db, log)
	require.NoError(t, err, "Failed to create transaction repository")

	tc.PlanRepo, err = NewGormPlanRepository(db, log)
	require.NoError(t, err, "Failed to create plan repository")

	tc.RatingRepo, err = NewGormRatingRepository(db, log)
	require.NoError(t, err, "Failed to create rating repository")

	tc.NotificationRepo, err = NewGormNotificationRepository(db, log)
	require.NoError(t, err, "Failed to create notification repository")

	tc.ActivityRepo, err = NewGormActivityRepository(db, log)
	require.NoError(t, err, "Failed to create activity repository")

	return tc
}

// CreateTestUser builds a valid user with default values
func CreateTestUser(t *testing.T, role string) *accounts.User {
	t.Helper()

	id := uuid.NewString()
	return &accounts.User{
		ID:              id,
		Email:           "user-" + id[:8] + "@example.com",
		PasswordHash:    "$2a$10$abcdefghijklmnopqrstuv",
		FirstName:       "Test",
		LastName:        "User",
		Role:            role,
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestProperty builds a valid property owned by the landlord
func CreateTestProperty(t *testing.T, landlordID string) *properties.Property {
	t.Helper()

	return &properties.Property{
		ID:              uuid.NewString(),
		LandlordID:      landlordID,
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
		Amenities:       []string{"parking", "laundry"},
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestMatch builds a valid pending match request
func CreateTestMatch(t *testing.T, property *properties.Property, tenantID string) *matching.MatchRequest {
	t.Helper()

	now := time.Now().UTC()
	return &matching.MatchRequest{
		ID:              uuid.NewString(),
		PropertyID:      property.ID,
		TenantID:        tenantID,
		LandlordID:      property.LandlordID,
		Status:          matching.StatusPending,
		Message:         "I would like to rent this apartment",
		ExpiresAt:       now.Add(30 * 24 * time.Hour),
		DateTimeCreated: now,
	}
}

// CreateTestLease builds a valid draft lease over the property
func CreateTestLease(t *testing.T, property *properties.Property, tenantID string) *leases.Lease {
	t.Helper()

	now := time.Now().UTC()
	return &leases.Lease{
		ID:              uuid.NewString(),
		PropertyID:      property.ID,
		LandlordID:      property.LandlordID,
		TenantID:        tenantID,
		Status:          leases.StatusDraft,
		StartDate:       now,
		EndDate:         now.AddDate(1, 0, 0),
		RentCents:       property.RentPriceCents,
		DepositCents:    property.RentPriceCents,
		Currency:        property.Currency,
		PaymentDay:      5,
		DateTimeCreated: now,
	}
}
