//go:build integration
// +build integration

package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/infrastructure/tasks"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"
)

// recordedPush is one payload captured by the collecting broadcaster.
type recordedPush struct {
	UserID  string
	Payload interface{}
}

// collectingBroadcaster stores pushes in memory so tests can assert on
// live delivery without a websocket hub.
type collectingBroadcaster struct {
	mu     sync.Mutex
	pushes []recordedPush
}

// Push records the payload instead of delivering it.
func (b *collectingBroadcaster) Push(userID string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushes = append(b.pushes, recordedPush{UserID: userID, Payload: payload})
}

// CountFor returns how many pushes were addressed to the user.
func (b *collectingBroadcaster) CountFor(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, push := range b.pushes {
		if push.UserID == userID {
			count++
		}
	}
	return count
}

// collectingEnqueuer stores tasks in memory instead of running them.
type collectingEnqueuer struct {
	mu    sync.Mutex
	tasks []tasks.Task
}

// Enqueue records the task and always accepts it.
func (e *collectingEnqueuer) Enqueue(task tasks.Task) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, task)
	return true
}

// CountOf returns how many tasks of the kind were enqueued.
func (e *collectingEnqueuer) CountOf(kind tasks.Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, task := range e.tasks {
		if task.Kind == kind {
			count++
		}
	}
	return count
}

// syncRecorder writes audit entries synchronously so tests can query them
// without running the audit worker.
type syncRecorder struct {
	entryRepository activity.EntryRepository
}

// Record stores the entry immediately.
func (r *syncRecorder) Record(ctx context.Context, input *activity.RecordInput) {
	entry := &activity.Entry{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		Action:          input.Action,
		TargetID:        input.TargetID,
		Detail:          input.Detail,
		ClientIP:        input.ClientIP,
		UserAgent:       input.UserAgent,
		DateTimeCreated: time.Now().UTC(),
	}
	_ = r.entryRepository.Create(ctx, entry)
}

// TestServices bundles the full service stack over a test database,
// with the side-effect dependencies replaced by in-memory doubles.
type TestServices struct {
	Repos *persistence.TestContext

	Accounts      accounts.AccountService
	Properties    properties.PropertyService
	Matches       matching.MatchService
	Leases        leases.LeaseService
	Messages      messaging.MessageService
	Payments      payments.PaymentService
	Ratings       ratings.RatingService
	Notifications notifications.NotificationService
	Audit         activity.AuditService

	Broadcaster *collectingBroadcaster
	Queue       *collectingEnqueuer
	Tokens      accounts.TokenIssuer
	Hasher      accounts.PasswordHasher
}

// testAuthSettings returns JWT settings suitable for tests.
func testAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		JWTSecret:       "integration-test-secret-0123456789abcdef",
		Issuer:          "verihome-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

// SeedUser persists a ready-made user with the given role.
func SeedUser(t *testing.T, services *TestServices, role string) *accounts.User {
	t.Helper()

	user := persistence.CreateTestUser(t, role)
	require.NoError(t, services.Repos.UserRepo.Create(context.Background(), user))
	return user
}

// SeedProperty persists an available property owned by the landlord.
func SeedProperty(t *testing.T, services *TestServices, landlordID string) *properties.Property {
	t.Helper()

	property := persistence.CreateTestProperty(t, landlordID)
	require.NoError(t, services.Repos.PropertyRepo.Create(context.Background(), property))
	return property
}

// SeedLease persists a lease over the property in the given status.
func SeedLease(t *testing.T, services *TestServices, property *properties.Property, tenantID, status string) *leases.Lease {
	t.Helper()

	lease := persistence.CreateTestLease(t, property, tenantID)
	lease.Status = status
	require.NoError(t, services.Repos.LeaseRepo.Create(context.Background(), lease))
	return lease
}

// SetupTestServices creates a test database and wires every service
// over it. Audit records are written synchronously and notifications
// are collected instead of pushed.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	tc := persistence.SetupTestDB(t, dbType)
	log := testutil.SetupTestLogger(t)

	broadcaster := &collectingBroadcaster{}
	queue := &collectingEnqueuer{}
	recorder := &syncRecorder{entryRepository: tc.ActivityRepo}

	hasher, err := auth.NewBcryptHasher(log)
	require.NoError(t, err, "Failed to create password hasher")

	tokens, err := auth.NewJWTManager(testAuthSettings(), log)
	require.NoError(t, err, "Failed to create JWT manager")

	notificationService, err := NewNotificationService(tc.NotificationRepo, broadcaster, log)
	require.NoError(t, err, "Failed to create notification service")

	accountService, err := NewAccountService(tc.UserRepo, hasher, tokens, recorder, queue, log)
	require.NoError(t, err, "Failed to create account service")

	propertyService, err := NewPropertyService(tc.PropertyRepo, tc.LeaseRepo, recorder, log)
	require.NoError(t, err, "Failed to create property service")

	matchService, err := NewMatchService(tc.MatchRepo, tc.PropertyRepo, notificationService, recorder, log)
	require.NoError(t, err, "Failed to create match service")

	leaseService, err := NewLeaseService(tc.LeaseRepo, tc.SignatureRepo, propertyService, tc.MatchRepo, tc.UserRepo, notificationService, recorder, queue, log)
	require.NoError(t, err, "Failed to create lease service")

	messageService, err := NewMessageService(tc.ThreadRepo, tc.MessageRepo, tc.UserRepo, notificationService, log)
	require.NoError(t, err, "Failed to create message service")

	paymentService, err := NewPaymentService(tc.TransactionRepo, tc.PlanRepo, tc.LeaseRepo, notificationService, recorder, log)
	require.NoError(t, err, "Failed to create payment service")

	ratingService, err := NewRatingService(tc.RatingRepo, tc.LeaseRepo, notificationService, recorder, log)
	require.NoError(t, err, "Failed to create rating service")

	auditService, _, err := NewAuditService(tc.ActivityRepo, log)
	require.NoError(t, err, "Failed to create audit service")

	return &TestServices{
		Repos:         tc,
		Accounts:      accountService,
		Properties:    propertyService,
		Matches:       matchService,
		Leases:        leaseService,
		Messages:      messageService,
		Payments:      paymentService,
		Ratings:       ratingService,
		Notifications: notificationService,
		Audit:         auditService,
		Broadcaster:   broadcaster,
		Queue:         queue,
		Tokens:        tokens,
		Hasher:        hasher,
	}
}
