//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
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

	"github.com/stretchr/testify/mock"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, input accounts.RegisterInput) (*accounts.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password, clientIP, userAgent string) (*accounts.User, *accounts.TokenPair, error) {
	args := m.Called(ctx, email, password, clientIP, userAgent)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*accounts.User), args.Get(1).(*accounts.TokenPair), args.Error(2)
}

func (m *MockAccountService) Refresh(ctx context.Context, refreshToken string) (*accounts.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.TokenPair), args.Error(1)
}

func (m *MockAccountService) GetByID(ctx context.Context, userID string) (*accounts.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID string, input accounts.UpdateProfileInput) (*accounts.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.User), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context, query *accounts.UserQuery) ([]*accounts.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounts.User), args.Error(1)
}

// MockPropertyService is a mock implementation of PropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Create(ctx context.Context, landlordID string, input properties.CreateInput) (*properties.Property, error) {
	args := m.Called(ctx, landlordID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*properties.Property), args.Error(1)
}

func (m *MockPropertyService) GetByID(ctx context.Context, propertyID string) (*properties.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*properties.Property), args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, query *properties.PropertyQuery) ([]*properties.Property, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*properties.Property), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, landlordID, propertyID string, input properties.UpdateInput) (*properties.Property, error) {
	args := m.Called(ctx, landlordID, propertyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*properties.Property), args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, landlordID, propertyID string) error {
	args := m.Called(ctx, landlordID, propertyID)
	return args.Error(0)
}

func (m *MockPropertyService) SetStatus(ctx context.Context, propertyID, status string) error {
	args := m.Called(ctx, propertyID, status)
	return args.Error(0)
}

// MockMatchService is a mock implementation of MatchService
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) Create(ctx context.Context, input *matching.CreateInput) (*matching.MatchRequest, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) GetByID(ctx context.Context, matchID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) List(ctx context.Context, query *matching.MatchQuery) ([]*matching.MatchRequest, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) Accept(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) Reject(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) Cancel(ctx context.Context, matchID, tenantID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) ScheduleVisit(ctx context.Context, matchID, landlordID string, visitAt time.Time) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, landlordID, visitAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) CompleteVisit(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) SubmitDocuments(ctx context.Context, matchID, tenantID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) ApproveDocuments(ctx context.Context, matchID, landlordID string) (*matching.MatchRequest, error) {
	args := m.Called(ctx, matchID, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.MatchRequest), args.Error(1)
}

func (m *MockMatchService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

// MockLeaseService is a mock implementation of LeaseService
type MockLeaseService struct {
	mock.Mock
}

func (m *MockLeaseService) Create(ctx context.Context, input *leases.CreateInput) (*leases.Lease, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.Lease), args.Error(1)
}

func (m *MockLeaseService) GetByID(ctx context.Context, leaseID string) (*leases.Lease, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.Lease), args.Error(1)
}

func (m *MockLeaseService) List(ctx context.Context, query *leases.LeaseQuery) ([]*leases.Lease, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*leases.Lease), args.Error(1)
}

func (m *MockLeaseService) SignStep(ctx context.Context, input *leases.SignStepInput) (*leases.SignatureRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.SignatureRecord), args.Error(1)
}

func (m *MockLeaseService) GetSignature(ctx context.Context, leaseID, signerID string) (*leases.SignatureRecord, error) {
	args := m.Called(ctx, leaseID, signerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.SignatureRecord), args.Error(1)
}

func (m *MockLeaseService) Amend(ctx context.Context, leaseID, landlordID, terms string) (*leases.Lease, error) {
	args := m.Called(ctx, leaseID, landlordID, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.Lease), args.Error(1)
}

func (m *MockLeaseService) Terminate(ctx context.Context, leaseID, actorID, reason string) (*leases.Lease, error) {
	args := m.Called(ctx, leaseID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leases.Lease), args.Error(1)
}

func (m *MockLeaseService) ExpireFinished(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

// MockMessageService is a mock implementation of MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) StartThread(ctx context.Context, input *messaging.StartThreadInput) (*messaging.Thread, *messaging.Message, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*messaging.Thread), args.Get(1).(*messaging.Message), args.Error(2)
}

func (m *MockMessageService) GetThread(ctx context.Context, threadID, userID string) (*messaging.Thread, error) {
	args := m.Called(ctx, threadID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Thread), args.Error(1)
}

func (m *MockMessageService) ListThreads(ctx context.Context, query *messaging.ThreadQuery) ([]*messaging.Thread, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messaging.Thread), args.Error(1)
}

func (m *MockMessageService) Send(ctx context.Context, threadID, senderID, body string) (*messaging.Message, error) {
	args := m.Called(ctx, threadID, senderID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessageService) ListMessages(ctx context.Context, query *messaging.MessageQuery, userID string) ([]*messaging.Message, error) {
	args := m.Called(ctx, query, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messaging.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, threadID, userID string) (int, error) {
	args := m.Called(ctx, threadID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMessageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Charge(ctx context.Context, input *payments.ChargeInput) (*payments.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) GetByID(ctx context.Context, transactionID string) (*payments.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, query *payments.TransactionQuery) ([]*payments.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) Settle(ctx context.Context, transactionID, outcome string) (*payments.Transaction, error) {
	args := m.Called(ctx, transactionID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) Refund(ctx context.Context, transactionID string) (*payments.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) CreatePlan(ctx context.Context, input *payments.PlanInput) (*payments.PaymentPlan, []*payments.Installment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*payments.PaymentPlan), args.Get(1).([]*payments.Installment), args.Error(2)
}

func (m *MockPaymentService) GetPlanByLeaseID(ctx context.Context, leaseID string) (*payments.PaymentPlan, []*payments.Installment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*payments.PaymentPlan), args.Get(1).([]*payments.Installment), args.Error(2)
}

func (m *MockPaymentService) PayInstallment(ctx context.Context, installmentID, payerID, method string) (*payments.Transaction, error) {
	args := m.Called(ctx, installmentID, payerID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transaction), args.Error(1)
}

func (m *MockPaymentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentService) Balance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentService) LeaseBalance(ctx context.Context, leaseID string, now time.Time) (*payments.LeaseBalance, error) {
	args := m.Called(ctx, leaseID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.LeaseBalance), args.Error(1)
}

// MockRatingService is a mock implementation of RatingService
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Create(ctx context.Context, input *ratings.CreateInput) (*ratings.Rating, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratings.Rating), args.Error(1)
}

func (m *MockRatingService) GetByID(ctx context.Context, ratingID string) (*ratings.Rating, error) {
	args := m.Called(ctx, ratingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratings.Rating), args.Error(1)
}

func (m *MockRatingService) List(ctx context.Context, query *ratings.RatingQuery) ([]*ratings.Rating, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ratings.Rating), args.Error(1)
}

func (m *MockRatingService) Respond(ctx context.Context, ratingID, revieweeID, response string) (*ratings.Rating, error) {
	args := m.Called(ctx, ratingID, revieweeID, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratings.Rating), args.Error(1)
}

func (m *MockRatingService) Summarize(ctx context.Context, userID string) (*ratings.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratings.Summary), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, ratingID string) error {
	args := m.Called(ctx, ratingID)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, input *notifications.NotifyInput) (*notifications.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, input *activity.RecordInput) {
	m.Called(ctx, input)
}

func (m *MockAuditService) List(ctx context.Context, query *activity.EntryQuery) ([]*activity.Entry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.Entry), args.Error(1)
}

func (m *MockAuditService) Export(ctx context.Context, query *activity.EntryQuery, w io.Writer) (int, error) {
	args := m.Called(ctx, query, w)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditService) BuildReport(ctx context.Context, from, to time.Time) (*activity.Report, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.Report), args.Error(1)
}

func (m *MockAuditService) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
