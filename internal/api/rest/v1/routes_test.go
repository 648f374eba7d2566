//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"
	"github.com/wilsonA2000/verihome/internal/infrastructure/realtime"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	tokens, err := auth.NewJWTManager(&config.AuthSettings{
		JWTSecret:       "unit-test-secret-0123456789abcdefghij",
		Issuer:          "verihome-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}, log)
	require.NoError(t, err)

	// The public listing route is reachable without a token, so its
	// service call needs a canned answer
	mockPropertyService := new(MockPropertyService)
	mockPropertyService.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	deps := &Services{
		AccountService:      new(MockAccountService),
		PropertyService:     mockPropertyService,
		MatchService:        new(MockMatchService),
		LeaseService:        new(MockLeaseService),
		MessageService:      new(MockMessageService),
		PaymentService:      new(MockPaymentService),
		RatingService:       new(MockRatingService),
		NotificationService: new(MockNotificationService),
		AuditService:        new(MockAuditService),
		Tokens:              tokens,
		Hub:                 realtime.NewHub(log),
		Auth:                &config.AuthSettings{LoginRatePerMin: 100, LoginBurst: 100},
		Logger:              log,
	}

	r := gin.Default()
	SetupRoutes(r, deps)

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/login"},
		{"POST", "/api/v1/auth/refresh"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/properties"},
		{"POST", "/api/v1/properties"},
		{"GET", "/api/v1/properties/mine"},
		{"POST", "/api/v1/matches"},
		{"GET", "/api/v1/matches"},
		{"POST", "/api/v1/leases"},
		{"GET", "/api/v1/leases"},
		{"POST", "/api/v1/threads"},
		{"GET", "/api/v1/messages/unread-count"},
		{"POST", "/api/v1/transactions"},
		{"GET", "/api/v1/payments/balance"},
		{"POST", "/api/v1/payment-plans"},
		{"POST", "/api/v1/ratings"},
		{"GET", "/api/v1/notifications"},
		{"GET", "/api/v1/ws/notifications"},
		{"GET", "/api/v1/admin/users"},
		{"GET", "/api/v1/admin/activity"},
		{"GET", "/api/v1/admin/performance"},
		{"GET", "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}

// TestSetupRoutes_AuthGate verifies protected routes reject anonymous calls
func TestSetupRoutes_AuthGate(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	tokens, err := auth.NewJWTManager(&config.AuthSettings{
		JWTSecret:       "unit-test-secret-0123456789abcdefghij",
		Issuer:          "verihome-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}, log)
	require.NoError(t, err)

	deps := &Services{
		AccountService:      new(MockAccountService),
		PropertyService:     new(MockPropertyService),
		MatchService:        new(MockMatchService),
		LeaseService:        new(MockLeaseService),
		MessageService:      new(MockMessageService),
		PaymentService:      new(MockPaymentService),
		RatingService:       new(MockRatingService),
		NotificationService: new(MockNotificationService),
		AuditService:        new(MockAuditService),
		Tokens:              tokens,
		Hub:                 realtime.NewHub(log),
		Auth:                &config.AuthSettings{LoginRatePerMin: 100, LoginBurst: 100},
		Logger:              log,
	}

	r := gin.Default()
	SetupRoutes(r, deps)

	protected := []struct {
		method string
		url    string
	}{
		{"GET", "/api/v1/auth/me"},
		{"POST", "/api/v1/properties"},
		{"GET", "/api/v1/matches"},
		{"GET", "/api/v1/leases"},
		{"GET", "/api/v1/notifications"},
		{"GET", "/api/v1/admin/activity"},
	}

	for _, tt := range protected {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "Anonymous call should be rejected")
		})
	}
}
