//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testPropertyID = "3b241101-e2bb-4255-8caf-4136c566a962"
	testTenantID   = "110ec58a-a0f2-4ac4-8393-c866d813b8d1"
	testLeaseID    = "9f8b1c9e-2d3a-4f5b-8c7d-1e2f3a4b5c6d"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Email:     "ana@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "García",
		Role:      "tenant",
	}

	tests := []struct {
		name      string
		mutate    func(r *RegisterRequest)
		shouldErr bool
	}{
		{"Valid tenant", func(r *RegisterRequest) {}, false},
		{"Valid landlord", func(r *RegisterRequest) { r.Role = "landlord" }, false},
		{"Valid service provider", func(r *RegisterRequest) { r.Role = "service_provider" }, false},
		{"Missing email", func(r *RegisterRequest) { r.Email = "" }, true},
		{"Malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, true},
		{"Short password", func(r *RegisterRequest) { r.Password = "short" }, true},
		{"Unknown role", func(r *RegisterRequest) { r.Role = "admin" }, true},
		{"Missing first name", func(r *RegisterRequest) { r.FirstName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := valid
			tt.mutate(&request)

			err := request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   LoginRequest
		shouldErr bool
	}{
		{"Valid", LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"}, false},
		{"Missing password", LoginRequest{Email: "ana@example.com"}, true},
		{"Missing email", LoginRequest{Password: "s3cret-pass"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestCreatePropertyRequest_Validate(t *testing.T) {
	valid := CreatePropertyRequest{
		Title:          "Bright two bedroom apartment",
		PropertyType:   "apartment",
		Address:        "Calle 93 #12-20",
		City:           "Bogotá",
		Country:        "Colombia",
		Bedrooms:       2,
		Bathrooms:      1,
		RentPriceCents: 250000000,
		Currency:       "COP",
	}

	tests := []struct {
		name      string
		mutate    func(r *CreatePropertyRequest)
		shouldErr bool
	}{
		{"Valid listing", func(r *CreatePropertyRequest) {}, false},
		{"No currency (valid, defaulted)", func(r *CreatePropertyRequest) { r.Currency = "" }, false},
		{"Title too short", func(r *CreatePropertyRequest) { r.Title = "Apt" }, true},
		{"Unknown property type", func(r *CreatePropertyRequest) { r.PropertyType = "castle" }, true},
		{"Zero rent", func(r *CreatePropertyRequest) { r.RentPriceCents = 0 }, true},
		{"Lowercase currency", func(r *CreatePropertyRequest) { r.Currency = "cop" }, true},
		{"Latitude out of range", func(r *CreatePropertyRequest) { r.Latitude = 95 }, true},
		{"Bad image URL", func(r *CreatePropertyRequest) { r.ImageURLs = []string{"not a url"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := valid
			tt.mutate(&request)

			err := request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestCreateMatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreateMatchRequest
		shouldErr bool
	}{
		{"Valid", CreateMatchRequest{PropertyID: testPropertyID, Message: "Interested"}, false},
		{"Missing property", CreateMatchRequest{Message: "Interested"}, true},
		{"Malformed property id", CreateMatchRequest{PropertyID: "abc"}, true},
		{"Negative income", CreateMatchRequest{PropertyID: testPropertyID, MonthlyIncomeCents: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestCreateLeaseRequest_Validate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := CreateLeaseRequest{
		PropertyID: testPropertyID,
		TenantID:   testTenantID,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		RentCents:  250000000,
		PaymentDay: 5,
	}

	tests := []struct {
		name      string
		mutate    func(r *CreateLeaseRequest)
		shouldErr bool
	}{
		{"Valid lease", func(r *CreateLeaseRequest) {}, false},
		{"End before start", func(r *CreateLeaseRequest) { r.EndDate = start.AddDate(0, 0, -1) }, true},
		{"End equals start", func(r *CreateLeaseRequest) { r.EndDate = start }, true},
		{"Payment day past 28", func(r *CreateLeaseRequest) { r.PaymentDay = 29 }, true},
		{"Missing tenant", func(r *CreateLeaseRequest) { r.TenantID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := valid
			tt.mutate(&request)

			err := request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestSignStepRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   SignStepRequest
		shouldErr bool
	}{
		{"Valid document step", SignStepRequest{Step: "document", ImageURL: "https://cdn.example.com/id.jpg"}, false},
		{"Valid face step", SignStepRequest{Step: "face", Confidence: 0.97}, false},
		{"Valid signature step", SignStepRequest{Step: "signature"}, false},
		{"Unknown step", SignStepRequest{Step: "fingerprint"}, true},
		{"Confidence above one", SignStepRequest{Step: "face", Confidence: 1.5}, true},
		{"Bad image URL", SignStepRequest{Step: "document", ImageURL: "not a url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestChargeRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   ChargeRequest
		shouldErr bool
	}{
		{"Valid rent charge", ChargeRequest{LeaseID: testLeaseID, PayeeID: testTenantID, TransactionType: "rent", AmountCents: 100000}, false},
		{"Valid service charge without lease", ChargeRequest{PayeeID: testTenantID, TransactionType: "service", AmountCents: 5000}, false},
		{"Refund type rejected", ChargeRequest{PayeeID: testTenantID, TransactionType: "refund", AmountCents: 100}, true},
		{"Zero amount", ChargeRequest{PayeeID: testTenantID, TransactionType: "rent"}, true},
		{"Missing payee", ChargeRequest{TransactionType: "rent", AmountCents: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestCreateRatingRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreateRatingRequest
		shouldErr bool
	}{
		{"Valid rating", CreateRatingRequest{RevieweeID: testTenantID, LeaseID: testLeaseID, OverallScore: 9}, false},
		{"Score above ten", CreateRatingRequest{RevieweeID: testTenantID, LeaseID: testLeaseID, OverallScore: 11}, true},
		{"Score zero", CreateRatingRequest{RevieweeID: testTenantID, LeaseID: testLeaseID}, true},
		{"Missing lease", CreateRatingRequest{RevieweeID: testTenantID, OverallScore: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestErrorResponse_Creation(t *testing.T) {
	errResp := ErrorResponse{
		Message: "Test error",
	}

	require.Equal(t, "Test error", errResp.Message)
}

func TestInfoResponse_Creation(t *testing.T) {
	infoResp := InfoResponse{
		Message: "Operation successful",
	}

	require.Equal(t, "Operation successful", infoResp.Message)
}
