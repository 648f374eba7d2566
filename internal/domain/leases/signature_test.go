//go:build unit
// +build unit

package leases

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *SignatureRecord {
	return &SignatureRecord{
		ID:              uuid.New().String(),
		LeaseID:         uuid.New().String(),
		SignerID:        uuid.New().String(),
		Role:            "tenant",
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestSignatureFlow_HappyPath(t *testing.T) {
	record := newTestRecord()
	assert.Equal(t, StepDocument, record.NextStep())

	require.NoError(t, record.ApplyDocumentStep(0.93))
	assert.True(t, record.DocumentVerified)
	assert.Equal(t, StepFace, record.NextStep())

	require.NoError(t, record.ApplyFaceStep(0.88))
	assert.True(t, record.FaceVerified)
	assert.Equal(t, StepSignature, record.NextStep())

	now := time.Now().UTC()
	require.NoError(t, record.ApplySignatureStep("https://cdn.example.com/sig.png", now))
	assert.True(t, record.Completed())
	assert.Equal(t, "", record.NextStep())
	assert.Equal(t, now, *record.CompletedAt)
}

func TestSignatureFlow_OutOfOrder(t *testing.T) {
	record := newTestRecord()

	err := record.ApplyFaceStep(0.9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepOutOfOrder)

	err = record.ApplySignatureStep("https://cdn.example.com/sig.png", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepOutOfOrder)

	require.NoError(t, record.ApplyDocumentStep(0.9))

	err = record.ApplyDocumentStep(0.95)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepOutOfOrder)
}

func TestSignatureFlow_LowConfidence(t *testing.T) {
	record := newTestRecord()

	err := record.ApplyDocumentStep(0.84)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLowConfidence)
	assert.False(t, record.DocumentVerified)

	require.NoError(t, record.ApplyDocumentStep(0.85))

	err = record.ApplyFaceStep(0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLowConfidence)
	assert.False(t, record.FaceVerified)
}

func TestSignatureFlow_AlreadySigned(t *testing.T) {
	record := newTestRecord()
	require.NoError(t, record.ApplyDocumentStep(0.9))
	require.NoError(t, record.ApplyFaceStep(0.9))
	require.NoError(t, record.ApplySignatureStep("https://cdn.example.com/sig.png", time.Now()))

	err := record.ApplyDocumentStep(0.9)
	assert.ErrorIs(t, err, ErrAlreadySigned)

	err = record.ApplySignatureStep("https://cdn.example.com/other.png", time.Now())
	assert.ErrorIs(t, err, ErrAlreadySigned)
}

func TestLeaseValidation(t *testing.T) {
	now := time.Now().UTC()
	lease := &Lease{
		ID:              uuid.New().String(),
		PropertyID:      uuid.New().String(),
		LandlordID:      uuid.New().String(),
		TenantID:        uuid.New().String(),
		Status:          StatusDraft,
		StartDate:       now,
		EndDate:         now.AddDate(1, 0, 0),
		RentCents:       150000,
		DepositCents:    150000,
		Currency:        "COP",
		PaymentDay:      5,
		DateTimeCreated: now,
	}
	require.NoError(t, lease.Validate())

	endBeforeStart := *lease
	endBeforeStart.EndDate = now.AddDate(0, 0, -1)
	err := endBeforeStart.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endafterstart")

	badDay := *lease
	badDay.PaymentDay = 31
	err = badDay.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PaymentDay")

	badCurrency := *lease
	badCurrency.Currency = "cop"
	err = badCurrency.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Currency")
}

func TestLeaseIsLive(t *testing.T) {
	lease := &Lease{Status: StatusActive}
	assert.True(t, lease.IsLive())

	lease.Status = StatusPendingTenant
	assert.True(t, lease.IsLive())

	lease.Status = StatusDraft
	assert.False(t, lease.IsLive())

	lease.Status = StatusTerminated
	assert.False(t, lease.IsLive())
}
