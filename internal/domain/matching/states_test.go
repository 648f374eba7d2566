//go:build unit
// +build unit

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_LegalMoves(t *testing.T) {
	legal := []struct {
		from string
		to   string
	}{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusAccepted, StatusVisitScheduled},
		{StatusVisitScheduled, StatusVisitCompleted},
		{StatusVisitCompleted, StatusDocumentsSubmitted},
		{StatusDocumentsSubmitted, StatusDocumentsApproved},
		{StatusDocumentsSubmitted, StatusRejected},
		{StatusDocumentsApproved, StatusContractCreated},
		{StatusAccepted, StatusExpired},
		{StatusVisitScheduled, StatusCancelled},
	}

	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "expected %s -> %s to be legal", tc.from, tc.to)
	}
}

func TestCanTransition_IllegalMoves(t *testing.T) {
	illegal := []struct {
		from string
		to   string
	}{
		{StatusPending, StatusVisitScheduled},
		{StatusPending, StatusContractCreated},
		{StatusAccepted, StatusDocumentsSubmitted},
		{StatusVisitCompleted, StatusDocumentsApproved},
		{StatusDocumentsApproved, StatusDocumentsSubmitted},
		{StatusRejected, StatusAccepted},
		{StatusCancelled, StatusPending},
		{StatusExpired, StatusAccepted},
		{StatusContractCreated, StatusCancelled},
		{StatusAccepted, StatusAccepted},
	}

	for _, tc := range illegal {
		assert.False(t, CanTransition(tc.from, tc.to), "expected %s -> %s to be illegal", tc.from, tc.to)
	}
}

func TestTransition_ErrorNamesBothStates(t *testing.T) {
	err := Transition(StatusPending, StatusContractCreated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), StatusPending)
	assert.Contains(t, err.Error(), StatusContractCreated)

	err = Transition(StatusDocumentsApproved, StatusContractCreated)
	assert.NoError(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusContractCreated))
	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusExpired))

	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusAccepted))
	assert.False(t, IsTerminal(StatusVisitScheduled))
	assert.False(t, IsTerminal(StatusDocumentsSubmitted))
}

func TestStage(t *testing.T) {
	assert.Equal(t, StageVisit, Stage(StatusPending))
	assert.Equal(t, StageVisit, Stage(StatusAccepted))
	assert.Equal(t, StageVisit, Stage(StatusVisitScheduled))
	assert.Equal(t, StageVisit, Stage(StatusVisitCompleted))
	assert.Equal(t, StageDocuments, Stage(StatusDocumentsSubmitted))
	assert.Equal(t, StageDocuments, Stage(StatusDocumentsApproved))
	assert.Equal(t, StageContract, Stage(StatusContractCreated))
	assert.Equal(t, StageClosed, Stage(StatusRejected))
	assert.Equal(t, StageClosed, Stage(StatusCancelled))
	assert.Equal(t, StageClosed, Stage(StatusExpired))
}
