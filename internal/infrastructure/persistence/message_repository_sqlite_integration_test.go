//go:build integration
// +build integration

package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestThread(t *testing.T, initiatorID, recipientID string) *messaging.Thread {
	t.Helper()

	now := time.Now().UTC()
	return &messaging.Thread{
		ID:              uuid.NewString(),
		Subject:         "About your listing",
		InitiatorID:     initiatorID,
		RecipientID:     recipientID,
		LastMessageAt:   now,
		DateTimeCreated: now,
	}
}

func createTestMessage(t *testing.T, threadID, senderID, body string) *messaging.Message {
	t.Helper()

	return &messaging.Message{
		ID:              uuid.NewString(),
		ThreadID:        threadID,
		SenderID:        senderID,
		Body:            body,
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestThreadRepository_GetByParticipants(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	tenant := CreateTestUser(t, accounts.RoleTenant)
	landlord := CreateTestUser(t, accounts.RoleLandlord)
	thread := createTestThread(t, tenant.ID, landlord.ID)

	require.NoError(t, ctx.ThreadRepo.Create(context.Background(), thread))

	// The lookup works regardless of which side initiated
	fetched, err := ctx.ThreadRepo.GetByParticipants(context.Background(), landlord.ID, tenant.ID, "")
	require.NoError(t, err)
	assert.Equal(t, thread.ID, fetched.ID)

	_, err = ctx.ThreadRepo.GetByParticipants(context.Background(), tenant.ID, uuid.NewString(), "")
	assert.ErrorIs(t, err, messaging.ErrThreadNotFound)
}

func TestThreadRepository_List_OrdersByActivity(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	tenant := CreateTestUser(t, accounts.RoleTenant)
	landlordA := CreateTestUser(t, accounts.RoleLandlord)
	landlordB := CreateTestUser(t, accounts.RoleLandlord)

	older := createTestThread(t, tenant.ID, landlordA.ID)
	older.LastMessageAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, ctx.ThreadRepo.Create(context.Background(), older))

	newer := createTestThread(t, tenant.ID, landlordB.ID)
	require.NoError(t, ctx.ThreadRepo.Create(context.Background(), newer))

	list, err := ctx.ThreadRepo.List(context.Background(), messaging.NewThreadQuery(tenant.ID))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestMessageRepository_ListOldestFirst(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	tenant := CreateTestUser(t, accounts.RoleTenant)
	landlord := CreateTestUser(t, accounts.RoleLandlord)
	thread := createTestThread(t, tenant.ID, landlord.ID)
	require.NoError(t, ctx.ThreadRepo.Create(context.Background(), thread))

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		message := createTestMessage(t, thread.ID, tenant.ID, fmt.Sprintf("message %d", i))
		message.DateTimeCreated = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, ctx.MessageRepo.Create(context.Background(), message))
	}

	list, err := ctx.MessageRepo.List(context.Background(), messaging.NewMessageQuery(thread.ID))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "message 0", list[0].Body)
	assert.Equal(t, "message 2", list[2].Body)
}

func TestMessageRepository_MarkThreadReadAndCountUnread(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	tenant := CreateTestUser(t, accounts.RoleTenant)
	landlord := CreateTestUser(t, accounts.RoleLandlord)
	thread := createTestThread(t, tenant.ID, landlord.ID)
	require.NoError(t, ctx.ThreadRepo.Create(context.Background(), thread))

	// Two messages from the tenant, one from the landlord
	require.NoError(t, ctx.MessageRepo.Create(context.Background(), createTestMessage(t, thread.ID, tenant.ID, "hello")))
	require.NoError(t, ctx.MessageRepo.Create(context.Background(), createTestMessage(t, thread.ID, tenant.ID, "anyone there?")))
	require.NoError(t, ctx.MessageRepo.Create(context.Background(), createTestMessage(t, thread.ID, landlord.ID, "hi!")))

	count, err := ctx.MessageRepo.CountUnread(context.Background(), landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := ctx.MessageRepo.MarkThreadRead(context.Background(), thread.ID, landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	count, err = ctx.MessageRepo.CountUnread(context.Background(), landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The tenant still has the landlord's reply unread
	count, err = ctx.MessageRepo.CountUnread(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
