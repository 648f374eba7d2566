//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_CreateRespondSummarize(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	landlord := SeedUser(t, services, accounts.RoleLandlord)
	tenant := SeedUser(t, services, accounts.RoleTenant)
	property := SeedProperty(t, services, landlord.ID)
	lease := SeedLease(t, services, property, tenant.ID, leases.StatusActive)

	rating, err := services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:         tenant.ID,
		RevieweeID:         landlord.ID,
		LeaseID:            lease.ID,
		OverallScore:       9,
		CommunicationScore: 8,
		PunctualityScore:   10,
		CareScore:          9,
		Comment:            "Responsive landlord, repairs handled quickly.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, services.Broadcaster.CountFor(landlord.ID), "the reviewee hears about the rating")
	assert.Contains(t, auditActions(t, services, tenant.ID), activity.ActionRatingCreate)

	// Ratings run both ways on the same lease.
	_, err = services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:   landlord.ID,
		RevieweeID:   tenant.ID,
		LeaseID:      lease.ID,
		OverallScore: 7,
	})
	require.NoError(t, err)

	_, err = services.Ratings.Respond(ctx, rating.ID, tenant.ID, "Thanks!")
	assert.ErrorIs(t, err, ratings.ErrNotReviewee)

	responded, err := services.Ratings.Respond(ctx, rating.ID, landlord.ID, "Thanks for taking good care of the place.")
	require.NoError(t, err)
	assert.Equal(t, "Thanks for taking good care of the place.", responded.Response)
	require.NotNil(t, responded.RespondedAt)

	_, err = services.Ratings.Respond(ctx, rating.ID, landlord.ID, "One more thing.")
	assert.ErrorIs(t, err, ratings.ErrAlreadyResponded)

	summary, err := services.Ratings.Summarize(ctx, landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.InDelta(t, 9.0, summary.AverageOverall, 0.001)
	assert.Equal(t, int64(1), summary.Distribution[9])
	assert.InDelta(t, 1.0, summary.ResponseRate, 0.001)

	query := ratings.NewRatingQuery()
	query.RevieweeID = landlord.ID
	list, err := services.Ratings.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rating.ID, list[0].ID)
}

func TestRatingService_CreateGuards(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	landlord := SeedUser(t, services, accounts.RoleLandlord)
	tenant := SeedUser(t, services, accounts.RoleTenant)
	bystander := SeedUser(t, services, accounts.RoleTenant)
	property := SeedProperty(t, services, landlord.ID)
	lease := SeedLease(t, services, property, tenant.ID, leases.StatusActive)

	_, err := services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:   tenant.ID,
		RevieweeID:   tenant.ID,
		LeaseID:      lease.ID,
		OverallScore: 10,
	})
	assert.ErrorIs(t, err, ratings.ErrSelfRating)

	_, err = services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:   bystander.ID,
		RevieweeID:   landlord.ID,
		LeaseID:      lease.ID,
		OverallScore: 8,
	})
	assert.ErrorIs(t, err, ratings.ErrNoSharedLease)

	input := &ratings.CreateInput{
		ReviewerID:   tenant.ID,
		RevieweeID:   landlord.ID,
		LeaseID:      lease.ID,
		OverallScore: 8,
	}
	_, err = services.Ratings.Create(ctx, input)
	require.NoError(t, err)
	_, err = services.Ratings.Create(ctx, input)
	assert.ErrorIs(t, err, ratings.ErrAlreadyRated)
}

func TestRatingService_LeaseMustHaveStarted(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	landlord := SeedUser(t, services, accounts.RoleLandlord)
	tenant := SeedUser(t, services, accounts.RoleTenant)
	drafted := SeedProperty(t, services, landlord.ID)
	finished := SeedProperty(t, services, landlord.ID)

	draft := SeedLease(t, services, drafted, tenant.ID, leases.StatusDraft)
	_, err := services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:   tenant.ID,
		RevieweeID:   landlord.ID,
		LeaseID:      draft.ID,
		OverallScore: 8,
	})
	assert.ErrorIs(t, err, ratings.ErrNoSharedLease, "an unsigned lease earns no review")

	// A finished lease can still be reviewed.
	terminated := SeedLease(t, services, finished, tenant.ID, leases.StatusTerminated)
	_, err = services.Ratings.Create(ctx, &ratings.CreateInput{
		ReviewerID:   tenant.ID,
		RevieweeID:   landlord.ID,
		LeaseID:      terminated.ID,
		OverallScore: 6,
	})
	require.NoError(t, err)
}
