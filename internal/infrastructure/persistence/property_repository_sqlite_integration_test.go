//go:build integration
// +build integration

package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"
	"github.com/wilsonA2000/verihome/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	property := CreateTestProperty(t, landlord.ID)

	err := ctx.PropertyRepo.Create(context.Background(), property)
	require.NoError(t, err)

	// Verify using GORM model (infrastructure concern)
	var createdModel models.PropertyModel
	err = ctx.DB.First(&createdModel, "id = ?", property.ID).Error
	require.NoError(t, err)
	assert.Equal(t, property.ID, createdModel.ID)
	assert.Equal(t, property.Title, createdModel.Title)
}

func TestPropertySqliteRepository_GetByID_RoundTripsSlices(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	property := CreateTestProperty(t, landlord.ID)
	property.Amenities = []string{"parking", "gym"}
	property.ImageURLs = []string{"https://cdn.example.com/a.jpg"}

	require.NoError(t, ctx.PropertyRepo.Create(context.Background(), property))

	fetched, err := ctx.PropertyRepo.GetByID(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, fetched.ID)
	assert.Equal(t, []string{"parking", "gym"}, fetched.Amenities)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, fetched.ImageURLs)
}

func TestPropertyRepository_Create_InvalidProperty(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	property := &properties.Property{} // Invalid - missing required fields

	err := ctx.PropertyRepo.Create(context.Background(), property)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestPropertyRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.PropertyRepo.GetByID(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.ErrorIs(t, err, properties.ErrNotFound)
}

func TestPropertyRepository_List_WithFilters(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)

	cheap := CreateTestProperty(t, landlord.ID)
	cheap.Title = "Affordable studio near the park"
	cheap.RentPriceCents = 100000000
	require.NoError(t, ctx.PropertyRepo.Create(context.Background(), cheap))

	pricey := CreateTestProperty(t, landlord.ID)
	pricey.Title = "Penthouse with terrace"
	pricey.City = "Medellin"
	pricey.RentPriceCents = 900000000
	require.NoError(t, ctx.PropertyRepo.Create(context.Background(), pricey))

	query := properties.NewPropertyQuery()
	query.City = "Bogota"
	query.MaxPriceCents = 200000000
	list, err := ctx.PropertyRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cheap.ID, list[0].ID)

	query = properties.NewPropertyQuery()
	query.Search = "terrace"
	list, err = ctx.PropertyRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pricey.ID, list[0].ID)
}

func TestPropertyRepository_List_SortAndPagination(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)

	// Create multiple properties with increasing prices
	for i := 1; i <= 3; i++ {
		property := CreateTestProperty(t, landlord.ID)
		property.Title = fmt.Sprintf("Listing number %d", i)
		property.RentPriceCents = int64(i) * 100000000
		require.NoError(t, ctx.PropertyRepo.Create(context.Background(), property))
	}

	query := properties.NewPropertyQuery()
	query.SortBy = "rent_price_cents"
	query.SortOrder = "asc"
	query.Limit = 2
	query.Offset = 1

	list, err := ctx.PropertyRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(200000000), list[0].RentPriceCents)
	assert.Equal(t, int64(300000000), list[1].RentPriceCents)
}

func TestPropertyRepository_List_InvalidQuery(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	query := &properties.PropertyQuery{
		Limit: -1,
	}
	_, err := ctx.PropertyRepo.List(context.Background(), query)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query parameters")
}

func TestPropertySqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	property := CreateTestProperty(t, landlord.ID)

	require.NoError(t, ctx.PropertyRepo.Create(context.Background(), property))

	// Update status
	property.Status = properties.StatusRented
	require.NoError(t, ctx.PropertyRepo.UpdateByID(context.Background(), property))

	// Verify update using GORM model
	var updatedModel models.PropertyModel
	require.NoError(t, ctx.DB.First(&updatedModel, "id = ?", property.ID).Error)
	assert.Equal(t, properties.StatusRented, updatedModel.Status)
}

func TestPropertySqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	landlord := CreateTestUser(t, accounts.RoleLandlord)
	property := CreateTestProperty(t, landlord.ID)

	require.NoError(t, ctx.PropertyRepo.Create(context.Background(), property))
	require.NoError(t, ctx.PropertyRepo.DeleteByID(context.Background(), property.ID))

	// Verify deletion using GORM model
	var deletedModel models.PropertyModel
	err := ctx.DB.First(&deletedModel, "id = ?", property.ID).Error
	assert.Error(t, err)
}
