package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PropertyHandler defines the interface for handling listing operations
type PropertyHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	ListMine(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// propertyHandler struct holds the property service
type propertyHandler struct {
	propertyService properties.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService properties.PropertyService) PropertyHandler {
	return &propertyHandler{
		propertyService: propertyService,
	}
}

// Create handles the POST request to publish a listing
// @Summary Publish a new property listing
// @Description Create a listing owned by the authenticated landlord.
// @Tags Property
// @Accept json
// @Produce json
// @Param requestBody body CreatePropertyRequest true "Listing Data"
// @Success 201 {object} properties.Property
// @Failure 400 {object} ErrorResponse
// @Router /properties [post]
func (handler *propertyHandler) Create(ctx *gin.Context) {
	var request CreatePropertyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid listing data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	property, err := handler.propertyService.Create(ctx, middleware.UserID(ctx), properties.CreateInput{
		Title:          request.Title,
		Description:    request.Description,
		PropertyType:   request.PropertyType,
		Address:        request.Address,
		City:           request.City,
		State:          request.State,
		Country:        request.Country,
		Latitude:       request.Latitude,
		Longitude:      request.Longitude,
		Bedrooms:       request.Bedrooms,
		Bathrooms:      request.Bathrooms,
		AreaSqm:        request.AreaSqm,
		RentPriceCents: request.RentPriceCents,
		DepositCents:   request.DepositCents,
		Currency:       request.Currency,
		Amenities:      request.Amenities,
		ImageURLs:      request.ImageURLs,
		PetsAllowed:    request.PetsAllowed,
		Furnished:      request.Furnished,
	})
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error creating listing: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, property)
}

// List handles the GET request to search listings with optional query parameters
// @Summary Search property listings
// @Description Fetch listings filtered by city, type, status, price range, rooms and text search, with pagination and sorting options.
// @Tags Property
// @Accept json
// @Produce json
// @Param city query string false "City"
// @Param propertyType query string false "Property Type"
// @Param status query string false "Listing Status"
// @Param minPriceCents query int false "Minimum rent in cents"
// @Param maxPriceCents query int false "Maximum rent in cents"
// @Param minBedrooms query int false "Minimum bedrooms"
// @Param minBathrooms query int false "Minimum bathrooms"
// @Param furnished query bool false "Furnished only"
// @Param petsAllowed query bool false "Pets allowed only"
// @Param search query string false "Text search on title and description"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} properties.Property
// @Failure 400 {object} ErrorResponse
// @Router /properties [get]
func (handler *propertyHandler) List(ctx *gin.Context) {
	query := properties.NewPropertyQuery()
	bindPropertyQuery(ctx, query)

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	listings, err := handler.propertyService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, listings)
}

// ListMine handles the GET request for the landlord's own listings
// @Summary List the authenticated landlord's own listings
// @Description Fetch every listing owned by the authenticated landlord regardless of status.
// @Tags Property
// @Accept json
// @Produce json
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} properties.Property
// @Failure 400 {object} ErrorResponse
// @Router /properties/mine [get]
func (handler *propertyHandler) ListMine(ctx *gin.Context) {
	query := properties.NewPropertyQuery()
	bindPropertyQuery(ctx, query)
	query.LandlordID = middleware.UserID(ctx)

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	listings, err := handler.propertyService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, listings)
}

// GetByID handles the GET request to retrieve a listing by ID
// @Summary Retrieve a property listing by ID
// @Description Fetch a single listing with all its attributes.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} properties.Property
// @Failure 404 {object} ErrorResponse
// @Router /properties/{id} [get]
func (handler *propertyHandler) GetByID(ctx *gin.Context) {
	propertyID := ctx.Param("id")

	property, err := handler.propertyService.GetByID(ctx, propertyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("property with id %s not found", propertyID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, property)
}

// Update handles the PUT request to modify a listing
// @Summary Update a property listing
// @Description Apply the provided listing changes; absent fields stay untouched. Owner only.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param requestBody body UpdatePropertyRequest true "Listing Changes"
// @Success 200 {object} properties.Property
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /properties/{id} [put]
func (handler *propertyHandler) Update(ctx *gin.Context) {
	propertyID := ctx.Param("id")

	var request UpdatePropertyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid listing data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	property, err := handler.propertyService.Update(ctx, middleware.UserID(ctx), propertyID, properties.UpdateInput{
		Title:          request.Title,
		Description:    request.Description,
		Status:         request.Status,
		RentPriceCents: request.RentPriceCents,
		DepositCents:   request.DepositCents,
		Amenities:      request.Amenities,
		ImageURLs:      request.ImageURLs,
		PetsAllowed:    request.PetsAllowed,
		Furnished:      request.Furnished,
	})
	if err != nil {
		var errorResponse ErrorResponse
		switch {
		case errors.Is(err, properties.ErrNotFound):
			errorResponse.Message = fmt.Sprintf("property with id %s not found", propertyID)
			ctx.JSON(http.StatusNotFound, errorResponse)
		case errors.Is(err, properties.ErrNotOwner):
			errorResponse.Message = "only the owner may update a listing"
			ctx.JSON(http.StatusForbidden, errorResponse)
		default:
			errorResponse.Message = fmt.Sprintf("error updating listing: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
		}
		return
	}

	ctx.JSON(http.StatusOK, property)
}

// Delete handles the DELETE request to remove a listing
// @Summary Delete a property listing
// @Description Remove a listing. Owner only; blocked while an active lease references the property.
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 204 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /properties/{id} [delete]
func (handler *propertyHandler) Delete(ctx *gin.Context) {
	propertyID := ctx.Param("id")

	if err := handler.propertyService.Delete(ctx, middleware.UserID(ctx), propertyID); err != nil {
		var errorResponse ErrorResponse
		switch {
		case errors.Is(err, properties.ErrNotFound):
			errorResponse.Message = fmt.Sprintf("property with id %s not found", propertyID)
			ctx.JSON(http.StatusNotFound, errorResponse)
		case errors.Is(err, properties.ErrNotOwner):
			errorResponse.Message = "only the owner may delete a listing"
			ctx.JSON(http.StatusForbidden, errorResponse)
		case errors.Is(err, properties.ErrHasActiveLease):
			errorResponse.Message = "property has an active lease"
			ctx.JSON(http.StatusConflict, errorResponse)
		default:
			errorResponse.Message = fmt.Sprintf("error deleting property with id %s", propertyID)
			ctx.JSON(http.StatusBadRequest, errorResponse)
		}
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("deleted property with id %s", propertyID)
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// bindPropertyQuery reads the listing search filters from the query string.
func bindPropertyQuery(ctx *gin.Context, query *properties.PropertyQuery) {
	if city := ctx.Query("city"); len(city) > 0 {
		query.City = city
	}

	if propertyType := ctx.Query("propertyType"); len(propertyType) > 0 {
		query.PropertyType = propertyType
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if minPrice := ctx.Query("minPriceCents"); len(minPrice) > 0 {
		query.MinPriceCents = utils.ConvertToInt64(minPrice)
	}

	if maxPrice := ctx.Query("maxPriceCents"); len(maxPrice) > 0 {
		query.MaxPriceCents = utils.ConvertToInt64(maxPrice)
	}

	if minBedrooms := ctx.Query("minBedrooms"); len(minBedrooms) > 0 {
		query.MinBedrooms = utils.ConvertToInt(minBedrooms)
	}

	if minBathrooms := ctx.Query("minBathrooms"); len(minBathrooms) > 0 {
		query.MinBathrooms = utils.ConvertToInt(minBathrooms)
	}

	if furnished := ctx.Query("furnished"); len(furnished) > 0 {
		value := furnished == "true"
		query.Furnished = &value
	}

	if petsAllowed := ctx.Query("petsAllowed"); len(petsAllowed) > 0 {
		value := petsAllowed == "true"
		query.PetsAllowed = &value
	}

	if search := ctx.Query("search"); len(search) > 0 {
		query.Search = search
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = utils.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = utils.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}
}
