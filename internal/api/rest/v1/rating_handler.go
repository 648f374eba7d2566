package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler defines the interface for handling rating operations
type RatingHandler interface {
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	ListForUser(ctx *gin.Context)
	Summary(ctx *gin.Context)
	Respond(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type ratingHandler struct {
	ratingService ratings.RatingService
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(ratingService ratings.RatingService) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
	}
}

// Create handles the POST request to submit a rating
// @Summary Submit a rating
// @Description Rate another user after a shared lease, once per lease.
// @Tags Rating
// @Accept json
// @Produce json
// @Param requestBody body CreateRatingRequest true "Rating Data"
// @Success 201 {object} ratings.Rating
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /ratings [post]
func (handler *ratingHandler) Create(ctx *gin.Context) {
	var request CreateRatingRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid rating data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	rating, err := handler.ratingService.Create(ctx, &ratings.CreateInput{
		ReviewerID:         middleware.UserID(ctx),
		RevieweeID:         request.RevieweeID,
		LeaseID:            request.LeaseID,
		OverallScore:       request.OverallScore,
		CommunicationScore: request.CommunicationScore,
		PunctualityScore:   request.PunctualityScore,
		CareScore:          request.CareScore,
		Comment:            request.Comment,
	})
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, rating)
}

// GetByID handles the GET request to retrieve a rating by ID
// @Summary Retrieve a rating by ID
// @Description Fetch a single rating with its response, if any.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Success 200 {object} ratings.Rating
// @Failure 404 {object} ErrorResponse
// @Router /ratings/{id} [get]
func (handler *ratingHandler) GetByID(ctx *gin.Context) {
	ratingID := ctx.Param("id")

	rating, err := handler.ratingService.GetByID(ctx, ratingID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("rating with id %s not found", ratingID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, rating)
}

// ListForUser handles the GET request for the ratings a user received
// @Summary List a user's received ratings
// @Description Fetch the ratings received by a user, newest first.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param minScore query int false "Minimum overall score"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} ratings.Rating
// @Failure 400 {object} ErrorResponse
// @Router /users/{id}/ratings [get]
func (handler *ratingHandler) ListForUser(ctx *gin.Context) {
	query := ratings.NewRatingQuery()
	query.RevieweeID = ctx.Param("id")

	if minScore := ctx.Query("minScore"); len(minScore) > 0 {
		query.MinScore = utils.ConvertToInt(minScore)
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = utils.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = utils.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	results, err := handler.ratingService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// Summary handles the GET request for a user's rating aggregate
// @Summary Summarize a user's ratings
// @Description Return the count and per-category averages of the ratings a user received.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} ratings.Summary
// @Failure 400 {object} ErrorResponse
// @Router /users/{id}/rating-summary [get]
func (handler *ratingHandler) Summary(ctx *gin.Context) {
	userID := ctx.Param("id")

	summary, err := handler.ratingService.Summarize(ctx, userID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("summary query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Respond handles the POST request to answer a rating
// @Summary Respond to a rating
// @Description Store the reviewee's one-time reply to a rating.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Param requestBody body RespondRatingRequest true "Response Data"
// @Success 200 {object} ratings.Rating
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /ratings/{id}/respond [post]
func (handler *ratingHandler) Respond(ctx *gin.Context) {
	ratingID := ctx.Param("id")

	var request RespondRatingRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid response data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	rating, err := handler.ratingService.Respond(ctx, ratingID, middleware.UserID(ctx), request.Response)
	if err != nil {
		handler.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rating)
}

// Delete handles the DELETE request to remove a rating
// @Summary Delete a rating
// @Description Remove a rating. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /ratings/{id} [delete]
func (handler *ratingHandler) Delete(ctx *gin.Context) {
	ratingID := ctx.Param("id")

	if err := handler.ratingService.Delete(ctx, ratingID); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("rating with id %s not found", ratingID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = fmt.Sprintf("deleted rating with id %s", ratingID)
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// respondError maps rating errors onto HTTP statuses.
func (handler *ratingHandler) respondError(ctx *gin.Context, err error) {
	var errorResponse ErrorResponse
	switch {
	case errors.Is(err, ratings.ErrNotFound):
		errorResponse.Message = "rating not found"
		ctx.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, ratings.ErrSelfRating):
		errorResponse.Message = "users cannot rate themselves"
		ctx.JSON(http.StatusBadRequest, errorResponse)
	case errors.Is(err, ratings.ErrNoSharedLease):
		errorResponse.Message = "reviewer and reviewee share no lease"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, ratings.ErrNotReviewee):
		errorResponse.Message = "only the reviewee may respond to this rating"
		ctx.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, ratings.ErrAlreadyRated):
		errorResponse.Message = "you have already rated this user for this lease"
		ctx.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, ratings.ErrAlreadyResponded):
		errorResponse.Message = "rating already has a response"
		ctx.JSON(http.StatusConflict, errorResponse)
	default:
		errorResponse.Message = fmt.Sprintf("rating operation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
	}
}
