package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wilsonA2000/verihome/internal/api/rest/middleware"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler defines the interface for handling account operations
type AccountHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Refresh(ctx *gin.Context)
	GetMe(ctx *gin.Context)
	UpdateMe(ctx *gin.Context)
	ListUsers(ctx *gin.Context)
}

// accountHandler struct holds the account service
type accountHandler struct {
	accountService accounts.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService accounts.AccountService) AccountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// Register handles the POST request to create a new account
// @Summary Register a new user
// @Description Create a user account with the given role and credentials.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RegisterRequest true "Registration Data"
// @Success 201 {object} accounts.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (handler *accountHandler) Register(ctx *gin.Context) {
	var request RegisterRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid registration data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, err := handler.accountService.Register(ctx, accounts.RegisterInput{
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
		Role:      request.Role,
		About:     request.About,
	})
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, accounts.ErrEmailTaken) {
			errorResponse.Message = "email already registered"
			ctx.JSON(http.StatusConflict, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error registering user: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login handles the POST request to authenticate a user
// @Summary Authenticate with email and password
// @Description Verify credentials and return the user with a token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *accountHandler) Login(ctx *gin.Context) {
	var request LoginRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid credentials payload: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, tokens, err := handler.accountService.Authenticate(ctx, request.Email, request.Password, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "invalid credentials"
		ctx.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{User: user, Tokens: tokens})
}

// Refresh handles the POST request to exchange a refresh token
// @Summary Exchange a refresh token for a new token pair
// @Description Verify the refresh token and issue a fresh access/refresh pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RefreshRequest true "Refresh Token"
// @Success 200 {object} accounts.TokenPair
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (handler *accountHandler) Refresh(ctx *gin.Context) {
	var request RefreshRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid refresh payload: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	tokens, err := handler.accountService.Refresh(ctx, request.RefreshToken)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "invalid refresh token"
		ctx.JSON(http.StatusUnauthorized, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// GetMe handles the GET request for the authenticated user's profile
// @Summary Retrieve the authenticated user's profile
// @Description Fetch the profile of the user identified by the bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} accounts.User
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
func (handler *accountHandler) GetMe(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	user, err := handler.accountService.GetByID(ctx, userID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("user with id %s not found", userID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateMe handles the PUT request to update the authenticated user's profile
// @Summary Update the authenticated user's profile
// @Description Apply the provided profile changes; absent fields stay untouched.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body UpdateProfileRequest true "Profile Changes"
// @Success 200 {object} accounts.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [put]
func (handler *accountHandler) UpdateMe(ctx *gin.Context) {
	var request UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid profile data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	userID := middleware.UserID(ctx)

	user, err := handler.accountService.UpdateProfile(ctx, userID, accounts.UpdateProfileInput{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
		About:     request.About,
		AvatarURL: request.AvatarURL,
	})
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, accounts.ErrNotFound) {
			errorResponse.Message = fmt.Sprintf("user with id %s not found", userID)
			ctx.JSON(http.StatusNotFound, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error updating profile: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// ListUsers handles the GET request to list users with optional query parameters
// @Summary List users based on query parameters
// @Description Fetch users filtered by role, verification and search text. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param role query string false "User Role"
// @Param isVerified query bool false "Verification Flag"
// @Param search query string false "Search in name and email"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} accounts.User
// @Failure 400 {object} ErrorResponse
// @Router /admin/users [get]
func (handler *accountHandler) ListUsers(ctx *gin.Context) {
	query := accounts.NewUserQuery()

	if role := ctx.Query("role"); len(role) > 0 {
		query.Role = role
	}

	if isVerified := ctx.Query("isVerified"); len(isVerified) > 0 {
		verified := isVerified == "true"
		query.IsVerified = &verified
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

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	users, err := handler.accountService.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("list query failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
