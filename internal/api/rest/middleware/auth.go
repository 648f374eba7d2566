package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

// Context keys under which RequireAuth stores the verified identity.
const (
	ContextUserIDKey    = "auth_user_id"
	ContextUserRoleKey  = "auth_user_role"
	ContextUserEmailKey = "auth_user_email"
)

// UserID returns the authenticated user id set by RequireAuth, or an
// empty string when the request is unauthenticated.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserIDKey)
}

// UserRole returns the authenticated user role set by RequireAuth.
func UserRole(ctx *gin.Context) string {
	return ctx.GetString(ContextUserRoleKey)
}

// RequireAuth verifies the bearer token and stores the claims on the
// request context. The token is read from the Authorization header or,
// for websocket dials where browsers cannot set headers, from the
// "token" query parameter.
func RequireAuth(tokens accounts.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing credentials"})
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token expired"
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserRoleKey, claims.Role)
		ctx.Set(ContextUserEmailKey, claims.Email)
		ctx.Next()
	}
}

// RequireRole allows the request through only when the authenticated
// role is one of the given roles. It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := UserRole(ctx)
		for _, allowed := range roles {
			if role == allowed {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
	}
}

// RequireAdmin allows the request through only when the authenticated
// user carries the admin flag. The flag lives on the user record rather
// than in the token so that revoking it takes effect immediately.
func RequireAdmin(accountService accounts.AccountService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := accountService.GetByID(ctx, UserID(ctx))
		if err != nil || !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ctx.Query("token")
}
