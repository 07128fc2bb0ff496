package middleware

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const (
	userCtxKey   = contextKey("user")
	claimsCtxKey = contextKey("tokenClaims")
)

// GetUserFromContext retrieves the authenticated user set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	return UserFromCtx(c.Request.Context())
}

// UserFromCtx retrieves the authenticated user from a standard context.
func UserFromCtx(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*domain.User)
	return user, ok && user != nil
}

// GetTokenClaimsFromContext retrieves the verified claims of the presented access token.
func GetTokenClaimsFromContext(c *gin.Context) (*portssvc.AccessTokenClaims, bool) {
	claims, ok := c.Request.Context().Value(claimsCtxKey).(*portssvc.AccessTokenClaims)
	return claims, ok && claims != nil
}
