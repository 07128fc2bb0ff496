package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/dealflow/internal/apperrors"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and resolves it to an active user.
// The user, the token claims and an enriched logger are stored in the request context.
func AuthMiddleware(tokenService portssvc.TokenSvcFacade, userService portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := tokenService.ParseAccessToken(ctx, parts[1])
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Could not validate credentials"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				msg = "Token not valid yet"
			case !errors.Is(err, apperrors.ErrUnauthorized) && apperrors.StatusCode(err) == http.StatusInternalServerError:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		user, err := userService.GetUserByEmail(ctx, claims.Email)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Token subject does not match a user", slog.String("email", claims.Email))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
				return
			}
			logger.Error("Failed to resolve token subject", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}
		if !user.IsActive {
			logger.Warn("Inactive user presented a token", slog.Int64("user_id", user.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Inactive user"})
			return
		}

		enrichedLogger := logger.With(
			slog.Int64("user_id", user.UserID),
			slog.String("user_email", user.Email),
		)

		ctx = context.WithValue(ctx, userCtxKey, user)
		ctx = context.WithValue(ctx, claimsCtxKey, claims)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
