package services

import (
	"context"
	"time"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AccessTokenClaims are the verified contents of an access token.
type AccessTokenClaims struct {
	TokenID   string
	Email     string
	Role      domain.UserRole
	ExpiresAt time.Time
}

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed access token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ParseAccessToken verifies a token's signature, expiry and revocation status.
	ParseAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error)

	// RevokeAccessToken puts the token on the deny list until it expires.
	RevokeAccessToken(ctx context.Context, claims *AccessTokenClaims) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
