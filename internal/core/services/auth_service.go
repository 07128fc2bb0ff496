package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	BaseService
	cfg         *config.Config
	revokedRepo portsrepo.RevokedTokenRepository
}

// NewTokenService creates a new instance of tokenService. revokedRepo may be nil,
// in which case logout cannot invalidate a token before it expires.
func NewTokenService(cfg *config.Config, revokedRepo portsrepo.RevokedTokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		revokedRepo: revokedRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, claims, err := utils.GenerateJWT(user.Email, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// ParseAccessToken wraps every validation failure in apperrors.ErrUnauthorized.
// A failing deny list lookup is returned unwrapped so callers can report it as a server error.
func (s *tokenService) ParseAccessToken(ctx context.Context, token string) (*portssvc.AccessTokenClaims, error) {
	parsed, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	claims := &portssvc.AccessTokenClaims{
		TokenID: parsed.ID,
		Email:   parsed.Subject,
		Role:    domain.UserRole(parsed.Role),
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}

	if s.revokedRepo != nil && claims.TokenID != "" {
		revoked, err := s.revokedRepo.IsTokenRevoked(ctx, claims.TokenID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check token revocation")
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("token has been revoked: %w", apperrors.ErrUnauthorized)
		}
	}
	return claims, nil
}

func (s *tokenService) RevokeAccessToken(ctx context.Context, claims *portssvc.AccessTokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return fmt.Errorf("token id is required: %w", apperrors.ErrValidation)
	}
	if s.revokedRepo == nil {
		s.LogDebug(ctx, "No deny list configured, token stays valid until expiry")
		return nil
	}
	if err := s.revokedRepo.RevokeToken(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		s.LogError(ctx, err, "Failed to revoke token")
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// IDTokenValidator verifies a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// GoogleOAuthOption is a functional option for configuring the Google OAuth service
type GoogleOAuthOption func(*googleOAuthHandlerService)

// WithGoogleEndpoint overrides the OAuth endpoint used for code exchange.
func WithGoogleEndpoint(endpoint oauth2.Endpoint) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.oauth2Config.Endpoint = endpoint
	}
}

// WithIDTokenValidator overrides how ID tokens are verified.
func WithIDTokenValidator(v IDTokenValidator) GoogleOAuthOption {
	return func(s *googleOAuthHandlerService) {
		s.validate = v
	}
}

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config, opts ...GoogleOAuthOption) portssvc.GoogleOAuthHandlerSvcFacade {
	s := &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := s.validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w: %w", apperrors.ErrUnauthorized, err)
	}
	return payload, nil
}
