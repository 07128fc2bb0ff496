package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/idtoken"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg         *config.Config
	mockRevoked *MockRevokedTokenRepository
	service     portssvc.TokenSvcFacade
	user        *domain.User
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "dealflow-test",
	}
	suite.mockRevoked = new(MockRevokedTokenRepository)
	suite.service = services.NewTokenService(suite.cfg, suite.mockRevoked)
	suite.user = &domain.User{UserID: 1, Email: "ad@g.com", Role: domain.RoleAdmin, IsActive: true}
}

func (suite *TokenServiceTestSuite) TestGenerateAndParse() {
	ctx := context.Background()
	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.WithinDuration(time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	suite.mockRevoked.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	claims, err := suite.service.ParseAccessToken(ctx, token)

	suite.Require().NoError(err)
	suite.Equal("ad@g.com", claims.Email)
	suite.Equal(domain.RoleAdmin, claims.Role)
	suite.NotEmpty(claims.TokenID)
	suite.Equal(expiresAt.Unix(), claims.ExpiresAt.Unix())
	suite.mockRevoked.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestParse_Expired() {
	token, _, err := utils.GenerateJWT("a@g.com", "analyst", suite.cfg.JWTSecret, -time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	claims, err := suite.service.ParseAccessToken(context.Background(), token)

	suite.Nil(claims)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.ErrorIs(err, jwt.ErrTokenExpired)
	suite.mockRevoked.AssertNotCalled(suite.T(), "IsTokenRevoked", mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestParse_WrongSecretOrIssuer() {
	wrongSecret, _, err := utils.GenerateJWT("a@g.com", "analyst", "other", time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	wrongIssuer, _, err := utils.GenerateJWT("a@g.com", "analyst", suite.cfg.JWTSecret, time.Minute, "someone-else")
	suite.Require().NoError(err)

	for _, token := range []string{wrongSecret, wrongIssuer, "not-a-jwt"} {
		_, err := suite.service.ParseAccessToken(context.Background(), token)
		suite.ErrorIs(err, apperrors.ErrUnauthorized)
	}
}

func (suite *TokenServiceTestSuite) TestParse_Revoked() {
	ctx := context.Background()
	token, _, err := suite.service.GenerateAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.mockRevoked.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()

	_, err = suite.service.ParseAccessToken(ctx, token)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestParse_DenyListFailureIsNotUnauthorized() {
	ctx := context.Background()
	token, _, err := suite.service.GenerateAccessToken(ctx, suite.user)
	suite.Require().NoError(err)
	suite.mockRevoked.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(false, assert.AnError).Once()

	_, err = suite.service.ParseAccessToken(ctx, token)

	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRevokeAccessToken() {
	ctx := context.Background()
	claims := &portssvc.AccessTokenClaims{TokenID: "jti-1", ExpiresAt: time.Now().Add(10 * time.Minute)}
	suite.mockRevoked.On("RevokeToken", ctx, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 9*time.Minute && ttl <= 10*time.Minute
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.RevokeAccessToken(ctx, claims))
	suite.mockRevoked.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRevokeAccessToken_Validation() {
	err := suite.service.RevokeAccessToken(context.Background(), &portssvc.AccessTokenClaims{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TokenServiceTestSuite) TestRevokeAccessToken_NoDenyList() {
	service := services.NewTokenService(suite.cfg, nil)
	err := service.RevokeAccessToken(context.Background(), &portssvc.AccessTokenClaims{TokenID: "jti-2"})
	suite.NoError(err)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func TestGoogleOAuth_ValidateIDToken(t *testing.T) {
	cfg := &config.Config{GoogleClientID: "client-id", GoogleClientSecret: "secret"}

	var gotAudience string
	ok := services.NewGoogleOAuthHandlerService(cfg, services.WithIDTokenValidator(
		func(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			return &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{"email": "g@g.com"}}, nil
		}))
	payload, err := ok.ValidateGoogleIDToken(context.Background(), "id-token")
	assert.NoError(t, err)
	assert.Equal(t, "sub-1", payload.Subject)
	assert.Equal(t, "client-id", gotAudience)

	failing := services.NewGoogleOAuthHandlerService(cfg, services.WithIDTokenValidator(
		func(context.Context, string, string) (*idtoken.Payload, error) {
			return nil, errors.New("bad signature")
		}))
	_, err = failing.ValidateGoogleIDToken(context.Background(), "id-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	unconfigured := services.NewGoogleOAuthHandlerService(&config.Config{})
	_, err = unconfigured.ValidateGoogleIDToken(context.Background(), "id-token")
	assert.Error(t, err)
}
