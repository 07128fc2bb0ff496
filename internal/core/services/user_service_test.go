package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) localUser(email, password string, role domain.UserRole) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{UserID: 1, Email: email, PasswordHash: &hash, Role: role, IsActive: true, AuthProvider: domain.ProviderLocal}
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: " New@Example.com ", Password: "password123", Role: domain.RolePartner}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user *domain.User) bool {
		return user.Email == "new@example.com" && user.Role == domain.RolePartner &&
			user.PasswordHash != nil && *user.PasswordHash != "password123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).UserID = 42
	}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(42), user.UserID)
	suite.True(user.IsActive)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.True(utils.CheckPasswordHash("password123", *user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToAnalyst() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "a@g.com", Password: "12345678"})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAnalyst, user.Role)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(&domain.User{UserID: 2}, nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "a@g.com", Password: "12345678"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	user, err := suite.service.CreateUser(context.Background(), dto.RegisterRequest{Email: "a@g.com", Password: "12345678", Role: "owner"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("*domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "a@g.com", Password: "12345678"})

	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	stored := suite.localUser("a@g.com", "12345678", domain.RoleAnalyst)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "A@g.com", "12345678")

	suite.Require().NoError(err)
	suite.Equal(stored, user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Failures() {
	ctx := context.Background()
	inactive := suite.localUser("i@g.com", "12345678", domain.RoleAnalyst)
	inactive.IsActive = false
	googleOnly := &domain.User{UserID: 9, Email: "g@g.com", IsActive: true, AuthProvider: domain.ProviderGoogle}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(suite.localUser("a@g.com", "12345678", domain.RoleAnalyst), nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@g.com").Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "i@g.com").Return(inactive, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "g@g.com").Return(googleOnly, nil)

	cases := map[string][2]string{
		"wrong password":  {"a@g.com", "nope"},
		"unknown email":   {"nobody@g.com", "12345678"},
		"inactive user":   {"i@g.com", "12345678"},
		"no password set": {"g@g.com", "12345678"},
	}
	for name, c := range cases {
		suite.Run(name, func() {
			user, err := suite.service.AuthenticateUser(ctx, c[0], c[1])
			suite.Nil(user)
			suite.ErrorIs(err, apperrors.ErrUnauthorized)
		})
	}
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(nil, assert.AnError).Once()

	_, err := suite.service.AuthenticateUser(ctx, "a@g.com", "12345678")

	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrUnauthorized)
}

// --- GetUser Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, 5)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestGetUserByEmail_Normalizes() {
	ctx := context.Background()
	expected := &domain.User{UserID: 3, Email: "p@g.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "p@g.com").Return(expected, nil).Once()

	user, err := suite.service.GetUserByEmail(ctx, "  P@G.com")

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

// --- FindOrCreateOAuthUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_Existing() {
	ctx := context.Background()
	existing := &domain.User{UserID: 7, Email: "g@g.com", AuthProvider: domain.ProviderGoogle}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-1").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "sub-1", "g@g.com")

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_CreatesAnalyst() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@g.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAnalyst && u.PasswordHash == nil && *u.ProviderUserID == "sub-2"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "sub-2", "New@g.com")

	suite.Require().NoError(err)
	suite.Equal("new@g.com", user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_EmailTakenByLocalUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@g.com").Return(suite.localUser("a@g.com", "12345678", domain.RoleAnalyst), nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, domain.ProviderGoogle, "sub-3", "a@g.com")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- SeedDefaultUsers Tests ---
func (suite *UserServiceTestSuite) TestSeedDefaultUsers_EmptyTable() {
	ctx := context.Background()
	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(0), nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Times(3)
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Times(3)

	created, err := suite.service.SeedDefaultUsers(ctx, "12345678")

	suite.Require().NoError(err)
	suite.Equal(3, created)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSeedDefaultUsers_SkipsWhenUsersExist() {
	ctx := context.Background()
	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(4), nil).Once()

	created, err := suite.service.SeedDefaultUsers(ctx, "12345678")

	suite.Require().NoError(err)
	suite.Zero(created)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
