package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SeedDefaultUsers(ctx context.Context, password string) (int, error) {
	args := m.Called(ctx, password)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ParseAccessToken(ctx context.Context, token string) (*portssvc.AccessTokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AccessTokenClaims), args.Error(1)
}

func (m *MockTokenService) RevokeAccessToken(ctx context.Context, claims *portssvc.AccessTokenClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock DealService ---
type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealService) GetDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) ListActivities(ctx context.Context, dealID int64) ([]domain.Activity, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockDealService) CreateDeal(ctx context.Context, req dto.CreateDealRequest, actor *domain.User) (*domain.Deal, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) UpdateDeal(ctx context.Context, dealID int64, req dto.UpdateDealRequest, actor *domain.User) (*domain.Deal, error) {
	args := m.Called(ctx, dealID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) DeleteDeal(ctx context.Context, dealID int64, actor *domain.User) error {
	args := m.Called(ctx, dealID, actor)
	return args.Error(0)
}

var _ portssvc.DealSvcFacade = (*MockDealService)(nil)

// --- Mock MemoService ---
type MockMemoService struct {
	mock.Mock
}

func (m *MockMemoService) GetCurrentMemo(ctx context.Context, dealID int64) (*domain.Memo, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoService) SaveMemoVersion(ctx context.Context, dealID int64, sections domain.MemoSections, actor *domain.User) (*domain.MemoVersion, error) {
	args := m.Called(ctx, dealID, sections, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemoVersion), args.Error(1)
}

func (m *MockMemoService) ListMemoHistory(ctx context.Context, dealID int64) ([]domain.MemoVersion, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemoVersion), args.Error(1)
}

var _ portssvc.MemoSvcFacade = (*MockMemoService)(nil)
