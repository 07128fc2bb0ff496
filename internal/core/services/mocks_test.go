package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock DealRepository ---
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	var deal *domain.Deal
	if args.Get(0) != nil {
		deal = args.Get(0).(*domain.Deal)
	}
	return deal, args.Error(1)
}

func (m *MockDealRepository) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	args := m.Called(ctx)
	var deals []domain.Deal
	if args.Get(0) != nil {
		deals = args.Get(0).([]domain.Deal)
	}
	return deals, args.Error(1)
}

func (m *MockDealRepository) SaveDeal(ctx context.Context, deal *domain.Deal, activity domain.Activity) error {
	args := m.Called(ctx, deal, activity)
	return args.Error(0)
}

func (m *MockDealRepository) UpdateDeal(ctx context.Context, deal *domain.Deal, activities []domain.Activity) error {
	args := m.Called(ctx, deal, activities)
	return args.Error(0)
}

func (m *MockDealRepository) DeleteDeal(ctx context.Context, dealID int64) error {
	args := m.Called(ctx, dealID)
	return args.Error(0)
}

// --- Mock ActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) ListActivitiesByDeal(ctx context.Context, dealID int64) ([]domain.Activity, error) {
	args := m.Called(ctx, dealID)
	var activities []domain.Activity
	if args.Get(0) != nil {
		activities = args.Get(0).([]domain.Activity)
	}
	return activities, args.Error(1)
}

// --- Mock MemoRepository ---
type MockMemoRepository struct {
	mock.Mock
	LastActivity domain.Activity
}

func (m *MockMemoRepository) FindMemoByDealID(ctx context.Context, dealID int64) (*domain.Memo, error) {
	args := m.Called(ctx, dealID)
	var memo *domain.Memo
	if args.Get(0) != nil {
		memo = args.Get(0).(*domain.Memo)
	}
	return memo, args.Error(1)
}

func (m *MockMemoRepository) ListMemoVersions(ctx context.Context, dealID int64) ([]domain.MemoVersion, error) {
	args := m.Called(ctx, dealID)
	var versions []domain.MemoVersion
	if args.Get(0) != nil {
		versions = args.Get(0).([]domain.MemoVersion)
	}
	return versions, args.Error(1)
}

func (m *MockMemoRepository) SaveMemoVersion(ctx context.Context, dealID int64, content string, createdBy int64, newActivity func(versionID int64) domain.Activity) (*domain.MemoVersion, error) {
	args := m.Called(ctx, dealID, content, createdBy)
	var version *domain.MemoVersion
	if args.Get(0) != nil {
		version = args.Get(0).(*domain.MemoVersion)
	}
	if version != nil && newActivity != nil {
		m.LastActivity = newActivity(version.MemoVersionID)
	}
	return version, args.Error(1)
}

// --- Mock RevokedTokenRepository ---
type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
