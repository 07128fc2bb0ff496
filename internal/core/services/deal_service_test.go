package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DealServiceTestSuite struct {
	suite.Suite
	mockDealRepo     *MockDealRepository
	mockActivityRepo *MockActivityRepository
	collector        *metrics.Collector
	service          portssvc.DealSvcFacade
	analyst          *domain.User
	admin            *domain.User
}

func (suite *DealServiceTestSuite) SetupTest() {
	suite.mockDealRepo = new(MockDealRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.collector = metrics.NewCollector("test")
	suite.service = services.NewDealService(suite.mockDealRepo, suite.mockActivityRepo, services.WithDealMetrics(suite.collector))
	suite.analyst = &domain.User{UserID: 2, Email: "a@g.com", Role: domain.RoleAnalyst, IsActive: true}
	suite.admin = &domain.User{UserID: 1, Email: "ad@g.com", Role: domain.RoleAdmin, IsActive: true}
}

func strPtr(s string) *string { return &s }

func (suite *DealServiceTestSuite) storedDeal() *domain.Deal {
	return &domain.Deal{
		DealID: 10,
		Name:   "Acme",
		Stage:  domain.StageSourced,
		Round:  strPtr("Seed"),
		Status: domain.DealStatusActive,
	}
}

// --- CreateDeal Tests ---
func (suite *DealServiceTestSuite) TestCreateDeal_Success() {
	ctx := context.Background()
	check := decimal.RequireFromString("250000")
	req := dto.CreateDealRequest{Name: "  Acme  ", Round: strPtr("Seed"), CheckSize: &check}

	suite.mockDealRepo.On("SaveDeal", ctx, mock.MatchedBy(func(d *domain.Deal) bool {
		return d.Name == "Acme" && d.Stage == domain.StageSourced && d.Status == domain.DealStatusActive &&
			d.OwnerID != nil && *d.OwnerID == suite.analyst.UserID
	}), domain.Activity{
		UserID:      2,
		Type:        domain.ActivityCreated,
		Description: "Deal 'Acme' created by a@g.com",
	}).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Deal).DealID = 10
	}).Return(nil).Once()

	deal, err := suite.service.CreateDeal(ctx, req, suite.analyst)

	suite.Require().NoError(err)
	suite.Equal(int64(10), deal.DealID)
	suite.True(deal.CheckSize.Equal(check))
	suite.Equal(float64(1), testutil.ToFloat64(suite.collector.DealsCreated))
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCreateDeal_ExplicitOwner() {
	ctx := context.Background()
	owner := int64(3)
	suite.mockDealRepo.On("SaveDeal", ctx, mock.MatchedBy(func(d *domain.Deal) bool {
		return *d.OwnerID == 3
	}), mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateDeal(ctx, dto.CreateDealRequest{Name: "Acme", OwnerID: &owner}, suite.analyst)

	suite.Require().NoError(err)
}

func (suite *DealServiceTestSuite) TestCreateDeal_Validation() {
	negative := decimal.NewFromInt(-1)
	for name, req := range map[string]dto.CreateDealRequest{
		"blank name":     {Name: "   "},
		"negative check": {Name: "Acme", CheckSize: &negative},
	} {
		suite.Run(name, func() {
			deal, err := suite.service.CreateDeal(context.Background(), req, suite.analyst)
			suite.Nil(deal)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockDealRepo.AssertNotCalled(suite.T(), "SaveDeal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestCreateDeal_RepoError() {
	ctx := context.Background()
	suite.mockDealRepo.On("SaveDeal", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	deal, err := suite.service.CreateDeal(ctx, dto.CreateDealRequest{Name: "Acme"}, suite.analyst)

	suite.Nil(deal)
	suite.ErrorIs(err, assert.AnError)
	suite.Zero(testutil.ToFloat64(suite.collector.DealsCreated))
}

// --- UpdateDeal Tests ---
func (suite *DealServiceTestSuite) TestUpdateDeal_StageChange() {
	ctx := context.Background()
	stage := domain.StageScreen
	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(suite.storedDeal(), nil).Once()
	suite.mockDealRepo.On("UpdateDeal", ctx, mock.MatchedBy(func(d *domain.Deal) bool {
		return d.Stage == domain.StageScreen
	}), []domain.Activity{{
		UserID:      2,
		Type:        domain.ActivityStageChange,
		Description: "Moved from Sourced to Screen",
	}}).Return(nil).Once()

	deal, err := suite.service.UpdateDeal(ctx, 10, dto.UpdateDealRequest{Stage: &stage}, suite.analyst)

	suite.Require().NoError(err)
	suite.Equal(domain.StageScreen, deal.Stage)
	suite.Equal(float64(1), testutil.ToFloat64(suite.collector.StageTransitions.WithLabelValues("Sourced", "Screen")))
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestUpdateDeal_StageAndFields() {
	ctx := context.Background()
	stage := domain.StagePassed
	check := decimal.NewFromInt(500000)
	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(suite.storedDeal(), nil).Once()

	var recorded []domain.Activity
	suite.mockDealRepo.On("UpdateDeal", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(2).([]domain.Activity)
	}).Return(nil).Once()

	req := dto.UpdateDealRequest{Stage: &stage, Name: strPtr("Acme Corp"), Round: strPtr("Seed"), CheckSize: &check}
	deal, err := suite.service.UpdateDeal(ctx, 10, req, suite.analyst)

	suite.Require().NoError(err)
	suite.Equal("Acme Corp", deal.Name)
	suite.Require().Len(recorded, 2)
	suite.Equal(domain.ActivityStageChange, recorded[0].Type)
	suite.Equal("Moved from Sourced to Passed", recorded[0].Description)
	suite.Equal(domain.ActivityUpdated, recorded[1].Type)
	suite.Equal("Updated name, check_size", recorded[1].Description)
}

func (suite *DealServiceTestSuite) TestUpdateDeal_NoChanges() {
	ctx := context.Background()
	stage := domain.StageSourced
	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(suite.storedDeal(), nil).Once()

	deal, err := suite.service.UpdateDeal(ctx, 10, dto.UpdateDealRequest{Stage: &stage, Round: strPtr("Seed")}, suite.analyst)

	suite.Require().NoError(err)
	suite.Equal(domain.StageSourced, deal.Stage)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "UpdateDeal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestUpdateDeal_InvalidStage() {
	stage := domain.DealStage("Closed")

	deal, err := suite.service.UpdateDeal(context.Background(), 10, dto.UpdateDealRequest{Stage: &stage}, suite.analyst)

	suite.Nil(deal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "FindDealByID", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestUpdateDeal_NotFound() {
	ctx := context.Background()
	stage := domain.StageIC
	suite.mockDealRepo.On("FindDealByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateDeal(ctx, 99, dto.UpdateDealRequest{Stage: &stage}, suite.analyst)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteDeal Tests ---
func (suite *DealServiceTestSuite) TestDeleteDeal_AdminOnly() {
	ctx := context.Background()

	err := suite.service.DeleteDeal(ctx, 10, suite.analyst)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	partner := &domain.User{UserID: 3, Role: domain.RolePartner}
	err = suite.service.DeleteDeal(ctx, 10, partner)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockDealRepo.AssertNotCalled(suite.T(), "DeleteDeal", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestDeleteDeal_Success() {
	ctx := context.Background()
	suite.mockDealRepo.On("DeleteDeal", ctx, int64(10)).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteDeal(ctx, 10, suite.admin))
	suite.Equal(float64(1), testutil.ToFloat64(suite.collector.DealsDeleted))
}

func (suite *DealServiceTestSuite) TestDeleteDeal_NotFound() {
	ctx := context.Background()
	suite.mockDealRepo.On("DeleteDeal", ctx, int64(77)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteDeal(ctx, 77, suite.admin)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Read Tests ---
func (suite *DealServiceTestSuite) TestListDeals() {
	ctx := context.Background()
	deals := []domain.Deal{*suite.storedDeal()}
	suite.mockDealRepo.On("ListDeals", ctx).Return(deals, nil).Once()

	got, err := suite.service.ListDeals(ctx)

	suite.Require().NoError(err)
	suite.Equal(deals, got)
}

func (suite *DealServiceTestSuite) TestListActivities() {
	ctx := context.Background()
	activities := []domain.Activity{{ActivityID: 2, DealID: 10, Type: domain.ActivityStageChange}}
	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(suite.storedDeal(), nil).Once()
	suite.mockActivityRepo.On("ListActivitiesByDeal", ctx, int64(10)).Return(activities, nil).Once()

	got, err := suite.service.ListActivities(ctx, 10)

	suite.Require().NoError(err)
	suite.Equal(activities, got)
}

func (suite *DealServiceTestSuite) TestListActivities_UnknownDeal() {
	ctx := context.Background()
	suite.mockDealRepo.On("FindDealByID", ctx, int64(5)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListActivities(ctx, 5)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "ListActivitiesByDeal", mock.Anything, mock.Anything)
}

func TestDealServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DealServiceTestSuite))
}
