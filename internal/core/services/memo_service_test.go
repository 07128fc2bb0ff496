package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MemoServiceTestSuite struct {
	suite.Suite
	mockMemoRepo *MockMemoRepository
	mockDealRepo *MockDealRepository
	collector    *metrics.Collector
	service      portssvc.MemoSvcFacade
	actor        *domain.User
}

func (suite *MemoServiceTestSuite) SetupTest() {
	suite.mockMemoRepo = new(MockMemoRepository)
	suite.mockDealRepo = new(MockDealRepository)
	suite.collector = metrics.NewCollector("test")
	suite.service = services.NewMemoService(suite.mockMemoRepo, suite.mockDealRepo, services.WithMemoMetrics(suite.collector))
	suite.actor = &domain.User{UserID: 2, Email: "a@g.com", Role: domain.RoleAnalyst}
}

func (suite *MemoServiceTestSuite) TestSaveMemoVersion_Success() {
	ctx := context.Background()
	sections := domain.MemoSections{Summary: "Strong team", Risks: "Crowded market"}
	content, err := sections.MarshalContent()
	suite.Require().NoError(err)

	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(&domain.Deal{DealID: 10}, nil).Once()
	suite.mockMemoRepo.On("SaveMemoVersion", ctx, int64(10), content, int64(2)).
		Return(&domain.MemoVersion{MemoVersionID: 7, MemoID: 1, Content: content, CreatedBy: 2, CreatedAt: time.Now()}, nil).Once()

	version, err := suite.service.SaveMemoVersion(ctx, 10, sections, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(int64(7), version.MemoVersionID)
	suite.Equal(domain.Activity{
		UserID:      2,
		Type:        domain.ActivityMemoVersion,
		Description: "Memo version 7 saved by a@g.com",
	}, suite.mockMemoRepo.LastActivity)
	suite.Equal(float64(1), testutil.ToFloat64(suite.collector.MemoVersions))
	suite.mockMemoRepo.AssertExpectations(suite.T())
}

func (suite *MemoServiceTestSuite) TestSaveMemoVersion_UnknownDeal() {
	ctx := context.Background()
	suite.mockDealRepo.On("FindDealByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	version, err := suite.service.SaveMemoVersion(ctx, 404, domain.MemoSections{Summary: "x"}, suite.actor)

	suite.Nil(version)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMemoRepo.AssertNotCalled(suite.T(), "SaveMemoVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MemoServiceTestSuite) TestSaveMemoVersion_RepoError() {
	ctx := context.Background()
	suite.mockDealRepo.On("FindDealByID", ctx, int64(10)).Return(&domain.Deal{DealID: 10}, nil).Once()
	suite.mockMemoRepo.On("SaveMemoVersion", ctx, int64(10), mock.Anything, int64(2)).Return(nil, assert.AnError).Once()

	_, err := suite.service.SaveMemoVersion(ctx, 10, domain.MemoSections{}, suite.actor)

	suite.ErrorIs(err, assert.AnError)
	suite.Zero(testutil.ToFloat64(suite.collector.MemoVersions))
}

func (suite *MemoServiceTestSuite) TestGetCurrentMemo() {
	ctx := context.Background()
	versionID := int64(7)
	memo := &domain.Memo{MemoID: 1, DealID: 10, CurrentVersionID: &versionID, Content: `{"Market":"Large"}`}
	suite.mockMemoRepo.On("FindMemoByDealID", ctx, int64(10)).Return(memo, nil).Once()
	suite.mockMemoRepo.On("FindMemoByDealID", ctx, int64(11)).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetCurrentMemo(ctx, 10)
	suite.Require().NoError(err)
	sections, err := domain.ParseMemoContent(got.Content)
	suite.Require().NoError(err)
	suite.Equal("Large", sections.Market)

	_, err = suite.service.GetCurrentMemo(ctx, 11)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MemoServiceTestSuite) TestListMemoHistory() {
	ctx := context.Background()
	versions := []domain.MemoVersion{{MemoVersionID: 8}, {MemoVersionID: 7}}
	suite.mockMemoRepo.On("ListMemoVersions", ctx, int64(10)).Return(versions, nil).Once()
	suite.mockMemoRepo.On("ListMemoVersions", ctx, int64(11)).Return(nil, assert.AnError).Once()

	got, err := suite.service.ListMemoHistory(ctx, 10)
	suite.Require().NoError(err)
	suite.Equal(versions, got)

	_, err = suite.service.ListMemoHistory(ctx, 11)
	suite.ErrorIs(err, assert.AnError)
}

func TestMemoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemoServiceTestSuite))
}
