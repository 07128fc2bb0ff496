package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
)

// MemoServiceOption is a functional option for configuring the memo service
type MemoServiceOption func(*memoService)

// WithMemoMetrics counts saved versions on the given collector.
func WithMemoMetrics(collector *metrics.Collector) MemoServiceOption {
	return func(s *memoService) {
		s.metrics = collector
	}
}

type memoService struct {
	BaseService
	memoRepo portsrepo.MemoRepositoryFacade
	dealRepo portsrepo.DealReader
	metrics  *metrics.Collector
}

// NewMemoService creates a new memo service.
func NewMemoService(memoRepo portsrepo.MemoRepositoryFacade, dealRepo portsrepo.DealReader, opts ...MemoServiceOption) portssvc.MemoSvcFacade {
	s := &memoService{memoRepo: memoRepo, dealRepo: dealRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.MemoSvcFacade = (*memoService)(nil)

func (s *memoService) GetCurrentMemo(ctx context.Context, dealID int64) (*domain.Memo, error) {
	memo, err := s.memoRepo.FindMemoByDealID(ctx, dealID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load memo", slog.Int64("deal_id", dealID))
		}
		return nil, err
	}
	return memo, nil
}

// SaveMemoVersion stores the full section mapping; versions are never edited in place.
func (s *memoService) SaveMemoVersion(ctx context.Context, dealID int64, sections domain.MemoSections, actor *domain.User) (*domain.MemoVersion, error) {
	if _, err := s.dealRepo.FindDealByID(ctx, dealID); err != nil {
		return nil, err
	}

	content, err := sections.MarshalContent()
	if err != nil {
		return nil, err
	}

	version, err := s.memoRepo.SaveMemoVersion(ctx, dealID, content, actor.UserID, func(versionID int64) domain.Activity {
		return domain.Activity{
			UserID:      actor.UserID,
			Type:        domain.ActivityMemoVersion,
			Description: fmt.Sprintf("Memo version %d saved by %s", versionID, actor.Email),
		}
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save memo version", slog.Int64("deal_id", dealID))
		return nil, fmt.Errorf("failed to save memo version: %w", err)
	}

	if s.metrics != nil {
		s.metrics.MemoVersions.Inc()
	}
	s.LogInfo(ctx, "Memo version saved", slog.Int64("deal_id", dealID), slog.Int64("version_id", version.MemoVersionID))
	return version, nil
}

func (s *memoService) ListMemoHistory(ctx context.Context, dealID int64) ([]domain.MemoVersion, error) {
	versions, err := s.memoRepo.ListMemoVersions(ctx, dealID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memo history", slog.Int64("deal_id", dealID))
		return nil, fmt.Errorf("failed to list memo history: %w", err)
	}
	return versions, nil
}
