package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
)

// DealServiceOption is a functional option for configuring the deal service
type DealServiceOption func(*dealService)

// WithDealMetrics records deal lifecycle counters on the given collector.
func WithDealMetrics(collector *metrics.Collector) DealServiceOption {
	return func(s *dealService) {
		s.metrics = collector
	}
}

type dealService struct {
	BaseService
	dealRepo     portsrepo.DealRepositoryFacade
	activityRepo portsrepo.ActivityReader
	metrics      *metrics.Collector
}

// NewDealService creates a new deal service.
func NewDealService(dealRepo portsrepo.DealRepositoryFacade, activityRepo portsrepo.ActivityReader, opts ...DealServiceOption) portssvc.DealSvcFacade {
	s := &dealService{dealRepo: dealRepo, activityRepo: activityRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DealSvcFacade = (*dealService)(nil)

func (s *dealService) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	deals, err := s.dealRepo.ListDeals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deals")
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

func (s *dealService) GetDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find deal", slog.Int64("deal_id", dealID))
		}
		return nil, err
	}
	return deal, nil
}

func (s *dealService) ListActivities(ctx context.Context, dealID int64) ([]domain.Activity, error) {
	if _, err := s.GetDealByID(ctx, dealID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListActivitiesByDeal(ctx, dealID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities", slog.Int64("deal_id", dealID))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// CreateDeal ignores any caller-provided stage: every deal enters the pipeline as Sourced.
func (s *dealService) CreateDeal(ctx context.Context, req dto.CreateDealRequest, actor *domain.User) (*domain.Deal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("deal name is required: %w", apperrors.ErrValidation)
	}
	if req.CheckSize != nil && req.CheckSize.IsNegative() {
		return nil, fmt.Errorf("check size cannot be negative: %w", apperrors.ErrValidation)
	}

	ownerID := req.OwnerID
	if ownerID == nil {
		id := actor.UserID
		ownerID = &id
	}

	deal := &domain.Deal{
		Name:       name,
		CompanyURL: req.CompanyURL,
		OwnerID:    ownerID,
		Stage:      domain.StageSourced,
		Round:      req.Round,
		CheckSize:  req.CheckSize,
		Status:     domain.DealStatusActive,
	}
	activity := domain.Activity{
		UserID:      actor.UserID,
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Deal '%s' created by %s", deal.Name, actor.Email),
	}

	if err := s.dealRepo.SaveDeal(ctx, deal, activity); err != nil {
		s.LogError(ctx, err, "Failed to save deal")
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	if s.metrics != nil {
		s.metrics.DealsCreated.Inc()
	}
	s.LogInfo(ctx, "Deal created", slog.Int64("deal_id", deal.DealID))
	return deal, nil
}

// UpdateDeal applies only the provided fields. A request that changes nothing
// returns the stored deal without writing.
func (s *dealService) UpdateDeal(ctx context.Context, dealID int64, req dto.UpdateDealRequest, actor *domain.User) (*domain.Deal, error) {
	if req.Stage != nil && !req.Stage.IsValid() {
		return nil, fmt.Errorf("unknown deal stage %q: %w", *req.Stage, apperrors.ErrValidation)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("deal name cannot be blank: %w", apperrors.ErrValidation)
	}
	if req.CheckSize != nil && req.CheckSize.IsNegative() {
		return nil, fmt.Errorf("check size cannot be negative: %w", apperrors.ErrValidation)
	}

	deal, err := s.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	var activities []domain.Activity
	oldStage := deal.Stage
	if req.Stage != nil && *req.Stage != deal.Stage {
		deal.Stage = *req.Stage
		activities = append(activities, domain.Activity{
			UserID:      actor.UserID,
			Type:        domain.ActivityStageChange,
			Description: fmt.Sprintf("Moved from %s to %s", oldStage, deal.Stage),
		})
	}

	changed := applyDealFields(deal, req)
	if len(changed) > 0 {
		activities = append(activities, domain.Activity{
			UserID:      actor.UserID,
			Type:        domain.ActivityUpdated,
			Description: "Updated " + strings.Join(changed, ", "),
		})
	}

	if len(activities) == 0 {
		s.LogDebug(ctx, "Deal update changed nothing", slog.Int64("deal_id", dealID))
		return deal, nil
	}

	if err := s.dealRepo.UpdateDeal(ctx, deal, activities); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update deal", slog.Int64("deal_id", dealID))
		}
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	if s.metrics != nil && oldStage != deal.Stage {
		s.metrics.StageTransitions.WithLabelValues(string(oldStage), string(deal.Stage)).Inc()
	}
	s.LogInfo(ctx, "Deal updated", slog.Int64("deal_id", dealID), slog.String("stage", string(deal.Stage)))
	return deal, nil
}

// applyDealFields copies the non-stage fields of req onto deal and returns the
// names of the fields whose value changed.
func applyDealFields(deal *domain.Deal, req dto.UpdateDealRequest) []string {
	var changed []string
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != deal.Name {
			deal.Name = name
			changed = append(changed, "name")
		}
	}
	if req.CompanyURL != nil && !equalStringPtr(deal.CompanyURL, req.CompanyURL) {
		deal.CompanyURL = req.CompanyURL
		changed = append(changed, "company_url")
	}
	if req.Round != nil && !equalStringPtr(deal.Round, req.Round) {
		deal.Round = req.Round
		changed = append(changed, "round")
	}
	if req.CheckSize != nil && (deal.CheckSize == nil || !deal.CheckSize.Equal(*req.CheckSize)) {
		deal.CheckSize = req.CheckSize
		changed = append(changed, "check_size")
	}
	if req.Status != nil && *req.Status != deal.Status {
		deal.Status = *req.Status
		changed = append(changed, "status")
	}
	if req.OwnerID != nil && (deal.OwnerID == nil || *deal.OwnerID != *req.OwnerID) {
		deal.OwnerID = req.OwnerID
		changed = append(changed, "owner_id")
	}
	return changed
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *dealService) DeleteDeal(ctx context.Context, dealID int64, actor *domain.User) error {
	if !actor.IsAdmin() {
		s.LogInfo(ctx, "Non-admin attempted to delete deal", slog.Int64("deal_id", dealID), slog.String("role", string(actor.Role)))
		return fmt.Errorf("only admins can delete deals: %w", apperrors.ErrForbidden)
	}
	if err := s.dealRepo.DeleteDeal(ctx, dealID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete deal", slog.Int64("deal_id", dealID))
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.DealsDeleted.Inc()
	}
	s.LogInfo(ctx, "Deal deleted", slog.Int64("deal_id", dealID))
	return nil
}
