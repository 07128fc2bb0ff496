package services

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
)

// DealReaderSvc defines read operations for deals
type DealReaderSvc interface {
	// ListDeals returns every deal.
	ListDeals(ctx context.Context) ([]domain.Deal, error)

	// GetDealByID returns one deal.
	GetDealByID(ctx context.Context, dealID int64) (*domain.Deal, error)

	// ListActivities returns a deal's activity log, newest first.
	ListActivities(ctx context.Context, dealID int64) ([]domain.Activity, error)
}

// DealWriterSvc defines write operations for deals
type DealWriterSvc interface {
	// CreateDeal creates a deal in the Sourced stage with active status.
	CreateDeal(ctx context.Context, req dto.CreateDealRequest, actor *domain.User) (*domain.Deal, error)

	// UpdateDeal applies a partial update, recording stage changes and field edits as activities.
	UpdateDeal(ctx context.Context, dealID int64, req dto.UpdateDealRequest, actor *domain.User) (*domain.Deal, error)

	// DeleteDeal removes a deal. Only admins may delete.
	DeleteDeal(ctx context.Context, dealID int64, actor *domain.User) error
}

// DealSvcFacade combines all deal-related service interfaces
type DealSvcFacade interface {
	DealReaderSvc
	DealWriterSvc
}
