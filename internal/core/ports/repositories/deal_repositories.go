package repositories

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// DealReader defines read operations for deal data
type DealReader interface {
	// FindDealByID retrieves a specific deal by its ID.
	FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error)

	// ListDeals retrieves every deal in a stable order.
	ListDeals(ctx context.Context) ([]domain.Deal, error)
}

// DealWriter defines write operations for deal data.
// Each write and the activity it produces are committed in one transaction.
type DealWriter interface {
	// SaveDeal inserts a new deal, fills in its ID and timestamps, and records
	// the given activity against it.
	SaveDeal(ctx context.Context, deal *domain.Deal, activity domain.Activity) error

	// UpdateDeal persists the mutable fields of an existing deal and records
	// the given activities. updated_at is refreshed on the passed deal.
	UpdateDeal(ctx context.Context, deal *domain.Deal, activities []domain.Activity) error

	// DeleteDeal removes a deal together with its memo, versions and activities.
	DeleteDeal(ctx context.Context, dealID int64) error
}

// DealRepositoryFacade combines all deal-related repository interfaces
type DealRepositoryFacade interface {
	DealReader
	DealWriter
}
