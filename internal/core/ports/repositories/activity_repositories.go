package repositories

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// ActivityReader defines read operations for the append-only activity log.
// Activities are only ever written alongside the deal or memo mutation that caused them.
type ActivityReader interface {
	// ListActivitiesByDeal retrieves a deal's activities, newest first.
	ListActivitiesByDeal(ctx context.Context, dealID int64) ([]domain.Activity, error)
}

// ActivityRepositoryFacade combines all activity-related repository interfaces
type ActivityRepositoryFacade interface {
	ActivityReader
}
