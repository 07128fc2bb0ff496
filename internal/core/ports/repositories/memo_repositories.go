package repositories

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// MemoReader defines read operations for memo data
type MemoReader interface {
	// FindMemoByDealID retrieves the current memo of a deal.
	// Returns apperrors.ErrNotFound when the deal has no memo yet.
	FindMemoByDealID(ctx context.Context, dealID int64) (*domain.Memo, error)

	// ListMemoVersions retrieves all versions of a deal's memo, newest first.
	ListMemoVersions(ctx context.Context, dealID int64) ([]domain.MemoVersion, error)
}

// MemoWriter defines write operations for memo data
type MemoWriter interface {
	// SaveMemoVersion appends a version to the deal's memo (creating the memo
	// on first save), moves the current pointer to it and records the activity
	// built by newActivity from the assigned version ID.
	SaveMemoVersion(ctx context.Context, dealID int64, content string, createdBy int64, newActivity func(versionID int64) domain.Activity) (*domain.MemoVersion, error)
}

// MemoRepositoryFacade combines all memo-related repository interfaces
type MemoRepositoryFacade interface {
	MemoReader
	MemoWriter
}
