package services

import (
	"context"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// MemoSvcFacade defines operations on a deal's versioned memo.
type MemoSvcFacade interface {
	// GetCurrentMemo returns the memo projected from its latest version.
	GetCurrentMemo(ctx context.Context, dealID int64) (*domain.Memo, error)

	// SaveMemoVersion stores the sections as a new immutable version.
	SaveMemoVersion(ctx context.Context, dealID int64, sections domain.MemoSections, actor *domain.User) (*domain.MemoVersion, error)

	// ListMemoHistory returns all versions, newest first.
	ListMemoHistory(ctx context.Context, dealID int64) ([]domain.MemoVersion, error)
}
