package mapping

import (
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/models"
)

// ToDomainMemo converts a model Memo to a domain Memo.
// A memo without a current version projects to empty content.
func ToDomainMemo(m models.Memo) domain.Memo {
	d := domain.Memo{
		MemoID:           m.MemoID,
		DealID:           m.DealID,
		CurrentVersionID: m.CurrentVersionID,
		UpdatedAt:        m.VersionCreatedAt,
	}
	if m.Content != nil {
		d.Content = *m.Content
	}
	return d
}

// ToDomainMemoVersion converts a model MemoVersion to a domain MemoVersion
func ToDomainMemoVersion(m models.MemoVersion) domain.MemoVersion {
	return domain.MemoVersion{
		MemoVersionID: m.MemoVersionID,
		MemoID:        m.MemoID,
		Content:       m.Content,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainMemoVersionSlice converts a slice of model MemoVersions to a slice of domain MemoVersions
func ToDomainMemoVersionSlice(ms []models.MemoVersion) []domain.MemoVersion {
	ds := make([]domain.MemoVersion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMemoVersion(m)
	}
	return ds
}
