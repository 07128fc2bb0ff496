package dto

import (
	"time"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// MemoResponse defines the current memo of a deal.
type MemoResponse struct {
	MemoID           int64      `json:"id"`
	DealID           int64      `json:"deal_id"`
	CurrentVersionID *int64     `json:"current_version_id"`
	Content          string     `json:"content"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// ToMemoResponse converts a domain.Memo to MemoResponse DTO
func ToMemoResponse(m *domain.Memo) MemoResponse {
	return MemoResponse(*m)
}

// ToDomain converts the response back into a domain.Memo.
func (r MemoResponse) ToDomain() domain.Memo {
	return domain.Memo(r)
}

// MemoVersionResponse defines one immutable memo snapshot.
type MemoVersionResponse struct {
	MemoVersionID int64     `json:"id"`
	MemoID        int64     `json:"memo_id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     int64     `json:"created_by"`
}

// ToListMemoVersionResponse converts a slice of domain.MemoVersion to a slice of MemoVersionResponse DTOs
func ToListMemoVersionResponse(versions []domain.MemoVersion) []MemoVersionResponse {
	res := make([]MemoVersionResponse, len(versions))
	for i, v := range versions {
		res[i] = MemoVersionResponse(v)
	}
	return res
}

// ToDomain converts the response back into a domain.MemoVersion.
func (r MemoVersionResponse) ToDomain() domain.MemoVersion {
	return domain.MemoVersion(r)
}

// SaveMemoResponse is returned after a new memo version is stored.
type SaveMemoResponse struct {
	Status    string `json:"status"`
	VersionID int64  `json:"version_id"`
}
