package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
)

// GetMemo returns the current memo of a deal, or nil when none has been saved.
func (c *Client) GetMemo(ctx context.Context, dealID int64) (*domain.Memo, error) {
	var resp dto.MemoResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/memos/%d", dealID), nil, &resp); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	memo := resp.ToDomain()
	return &memo, nil
}

// SaveMemo stores sections as a new memo version and returns the version id.
func (c *Client) SaveMemo(ctx context.Context, dealID int64, sections domain.MemoSections) (int64, error) {
	var resp dto.SaveMemoResponse
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/memos/%d", dealID), sections.Map(), &resp); err != nil {
		return 0, err
	}
	return resp.VersionID, nil
}

// MemoHistory lists the saved versions of a deal's memo, newest first.
func (c *Client) MemoHistory(ctx context.Context, dealID int64) ([]domain.MemoVersion, error) {
	var resp []dto.MemoVersionResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/memos/%d/history", dealID), nil, &resp); err != nil {
		return nil, err
	}
	versions := make([]domain.MemoVersion, len(resp))
	for i, v := range resp {
		versions[i] = v.ToDomain()
	}
	return versions, nil
}
