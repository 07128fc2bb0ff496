package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
)

// ListDeals returns every deal in the order the server lists them.
func (c *Client) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	var resp []dto.DealResponse
	if err := c.doJSON(ctx, http.MethodGet, "/deals", nil, &resp); err != nil {
		return nil, err
	}
	deals := make([]domain.Deal, len(resp))
	for i, d := range resp {
		deals[i] = d.ToDomain()
	}
	return deals, nil
}

// CreateDeal creates a deal; the server places it in the Sourced stage.
func (c *Client) CreateDeal(ctx context.Context, req dto.CreateDealRequest) (*domain.Deal, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	var resp dto.DealResponse
	if err := c.doJSON(ctx, http.MethodPost, "/deals", req, &resp); err != nil {
		return nil, err
	}
	deal := resp.ToDomain()
	return &deal, nil
}

// UpdateDeal sends a partial update. Requests that fail validation, such as
// an unknown stage, are rejected before anything is sent.
func (c *Client) UpdateDeal(ctx context.Context, dealID int64, req dto.UpdateDealRequest) (*domain.Deal, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	var resp dto.DealResponse
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/deals/%d", dealID), req, &resp); err != nil {
		return nil, err
	}
	deal := resp.ToDomain()
	return &deal, nil
}

// DeleteDeal removes a deal. Only admins may do this.
func (c *Client) DeleteDeal(ctx context.Context, dealID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/deals/%d", dealID), nil, nil)
}

// ListActivities returns the activity log of a deal, newest first.
func (c *Client) ListActivities(ctx context.Context, dealID int64) ([]domain.Activity, error) {
	var resp []dto.ActivityResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/deals/%d/activities", dealID), nil, &resp); err != nil {
		return nil, err
	}
	activities := make([]domain.Activity, len(resp))
	for i, a := range resp {
		activities[i] = a.ToDomain()
	}
	return activities, nil
}

func validationError(err error) error {
	return fmt.Errorf("invalid request: %w: %w", apperrors.ErrValidation, err)
}
