// Package kanban groups deals into pipeline columns and turns drops between
// columns into stage updates.
package kanban

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/client/apiclient"
	"github.com/SscSPs/dealflow/internal/client/querycache"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/dto"
)

// Location is a position on the board.
type Location struct {
	Stage domain.DealStage
	Index int
}

// Drop describes a finished drag. Destination is nil when the deal was
// dropped outside any column.
type Drop struct {
	DealID      int64
	Source      Location
	Destination *Location
}

// Column is one stage and its deals in backend order.
type Column struct {
	Stage domain.DealStage
	Deals []domain.Deal
}

// GroupByStage returns one column per stage in pipeline order.
func GroupByStage(deals []domain.Deal) []Column {
	columns := make([]Column, len(domain.DealStages))
	for i, stage := range domain.DealStages {
		columns[i] = Column{Stage: stage, Deals: []domain.Deal{}}
		for _, d := range deals {
			if d.Stage == stage {
				columns[i].Deals = append(columns[i].Deals, d)
			}
		}
	}
	return columns
}

// Locate finds the column position of a deal.
func Locate(columns []Column, dealID int64) (Location, bool) {
	for _, col := range columns {
		for i, d := range col.Deals {
			if d.DealID == dealID {
				return Location{Stage: col.Stage, Index: i}, true
			}
		}
	}
	return Location{}, false
}

// Notifier surfaces a failure message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// DealAPI is the part of the API client the board needs.
type DealAPI interface {
	ListDeals(ctx context.Context) ([]domain.Deal, error)
	UpdateDeal(ctx context.Context, dealID int64, req dto.UpdateDealRequest) (*domain.Deal, error)
}

// Board applies drops with pessimistic updates: nothing moves locally, the
// deals key is invalidated and refetched after every request.
type Board struct {
	api      DealAPI
	cache    *querycache.Cache
	notifier Notifier
	logger   *slog.Logger
}

// NewBoard creates a board reading deals through cache.
func NewBoard(api DealAPI, cache *querycache.Cache, notifier Notifier, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{api: api, cache: cache, notifier: notifier, logger: logger}
}

// Columns returns the grouped deal list, fetching it if it is not cached.
func (b *Board) Columns(ctx context.Context) ([]Column, error) {
	deals, err := querycache.Fetch(ctx, b.cache, querycache.KeyDeals, b.api.ListDeals)
	if err != nil {
		return nil, err
	}
	return GroupByStage(deals), nil
}

// HandleDrop issues at most one stage update for drop. It reports whether a
// request was sent. On failure the message is passed to the notifier and the
// deal list is refetched so the board shows the server's state. An update
// rejected before sending leaves the board and cache untouched.
func (b *Board) HandleDrop(ctx context.Context, drop Drop) (bool, error) {
	if drop.Destination == nil || *drop.Destination == drop.Source {
		return false, nil
	}

	stage := drop.Destination.Stage
	_, err := b.api.UpdateDeal(ctx, drop.DealID, dto.UpdateDealRequest{Stage: &stage})
	if rejectedLocally(err) {
		return false, err
	}
	b.cache.Invalidate(querycache.KeyDeals)
	if err != nil {
		b.logger.Warn("Failed to move deal",
			slog.Int64("deal_id", drop.DealID),
			slog.String("stage", string(stage)),
			slog.String("error", err.Error()),
		)
		if b.notifier != nil {
			b.notifier.Notify(fmt.Sprintf("Failed to move deal: %v", err))
		}
		if _, refetchErr := b.Columns(ctx); refetchErr != nil {
			b.logger.Warn("Failed to refetch deals", slog.String("error", refetchErr.Error()))
		}
		return true, err
	}

	b.logger.Debug("Deal moved", slog.Int64("deal_id", drop.DealID), slog.String("stage", string(stage)))
	return true, nil
}

// rejectedLocally reports a validation failure that never reached the server.
func rejectedLocally(err error) bool {
	var apiErr *apiclient.APIError
	return errors.Is(err, apperrors.ErrValidation) && !errors.As(err, &apiErr)
}

// MoveDeal drops a deal at the end of the stage column. Moving a deal to the
// stage it is already in sends nothing.
func (b *Board) MoveDeal(ctx context.Context, dealID int64, stage domain.DealStage) (bool, error) {
	if !stage.IsValid() {
		return false, fmt.Errorf("unknown deal stage %q: %w", stage, apperrors.ErrValidation)
	}
	columns, err := b.Columns(ctx)
	if err != nil {
		return false, err
	}
	source, ok := Locate(columns, dealID)
	if !ok {
		return false, fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
	}

	dest := Location{Stage: stage}
	for _, col := range columns {
		if col.Stage == stage {
			dest.Index = len(col.Deals)
		}
	}
	if source.Stage == stage {
		dest = source
	}
	return b.HandleDrop(ctx, Drop{DealID: dealID, Source: source, Destination: &dest})
}
