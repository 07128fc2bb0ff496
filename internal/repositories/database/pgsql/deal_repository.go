package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	"github.com/SscSPs/dealflow/internal/models"
	"github.com/SscSPs/dealflow/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dealColumns = `deal_id, name, company_url, owner_id, stage, round, check_size, status, created_at, updated_at`

type PgxDealRepository struct {
	BaseRepository
}

func newPgxDealRepository(db *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

func scanDeal(row pgx.Row) (models.Deal, error) {
	var m models.Deal
	err := row.Scan(
		&m.DealID,
		&m.Name,
		&m.CompanyURL,
		&m.OwnerID,
		&m.Stage,
		&m.Round,
		&m.CheckSize,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveDeal inserts the deal and its creation activity in one transaction.
func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal *domain.Deal, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDeal(*deal)
	query := `
		INSERT INTO deals (name, company_url, owner_id, stage, round, check_size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING deal_id, created_at, updated_at;
	`
	err = tx.QueryRow(ctx, query,
		m.Name,
		m.CompanyURL,
		m.OwnerID,
		m.Stage,
		m.Round,
		m.CheckSize,
		m.Status,
	).Scan(&deal.DealID, &deal.CreatedAt, &deal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deal: %w", err)
	}

	activity.DealID = deal.DealID
	modelActivity := mapping.ToModelActivity(activity)
	if err := insertActivity(ctx, tx, &modelActivity); err != nil {
		return fmt.Errorf("failed to insert creation activity for deal %d: %w", deal.DealID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDeal writes the deal's mutable fields and the given activities in one transaction.
func (r *PgxDealRepository) UpdateDeal(ctx context.Context, deal *domain.Deal, activities []domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDeal(*deal)
	query := `
		UPDATE deals
		SET name = $1, company_url = $2, owner_id = $3, stage = $4, round = $5,
		    check_size = $6, status = $7, updated_at = NOW()
		WHERE deal_id = $8
		RETURNING updated_at;
	`
	err = tx.QueryRow(ctx, query,
		m.Name,
		m.CompanyURL,
		m.OwnerID,
		m.Stage,
		m.Round,
		m.CheckSize,
		m.Status,
		m.DealID,
	).Scan(&deal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("deal %d: %w", deal.DealID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to update deal %d: %w", deal.DealID, err)
	}

	for _, activity := range activities {
		activity.DealID = deal.DealID
		modelActivity := mapping.ToModelActivity(activity)
		if err := insertActivity(ctx, tx, &modelActivity); err != nil {
			return fmt.Errorf("failed to insert activity for deal %d: %w", deal.DealID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteDeal removes the deal; memos, versions and activities cascade.
func (r *PgxDealRepository) DeleteDeal(ctx context.Context, dealID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM deals WHERE deal_id = $1;`, dealID)
	if err != nil {
		return fmt.Errorf("failed to delete deal %d: %w", dealID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1;`
	m, err := scanDeal(r.Pool.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deal by ID %d: %w", dealID, err)
	}
	d := mapping.ToDomainDeal(m)
	return &d, nil
}

func (r *PgxDealRepository) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals ORDER BY deal_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	modelDeals := []models.Deal{}
	for rows.Next() {
		m, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		modelDeals = append(modelDeals, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating deal rows: %w", rows.Err())
	}

	return mapping.ToDomainDealSlice(modelDeals), nil
}
