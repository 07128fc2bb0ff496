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

type PgxMemoRepository struct {
	BaseRepository
}

func newPgxMemoRepository(db *pgxpool.Pool) portsrepo.MemoRepositoryFacade {
	return &PgxMemoRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.MemoRepositoryFacade = (*PgxMemoRepository)(nil)

func (r *PgxMemoRepository) FindMemoByDealID(ctx context.Context, dealID int64) (*domain.Memo, error) {
	query := `
		SELECT m.memo_id, m.deal_id, m.current_version_id, v.content, v.created_at
		FROM memos m
		LEFT JOIN memo_versions v ON v.memo_version_id = m.current_version_id
		WHERE m.deal_id = $1;
	`
	var m models.Memo
	err := r.Pool.QueryRow(ctx, query, dealID).Scan(
		&m.MemoID,
		&m.DealID,
		&m.CurrentVersionID,
		&m.Content,
		&m.VersionCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find memo for deal %d: %w", dealID, err)
	}
	d := mapping.ToDomainMemo(m)
	return &d, nil
}

func (r *PgxMemoRepository) ListMemoVersions(ctx context.Context, dealID int64) ([]domain.MemoVersion, error) {
	query := `
		SELECT v.memo_version_id, v.memo_id, v.content, v.created_at, v.created_by
		FROM memo_versions v
		JOIN memos m ON m.memo_id = v.memo_id
		WHERE m.deal_id = $1
		ORDER BY v.created_at DESC, v.memo_version_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memo versions for deal %d: %w", dealID, err)
	}
	defer rows.Close()

	modelVersions := []models.MemoVersion{}
	for rows.Next() {
		var m models.MemoVersion
		if err := rows.Scan(&m.MemoVersionID, &m.MemoID, &m.Content, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan memo version row: %w", err)
		}
		modelVersions = append(modelVersions, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating memo version rows: %w", rows.Err())
	}

	return mapping.ToDomainMemoVersionSlice(modelVersions), nil
}

// SaveMemoVersion upserts the memo row, appends the version, moves the current
// pointer and writes the activity, all in one transaction.
func (r *PgxMemoRepository) SaveMemoVersion(ctx context.Context, dealID int64, content string, createdBy int64, newActivity func(versionID int64) domain.Activity) (*domain.MemoVersion, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// The no-op update makes RETURNING yield the existing row on conflict.
	upsertMemo := `
		INSERT INTO memos (deal_id) VALUES ($1)
		ON CONFLICT (deal_id) DO UPDATE SET deal_id = EXCLUDED.deal_id
		RETURNING memo_id;
	`
	var memoID int64
	if err := tx.QueryRow(ctx, upsertMemo, dealID).Scan(&memoID); err != nil {
		return nil, fmt.Errorf("failed to upsert memo for deal %d: %w", dealID, err)
	}

	version := models.MemoVersion{MemoID: memoID, Content: content, CreatedBy: createdBy}
	insertVersion := `
		INSERT INTO memo_versions (memo_id, content, created_by)
		VALUES ($1, $2, $3)
		RETURNING memo_version_id, created_at;
	`
	if err := tx.QueryRow(ctx, insertVersion, memoID, content, createdBy).Scan(&version.MemoVersionID, &version.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert memo version for deal %d: %w", dealID, err)
	}

	if _, err := tx.Exec(ctx, `UPDATE memos SET current_version_id = $1 WHERE memo_id = $2;`, version.MemoVersionID, memoID); err != nil {
		return nil, fmt.Errorf("failed to update current memo version for deal %d: %w", dealID, err)
	}

	activity := newActivity(version.MemoVersionID)
	activity.DealID = dealID
	modelActivity := mapping.ToModelActivity(activity)
	if err := insertActivity(ctx, tx, &modelActivity); err != nil {
		return nil, fmt.Errorf("failed to insert memo activity for deal %d: %w", dealID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainMemoVersion(version)
	return &d, nil
}
