package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	"github.com/SscSPs/dealflow/internal/models"
	"github.com/SscSPs/dealflow/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertActivityQuery = `
	INSERT INTO activities (deal_id, user_id, activity_type, description)
	VALUES ($1, $2, $3, $4)
	RETURNING activity_id, created_at;
`

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(db *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) ListActivitiesByDeal(ctx context.Context, dealID int64) ([]domain.Activity, error) {
	query := `
		SELECT activity_id, deal_id, user_id, activity_type, description, created_at
		FROM activities
		WHERE deal_id = $1
		ORDER BY created_at DESC, activity_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities for deal %d: %w", dealID, err)
	}
	defer rows.Close()

	modelActivities := []models.Activity{}
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(&m.ActivityID, &m.DealID, &m.UserID, &m.ActivityType, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		modelActivities = append(modelActivities, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", rows.Err())
	}

	return mapping.ToDomainActivitySlice(modelActivities), nil
}
