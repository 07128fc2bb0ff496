package pgsql

import (
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. The revoked token
// repository lives outside Postgres and is set by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		DealRepo:     newPgxDealRepository(dbPool),
		ActivityRepo: newPgxActivityRepository(dbPool),
		MemoRepo:     newPgxMemoRepository(dbPool),
	}
}
