package store

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles all repositories over one pgx pool. Queries are plain SQL;
// every error surfaces to the caller unmodified.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
