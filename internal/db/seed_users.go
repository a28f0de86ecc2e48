package db

import (
	"context"
	"fmt"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// EnsureSeedUsers creates the users table if needed and inserts the seed set.
// Existing rows are left untouched so restarts are idempotent.
func EnsureSeedUsers(ctx context.Context, pool *pgxpool.Pool, seed []user.User) error {
	_, err := pool.Exec(ctx, createUsersTable)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	for i, u := range seed {
		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, position, email, name, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO NOTHING`,
			u.ID, i, u.Email, u.Name, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	return nil
}
