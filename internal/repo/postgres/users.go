package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) FindAll(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := r.observe("users.find_all", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, email, name, created_at, updated_at
			 FROM users
			 ORDER BY position ASC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]user.User, 0)
		for rows.Next() {
			var u user.User
			if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return err
			}
			out = append(out, inUTC(u))
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FindOne reports ok=false when the id is unknown; err is reserved for I/O failures.
func (r *UsersRepo) FindOne(ctx context.Context, id string) (user.User, bool, error) {
	u, err := r.getByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return user.User{}, false, nil
		}
		return user.User{}, false, err
	}

	return u, true, nil
}

func (r *UsersRepo) getByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.find_one", func() error {
		err := r.pool.QueryRow(ctx,
			`SELECT id, email, name, created_at, updated_at
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)

		if errors.Is(err, pgx.ErrNoRows) {
			// a miss is not a DB error
			return nil
		}
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	if u.ID == "" {
		return user.User{}, ErrUserNotFound
	}

	return inUTC(u), nil
}

// inUTC drops the session time zone pgx applies to timestamptz columns.
func inUTC(u user.User) user.User {
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u
}
