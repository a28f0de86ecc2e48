package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/monoapp/internal/domain/user"
)

// UsersRepo serves a fixed set of users held in memory.
// Insertion order is preserved and nothing mutates the set after construction.
type UsersRepo struct {
	mu    sync.RWMutex
	items []user.User
}

func NewUsersRepo(seed []user.User) *UsersRepo {
	items := make([]user.User, len(seed))
	copy(items, seed)

	return &UsersRepo{items: items}
}

func (r *UsersRepo) FindAll(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, len(r.items))
	copy(out, r.items)

	return out, nil
}

// FindOne does a linear scan; ok is false when no user has the id.
func (r *UsersRepo) FindOne(ctx context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.ID == id {
			return u, true, nil
		}
	}

	return user.User{}, false, nil
}
