package service

import (
	"context"
	"time"

	"github.com/geocoder89/monoapp/internal/cache"
	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/shared"
	"github.com/geocoder89/monoapp/internal/utils"
)

// UsersStore is satisfied by memory.UsersRepo and postgres.UsersRepo.
type UsersStore interface {
	FindAll(ctx context.Context) ([]user.User, error)
	FindOne(ctx context.Context, id string) (user.User, bool, error)
}

type UsersService struct {
	store UsersStore
	list  *cache.Cache[[]user.User]
	byID  *cache.Cache[user.User]
}

type UsersOption func(*UsersService)

// WithCache memoizes store reads for ttl. Misses are never cached.
func WithCache(ttl time.Duration) UsersOption {
	return func(s *UsersService) {
		s.list = cache.New[[]user.User](ttl)
		s.byID = cache.New[user.User](ttl)
	}
}

func NewUsersService(store UsersStore, opts ...UsersOption) *UsersService {
	s := &UsersService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindAll returns every user in store order.
func (s *UsersService) FindAll(ctx context.Context) ([]user.User, error) {
	if s.list != nil {
		if users, ok := s.list.Get(utils.UsersListCacheKey()); ok {
			return cloneUsers(users), nil
		}
	}

	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.list != nil {
		s.list.Set(utils.UsersListCacheKey(), cloneUsers(users))
	}

	return users, nil
}

// FindOne returns ok=false for an unknown id. That is a normal result, not an error.
func (s *UsersService) FindOne(ctx context.Context, id string) (user.User, bool, error) {
	if s.byID != nil {
		if u, ok := s.byID.Get(utils.UserByIDCacheKey(id)); ok {
			return u, true, nil
		}
	}

	u, ok, err := s.store.FindOne(ctx, id)
	if err != nil || !ok {
		return user.User{}, false, err
	}

	if s.byID != nil {
		s.byID.Set(utils.UserByIDCacheKey(id), u)
	}

	return u, true, nil
}

func (s *UsersService) Page(ctx context.Context, params shared.PaginationParams) (shared.PaginatedResponse[user.User], error) {
	users, err := s.FindAll(ctx)
	if err != nil {
		return shared.PaginatedResponse[user.User]{}, err
	}

	return shared.Paginate(users, params), nil
}

func cloneUsers(in []user.User) []user.User {
	out := make([]user.User, len(in))
	copy(out, in)
	return out
}
