package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/repo/memory"
	"github.com/geocoder89/monoapp/internal/shared"
)

type fakeUsersStore struct {
	findAllFn func(ctx context.Context) ([]user.User, error)
	findOneFn func(ctx context.Context, id string) (user.User, bool, error)
	allCalls  int
	oneCalls  int
}

func (f *fakeUsersStore) FindAll(ctx context.Context) ([]user.User, error) {
	f.allCalls++
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return user.Seed(), nil
}

func (f *fakeUsersStore) FindOne(ctx context.Context, id string) (user.User, bool, error) {
	f.oneCalls++
	if f.findOneFn != nil {
		return f.findOneFn(ctx, id)
	}
	return memory.NewUsersRepo(user.Seed()).FindOne(ctx, id)
}

func TestUsersService_FindOne(t *testing.T) {
	svc := NewUsersService(memory.NewUsersRepo(user.Seed()))

	got, ok, err := svc.FindOne(context.Background(), "1")
	if err != nil || !ok {
		t.Fatalf("FindOne(1): ok=%v err=%v", ok, err)
	}
	if got.Email != "john.doe@example.com" || got.Name != "John Doe" {
		t.Fatalf("unexpected user: %+v", got)
	}

	_, ok, err = svc.FindOne(context.Background(), "3")
	if err != nil {
		t.Fatalf("not found must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("user 3 should not exist")
	}
}

func TestUsersService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	store := &fakeUsersStore{
		findAllFn: func(context.Context) ([]user.User, error) { return nil, boom },
		findOneFn: func(context.Context, string) (user.User, bool, error) { return user.User{}, false, boom },
	}
	svc := NewUsersService(store)

	if _, err := svc.FindAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("FindAll err = %v", err)
	}
	if _, _, err := svc.FindOne(context.Background(), "1"); !errors.Is(err, boom) {
		t.Fatalf("FindOne err = %v", err)
	}
	if _, err := svc.Page(context.Background(), shared.PaginationParams{}); !errors.Is(err, boom) {
		t.Fatalf("Page err = %v", err)
	}
}

func TestUsersService_CacheHitsAndMisses(t *testing.T) {
	store := &fakeUsersStore{}
	svc := NewUsersService(store, WithCache(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		users, err := svc.FindAll(ctx)
		if err != nil || len(users) != 2 {
			t.Fatalf("FindAll: %v %v", users, err)
		}
		users[0].Name = "mutated"
	}
	if store.allCalls != 1 {
		t.Fatalf("store FindAll called %d times, want 1", store.allCalls)
	}

	again, _ := svc.FindAll(ctx)
	if again[0].Name != "John Doe" {
		t.Fatalf("cached list must not be shared with callers")
	}

	for i := 0; i < 2; i++ {
		if _, ok, _ := svc.FindOne(ctx, "2"); !ok {
			t.Fatalf("user 2 should exist")
		}
		if _, ok, _ := svc.FindOne(ctx, "9"); ok {
			t.Fatalf("user 9 should not exist")
		}
	}
	// one store hit for "2", two for "9" since misses are not cached
	if store.oneCalls != 3 {
		t.Fatalf("store FindOne called %d times, want 3", store.oneCalls)
	}
}

func TestUsersService_Page(t *testing.T) {
	svc := NewUsersService(memory.NewUsersRepo(user.Seed()))

	page, err := svc.Page(context.Background(), shared.PaginationParams{Page: 2, Limit: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "2" {
		t.Fatalf("unexpected page data: %+v", page.Data)
	}
	if page.Pagination.Total != 2 || page.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}
