package web

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/geocoder89/monoapp/internal/shared"
)

// MsgBackendUnavailable replaces any fetch error on the page.
const MsgBackendUnavailable = "Unable to connect to backend API"

var ErrRefreshInFlight = errors.New("health check already in flight")

type HealthFetcher interface {
	GetHealth(ctx context.Context) (shared.HealthResponse, error)
}

// State is a snapshot of the home view.
type State struct {
	Data    *shared.HealthResponse `json:"data"`
	Loading bool                   `json:"loading"`
	Error   string                 `json:"error,omitempty"`
}

// View holds the backend status shown on the home page. One fetch runs at a
// time; refreshes requested meanwhile are rejected, never queued.
type View struct {
	client HealthFetcher
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	mounted bool

	// fetches tracks background fetches so shutdown can wait for them
	fetches sync.WaitGroup
}

func NewView(client HealthFetcher, log *slog.Logger) *View {
	if log == nil {
		log = slog.Default()
	}
	return &View{client: client, log: log}
}

func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.state
	if s.Data != nil {
		d := *s.Data
		s.Data = &d
	}
	return s
}

// Mount issues the initial fetch the first time the home page is rendered.
// Later calls return nil.
func (v *View) Mount(ctx context.Context) <-chan struct{} {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return nil
	}
	v.mounted = true
	v.mu.Unlock()

	done, _ := v.Refresh(ctx)
	return done
}

// Refresh starts a fetch in the background. The returned channel closes once
// the state has been updated.
func (v *View) Refresh(ctx context.Context) (<-chan struct{}, error) {
	v.mu.Lock()
	if v.state.Loading {
		v.mu.Unlock()
		return nil, ErrRefreshInFlight
	}
	v.state.Loading = true
	v.mounted = true
	v.fetches.Add(1)
	v.mu.Unlock()

	done := make(chan struct{})

	// the fetch outlives the request that triggered it
	fetchCtx := context.WithoutCancel(ctx)

	go func() {
		defer v.fetches.Done()
		defer close(done)
		v.fetch(fetchCtx)
	}()

	return done, nil
}

// Wait blocks until no fetch is running or ctx ends. A running fetch is never
// cancelled; it is bounded by the API client timeout.
func (v *View) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	go func() {
		v.fetches.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *View) fetch(ctx context.Context) {
	data, err := v.client.GetHealth(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Loading = false

	if err != nil {
		v.log.ErrorContext(ctx, "fetch backend health failed", "err", err)
		v.state.Data = nil
		v.state.Error = MsgBackendUnavailable
		return
	}

	v.state.Data = &data
	v.state.Error = ""
}
