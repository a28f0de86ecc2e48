package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/geocoder89/monoapp/internal/observability"
)

// Observer sees every call: ObserveRequest once before sending, then exactly one
// of ObserveResponse or ObserveError. Observers cannot change the outcome.
type Observer interface {
	ObserveRequest(ctx context.Context, method, path string)
	ObserveResponse(ctx context.Context, method, path string, status int, d time.Duration)
	ObserveError(ctx context.Context, method, path string, err error, d time.Duration)
}

type observers []Observer

func (o observers) ObserveRequest(ctx context.Context, method, path string) {
	for _, obs := range o {
		obs.ObserveRequest(ctx, method, path)
	}
}

func (o observers) ObserveResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	for _, obs := range o {
		obs.ObserveResponse(ctx, method, path, status, d)
	}
}

func (o observers) ObserveError(ctx context.Context, method, path string, err error, d time.Duration) {
	for _, obs := range o {
		obs.ObserveError(ctx, method, path, err, d)
	}
}

// LogObserver writes one debug line per request and one line per outcome.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log}
}

func (l *LogObserver) ObserveRequest(ctx context.Context, method, path string) {
	l.log.DebugContext(ctx, "api_request", "method", method, "path", path)
}

func (l *LogObserver) ObserveResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	l.log.DebugContext(ctx, "api_response",
		"method", method,
		"path", path,
		"status", status,
		"latency_ms", d.Milliseconds(),
	)
}

// ObserveError logs the response payload for non-2xx answers, otherwise the error message.
func (l *LogObserver) ObserveError(ctx context.Context, method, path string, err error, d time.Duration) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		l.log.ErrorContext(ctx, "api_error",
			"method", method,
			"path", path,
			"status", statusErr.StatusCode,
			"body", string(statusErr.Body),
			"latency_ms", d.Milliseconds(),
		)
		return
	}

	l.log.ErrorContext(ctx, "api_error",
		"method", method,
		"path", path,
		"err", err.Error(),
		"latency_ms", d.Milliseconds(),
	)
}

// PromObserver feeds the apiclient request counter and latency histogram.
type PromObserver struct {
	prom *observability.Prom
}

func NewPromObserver(prom *observability.Prom) *PromObserver {
	return &PromObserver{prom: prom}
}

func (p *PromObserver) ObserveRequest(context.Context, string, string) {}

func (p *PromObserver) ObserveResponse(_ context.Context, method, _ string, status int, d time.Duration) {
	p.prom.ObserveClientCall(method, status, nil, d)
}

func (p *PromObserver) ObserveError(_ context.Context, method, _ string, err error, d time.Duration) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		p.prom.ObserveClientCall(method, statusErr.StatusCode, nil, d)
		return
	}

	p.prom.ObserveClientCall(method, 0, err, d)
}
