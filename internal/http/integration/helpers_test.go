package integration__test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "github.com/geocoder89/monoapp/internal/http"
	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testDeps(deps apphttp.RouterDeps) apphttp.RouterDeps {
	if deps.Log == nil {
		deps.Log = testLogger()
	}
	if deps.Prom == nil {
		deps.Prom = observability.NewProm(prometheus.NewRegistry())
	}
	if deps.RateLimitWindow == 0 {
		deps.RateLimitWindow = time.Minute
	}
	if deps.MaxBodyBytes == 0 {
		deps.MaxBodyBytes = 1 << 20
	}
	return deps
}

func setupRouter(t *testing.T, deps apphttp.RouterDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return apphttp.NewRouter(testDeps(deps))
}

func doRequest(router http.Handler, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode JSON: %v, body=%s", err, w.Body.String())
	}
}
