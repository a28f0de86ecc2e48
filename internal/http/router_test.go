package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/repo/memory"
	"github.com/geocoder89/monoapp/internal/service"
	"github.com/gin-gonic/gin"
)

func TestNewRouter_NilLoggerUsesDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := NewRouter(RouterDeps{
		Health: service.NewHealthService(),
		Users:  service.NewUsersService(memory.NewUsersRepo(user.Seed())),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	if !strings.Contains(buf.String(), `"msg":"http_request"`) || !strings.Contains(buf.String(), `"route":"/api/users/:id"`) {
		t.Fatalf("request line missing from default logger: %s", buf.String())
	}
}
