package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/http/handlers"
	"github.com/geocoder89/monoapp/internal/shared"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsersReader struct {
	findAllFn func(ctx context.Context) ([]user.User, error)
	findOneFn func(ctx context.Context, id string) (user.User, bool, error)
	pageFn    func(ctx context.Context, params shared.PaginationParams) (shared.PaginatedResponse[user.User], error)
}

func (f *fakeUsersReader) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return user.Seed(), nil
}

func (f *fakeUsersReader) FindOne(ctx context.Context, id string) (user.User, bool, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, id)
	}
	for _, u := range user.Seed() {
		if u.ID == id {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (f *fakeUsersReader) Page(ctx context.Context, params shared.PaginationParams) (shared.PaginatedResponse[user.User], error) {
	if f.pageFn != nil {
		return f.pageFn(ctx, params)
	}
	return shared.Paginate(user.Seed(), params), nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Query  string                `json:"query"`
			Fields []handlers.FieldError `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		strict         bool
		repoSetUp      func(*fakeUsersReader)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "known id",
			id:             "1",
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":"1","email":"john.doe@example.com","name":"John Doe","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:           "unknown id answers null with 200",
			id:             "3",
			wantStatusCode: http.StatusOK,
			wantBody:       "null",
		},
		{
			name:           "unknown id in strict mode",
			id:             "3",
			strict:         true,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			id:   "1",
			repoSetUp: func(f *fakeUsersReader) {
				f.findOneFn = func(context.Context, string) (user.User, bool, error) {
					return user.User{}, false, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersReader{}
			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewUsersHandler(repo, tt.strict)
			r := setupRouter(http.MethodGet, "/api/users/:id", h.GetUserByID)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+tt.id, nil))

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Fatalf("got body %s, want %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGetUserByID_StrictNotFoundEnvelope(t *testing.T) {
	h := handlers.NewUsersHandler(&fakeUsersReader{}, true)
	r := setupRouter(http.MethodGet, "/api/users/:id", h.GetUserByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/42", nil))

	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v body=%s", err, w.Body.String())
	}
	if resp.Error.Code != "not_found" || resp.Error.Message != shared.MsgNotFound {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestListUsers(t *testing.T) {
	h := handlers.NewUsersHandler(&fakeUsersReader{}, false)
	r := setupRouter(http.MethodGet, "/api/users", h.ListUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var users []user.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("response is not a user array: %v body=%s", err, w.Body.String())
	}
	if len(users) != 2 || users[0].ID != "1" || users[1].ID != "2" {
		t.Fatalf("unexpected users: %+v", users)
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("If-None-Match", "W/"+etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", w.Code)
	}
}

func TestListUsers_Paginated(t *testing.T) {
	h := handlers.NewUsersHandler(&fakeUsersReader{}, false)
	r := setupRouter(http.MethodGet, "/api/users", h.ListUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page=2&limit=1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d body=%s", w.Code, w.Body.String())
	}

	var page shared.PaginatedResponse[user.User]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "2" {
		t.Fatalf("unexpected data: %+v", page.Data)
	}
	if page.Pagination.Total != 2 || page.Pagination.TotalPages != 2 || page.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestListUsers_InvalidPagination(t *testing.T) {
	h := handlers.NewUsersHandler(&fakeUsersReader{}, false)
	r := setupRouter(http.MethodGet, "/api/users", h.ListUsers)

	tests := []struct {
		name      string
		query     string
		wantField string
		wantRule  string
		wantQuery string
	}{
		{name: "limit too large", query: "?limit=1000", wantField: "limit", wantRule: "max"},
		{name: "negative page", query: "?page=-1&limit=5", wantField: "page", wantRule: "min"},
		{name: "not a number", query: "?page=abc", wantQuery: "invalid_query_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users"+tt.query, nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
			}

			var resp errorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}
			if resp.Error.Code != "invalid_request" {
				t.Fatalf("unexpected code %q", resp.Error.Code)
			}

			if tt.wantQuery != "" {
				if resp.Error.Details.Query != tt.wantQuery {
					t.Fatalf("details.query = %q, want %q", resp.Error.Details.Query, tt.wantQuery)
				}
				return
			}

			if len(resp.Error.Details.Fields) == 0 {
				t.Fatalf("expected field errors, body=%s", w.Body.String())
			}
			fe := resp.Error.Details.Fields[0]
			if fe.Field != tt.wantField || fe.Rule != tt.wantRule || fe.Message == "" {
				t.Fatalf("unexpected field error %+v", fe)
			}
		})
	}
}

func TestListUsers_StoreFailure(t *testing.T) {
	repo := &fakeUsersReader{
		findAllFn: func(context.Context) ([]user.User, error) { return nil, errors.New("db down") },
	}
	h := handlers.NewUsersHandler(repo, false)
	r := setupRouter(http.MethodGet, "/api/users", h.ListUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
}

func TestListUsers_HugePageIsEmpty(t *testing.T) {
	h := handlers.NewUsersHandler(&fakeUsersReader{}, false)
	r := setupRouter(http.MethodGet, "/api/users", h.ListUsers)

	for _, page := range []string{"3", "92233720368547759", "9223372036854775807"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page="+page, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("page=%s: got status %d, want 200, body=%s", page, w.Code, w.Body.String())
		}

		var resp shared.PaginatedResponse[user.User]
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("page=%s: failed to unmarshal: %v", page, err)
		}
		if len(resp.Data) != 0 || resp.Pagination.Total != 2 {
			t.Fatalf("page=%s: unexpected response %+v", page, resp)
		}
	}
}
