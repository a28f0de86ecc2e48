package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/monoapp/internal/domain/user"
	"github.com/geocoder89/monoapp/internal/shared"
	"github.com/gin-gonic/gin"
)

type UsersReader interface {
	FindAll(ctx context.Context) ([]user.User, error)
	FindOne(ctx context.Context, id string) (user.User, bool, error)
	Page(ctx context.Context, params shared.PaginationParams) (shared.PaginatedResponse[user.User], error)
}

type UsersHandler struct {
	svc UsersReader
	// strictNotFound turns an unknown id into a 404 instead of a 200 with a null body.
	strictNotFound bool
}

func NewUsersHandler(svc UsersReader, strictNotFound bool) *UsersHandler {
	return &UsersHandler{svc: svc, strictNotFound: strictNotFound}
}

// ListUsers returns the plain array, or a paginated envelope when page or limit is given.
//
// GET /api/users
func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	_, hasPage := ctx.GetQuery("page")
	_, hasLimit := ctx.GetQuery("limit")

	if hasPage || hasLimit {
		var params shared.PaginationParams
		if !BindQuery(ctx, &params) {
			return
		}

		page, err := h.svc.Page(ctx.Request.Context(), params)
		if err != nil {
			slog.Default().ErrorContext(ctx.Request.Context(), "list users page failed", "err", err)
			RespondInternal(ctx)
			return
		}

		RespondJSONWithETag(ctx, http.StatusOK, page)
		return
	}

	users, err := h.svc.FindAll(ctx.Request.Context())
	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "list users failed", "err", err)
		RespondInternal(ctx)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, users)
}

// GetUserByID passes the id through unvalidated. Unknown ids answer 200 with a
// JSON null body unless strict mode is on.
//
// GET /api/users/:id
func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id := ctx.Param("id")

	u, ok, err := h.svc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		slog.Default().ErrorContext(ctx.Request.Context(), "find user failed", "id", id, "err", err)
		RespondInternal(ctx)
		return
	}

	if !ok {
		if h.strictNotFound {
			RespondNotFound(ctx)
			return
		}
		ctx.JSON(http.StatusOK, nil)
		return
	}

	ctx.JSON(http.StatusOK, u)
}
