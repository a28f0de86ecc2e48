package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	view     *View
	renderer *renderer
	log      *slog.Logger
}

func (h *Handler) page(ctx *gin.Context, status int, name string, data pageData) {
	body, err := h.renderer.render(name, data)
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "render page failed", "page", name, "err", err)
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}

	ctx.Header("Content-Security-Policy", pageCSP)
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(status, "text/html; charset=utf-8", body)
}

// GET /
func (h *Handler) Home(ctx *gin.Context) {
	h.view.Mount(ctx.Request.Context())

	state := h.view.Snapshot()

	h.page(ctx, http.StatusOK, "home", pageData{
		Title:       "AWS App Frontend",
		AutoReload:  state.Loading,
		State:       state,
		Unavailable: MsgBackendUnavailable,
	})
}

// POST /refresh
func (h *Handler) Refresh(ctx *gin.Context) {
	if _, err := h.view.Refresh(ctx.Request.Context()); err != nil {
		if errors.Is(err, ErrRefreshInFlight) {
			state := h.view.Snapshot()
			h.page(ctx, http.StatusConflict, "home", pageData{
				Title:       "AWS App Frontend",
				AutoReload:  true,
				State:       state,
				Unavailable: MsgBackendUnavailable,
			})
			return
		}
		ctx.String(http.StatusInternalServerError, "internal server error")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

// GET /about
func (h *Handler) About(ctx *gin.Context) {
	h.page(ctx, http.StatusOK, "about", pageData{
		Title: "About",
		Stack: aboutStack,
	})
}

// GET /status.json
func (h *Handler) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.view.Snapshot())
}

// newAPIProxy forwards /api traffic to the backend origin unchanged.
func newAPIProxy(origin *url.URL, log *slog.Logger) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(origin)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = origin.Host
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "api proxy failed", "path", r.URL.Path, "err", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"code":"bad_gateway","message":"backend unavailable"}}`))
	}

	return proxy
}
