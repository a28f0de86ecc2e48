package handlers

import (
	"net/http"

	"github.com/geocoder89/monoapp/internal/shared"
	"github.com/gin-gonic/gin"
)

// APIError extends the shared error shape with the request id for correlation.
type APIError struct {
	shared.APIError
	RequestID string `json:"requestId,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"error": APIError{
			APIError: shared.APIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			RequestID: requestIDFrom(ctx),
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context) {
	RespondError(ctx, http.StatusNotFound, "not_found", shared.MsgNotFound, nil)
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", shared.MsgServerError, nil)
}
