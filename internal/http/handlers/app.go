package handlers

import (
	"net/http"

	"github.com/geocoder89/monoapp/internal/shared"
	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	GetHealth() shared.HealthResponse
	GetWelcome() shared.WelcomeResponse
}

// AppHandler serves the API root and its status payload.
type AppHandler struct {
	svc HealthReporter
}

func NewAppHandler(svc HealthReporter) *AppHandler {
	return &AppHandler{svc: svc}
}

// GET /api/health
func (h *AppHandler) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.GetHealth())
}

// GET /api
func (h *AppHandler) GetWelcome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.GetWelcome())
}
