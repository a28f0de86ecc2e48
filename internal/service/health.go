package service

import (
	"time"

	"github.com/geocoder89/monoapp/internal/shared"
)

const (
	HealthMessage  = "Backend API is healthy! 🚀"
	WelcomeMessage = "Welcome to AWS App Backend API!"
)

var processStart = time.Now()

type HealthService struct {
	startedAt time.Time
	now       func() time.Time
}

// NewHealthService measures uptime from process start.
func NewHealthService() *HealthService {
	return NewHealthServiceWithClock(processStart, time.Now)
}

func NewHealthServiceWithClock(startedAt time.Time, now func() time.Time) *HealthService {
	return &HealthService{startedAt: startedAt, now: now}
}

// GetHealth is built fresh on every call; timestamp and uptime are never cached.
func (s *HealthService) GetHealth() shared.HealthResponse {
	now := s.now()

	uptime := now.Sub(s.startedAt).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	return shared.HealthResponse{
		Message:   HealthMessage,
		Timestamp: shared.FormatTimestamp(now),
		Uptime:    uptime,
	}
}

func (s *HealthService) GetWelcome() shared.WelcomeResponse {
	return shared.WelcomeResponse{Message: WelcomeMessage}
}
