package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthHandler struct {
	environment string
	startedAt   time.Time
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		startedAt:   time.Now(),
	}
}

type healthResponse struct {
	Status      string  `json:"status"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:      "ok",
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.environment,
	})
}
