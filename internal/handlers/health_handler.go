package handlers

import (
	"net/http"

	"github.com/GeorgiM13/professional-house-manager-sub000/internal/health"
	"github.com/GeorgiM13/professional-house-manager-sub000/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth is the liveness probe.
// GET /health
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth reports whether the service can reach its dependencies.
// GET /health/ready
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// DetailedHealth adds host resource usage to the readiness view.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()
	stats := h.checker.CollectSystemStats()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, map[string]interface{}{
		"status":   status.Status,
		"database": status.Database,
		"cache":    status.Cache,
		"system":   stats,
	})
}
