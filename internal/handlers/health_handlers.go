package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/caching"
)

// JobStatusReporter reports the scheduled background jobs.
type JobStatusReporter interface {
	JobStatus() map[string]interface{}
}

// HealthHandlers handles liveness and readiness probes.
type HealthHandlers struct {
	db        *pgxpool.Pool
	cacheSvc  caching.CacheService
	scheduler JobStatusReporter
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, scheduler JobStatusReporter) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cacheSvc:  cacheSvc,
		scheduler: scheduler,
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports per-dependency health. Degraded dependencies do
// not fail the endpoint; the body says which ones are down.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string),
		Goroutines: runtime.NumGoroutine(),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck fails when a critical dependency is unavailable.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck is the basic liveness probe.
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// JobsStatus lists the registered background jobs.
func (h *HealthHandlers) JobsStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.JobStatus())
}
