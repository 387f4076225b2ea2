package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the health of one infrastructure component.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

type namedChecker struct {
	name string
	fn   func(ctx context.Context) error
}

func (c namedChecker) Name() string                          { return c.name }
func (c namedChecker) HealthCheck(ctx context.Context) error { return c.fn(ctx) }

// NamedChecker adapts a bare health check function into a HealthChecker.
func NamedChecker(name string, fn func(ctx context.Context) error) HealthChecker {
	return namedChecker{name: name, fn: fn}
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version  string
	startAt  time.Time
	checkers []HealthChecker
}

// NewHealthHandler wires the probes over the given component checkers.
// Liveness ignores the checkers; readiness fails when any checker fails.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		version:  version,
		startAt:  time.Now(),
		checkers: checkers,
	}
}

// ComponentStatus is one component's entry in the readiness response.
type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz.  It confirms the process is serving and
// never consults external dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startAt).Round(time.Second).String(),
	})
}

// Readiness handles GET /readyz.  Any failing component yields 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]ComponentStatus, len(h.checkers))
	ready := true
	for _, checker := range h.checkers {
		start := time.Now()
		err := checker.HealthCheck(ctx)
		entry := ComponentStatus{
			Status:  "ok",
			Latency: time.Since(start).Round(time.Millisecond).String(),
		}
		if err != nil {
			ready = false
			entry.Status = "failed"
			entry.Error = err.Error()
		}
		components[checker.Name()] = entry
	}

	status := http.StatusOK
	overall := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}
	c.JSON(status, gin.H{
		"status":     overall,
		"components": components,
	})
}
