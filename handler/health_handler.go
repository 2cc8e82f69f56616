package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by the note stores and the Redis session cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks      map[string]Pinger
	timeout     time.Duration
	cpuInterval time.Duration
	log         zerolog.Logger
}

func NewHealthHandler(checks map[string]Pinger, timeout time.Duration, log zerolog.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checks: checks, timeout: timeout, cpuInterval: 100 * time.Millisecond, log: log}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
}

// Health pings every dependency and samples CPU usage. Any failed ping turns
// the answer into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	healthy := true
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			deps[name] = "down"
			healthy = false
			continue
		}
		deps[name] = "up"
	}

	status := gin.H{"dependencies": deps}
	if cpuUsage, err := utils.GetCPUUsage(ctx, h.cpuInterval); err == nil {
		status["cpuUsage"] = cpuUsage
	}

	if !healthy {
		status["status"] = "degraded"
		utils.ServiceUnavailable(c, status)
		return
	}
	status["status"] = "ok"
	utils.Success(c, status)
}
