package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePaths are hit every few seconds by load balancers and kubelets.
// Their successes are logged once, then suppressed until something fails.
var probePaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// probeLogState tracks which probe paths have already logged a success.
type probeLogState struct {
	mu      sync.Mutex
	healthy map[string]bool
}

// shouldLog reports whether this probe result warrants a log line. Failures
// always log and reset the path so the next success logs the recovery.
func (s *probeLogState) shouldLog(path string, ok bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		s.healthy[path] = false
		return true
	}
	if s.healthy[path] {
		return false
	}
	s.healthy[path] = true
	return true
}

// RequestLog returns Echo middleware that logs one structured line per
// request. Incoming request IDs are honored; otherwise a fresh UUID is
// generated and echoed back in the response header. Probe endpoints log
// successes once and failures always, at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probes := &probeLogState{healthy: make(map[string]bool)}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			attrs := []any{
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote", c.RealIP(),
				"request_id", reqID,
			}

			if probePaths[path] {
				ok := status < 400
				if !probes.shouldLog(path, ok) {
					return err
				}
				if ok {
					log.Info("request", attrs...)
				} else {
					log.Warn("request", attrs...)
				}
				return err
			}

			log.Info("request", attrs...)

			return err
		}
	}
}
