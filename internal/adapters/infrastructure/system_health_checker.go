package infrastructure

import (
	"context"

	"catalogapi.app/internal/ports"
)

// SystemHealthChecker aggregates the health of every registered component
type SystemHealthChecker struct {
	checkers []ports.HealthChecker
}

// NewSystemHealthChecker creates a system health checker; nil checkers are skipped
func NewSystemHealthChecker(checkers ...ports.HealthChecker) *SystemHealthChecker {
	s := &SystemHealthChecker{}
	for _, c := range checkers {
		if c != nil {
			s.checkers = append(s.checkers, c)
		}
	}
	return s
}

// CheckAll performs health checks on all components, keyed by component name
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for _, c := range s.checkers {
		status := c.Check(ctx)
		results[status.Component] = status
	}
	return results
}

// Healthy reports whether no component is unhealthy. Degraded components
// do not fail the check.
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status == "unhealthy" {
			return false
		}
	}
	return true
}
