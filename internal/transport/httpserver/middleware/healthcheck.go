// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
)

// ReadinessCheck reports whether a backing dependency is usable.
type ReadinessCheck func() error

// NewHealthCheck serves the Kubernetes-style probes:
//
//   - GET /livez  - the process is running
//   - GET /readyz - every readiness check passes (storage, redis)
//
// Register it before other middleware so probes stay cheap under load.
func NewHealthCheck(checks ...ReadinessCheck) fiber.Handler {
	return healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/livez",
		LivenessProbe: func(_ *fiber.Ctx) bool {
			return true
		},

		ReadinessEndpoint: "/readyz",
		ReadinessProbe: func(_ *fiber.Ctx) bool {
			for _, check := range checks {
				if check() != nil {
					return false
				}
			}
			return true
		},
	})
}
