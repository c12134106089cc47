// Package provider provides HTTP client utilities for upstream catalog feeds.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// HealthPath is the liveness endpoint every feed exposes.
const HealthPath = "/health"

// ClientConfig holds configuration for a feed client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// NewRestyClient creates a new Resty HTTP client with retry configuration.
func NewRestyClient(cfg ClientConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	return client
}

// NewCircuitBreaker creates a circuit breaker for a feed. State changes are logged.
func NewCircuitBreaker[T any](name string, cfg CBConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(feed string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("feed circuit breaker state changed",
				zap.String("feed", feed),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

// Get performs a GET through the circuit breaker and returns the raw response.
// Non-2xx responses count as breaker failures.
func Get(
	ctx context.Context,
	feed string,
	client *resty.Client,
	cb *gobreaker.CircuitBreaker[*resty.Response],
	path string,
	prepare func(*resty.Request),
) (*resty.Response, error) {
	return cb.Execute(func() (*resty.Response, error) {
		req := client.R().SetContext(ctx)
		if prepare != nil {
			prepare(req)
		}

		r, err := req.Get(path)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("%s returned status %d", feed, r.StatusCode())
		}

		return r, nil
	})
}

// HealthCheck verifies a feed's health endpoint answers with 2xx.
func HealthCheck(ctx context.Context, client *resty.Client) error {
	resp, err := client.R().
		SetContext(ctx).
		Get(HealthPath)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
