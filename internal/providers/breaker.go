package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightmcp/internal/metrics"
	"github.com/dharmasatrya/flightmcp/internal/models"
)

type BreakerConfig struct {
	Window       time.Duration
	Cooldown     time.Duration
	FailureRatio float64
	MinRequests  uint32
	// HalfOpenProbes is how many calls may pass while half-open.
	HalfOpenProbes uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Window:         10 * time.Second,
		Cooldown:       30 * time.Second,
		FailureRatio:   0.5,
		MinRequests:    10,
		HalfOpenProbes: 1,
	}
}

func newBreaker(name string, cfg BreakerConfig, rec metrics.Recorder, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenProbes,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			rec.SetBreakerState(name, int(to))
		},
		IsSuccessful: countsAsSuccess,
	})
}

// countsAsSuccess treats caller cancellation and 4xx responses other than
// 429 as successes for the failure ratio.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var pErr *models.ProviderError
	if errors.As(err, &pErr) {
		return pErr.Status >= 400 && pErr.Status < 500 && pErr.Status != http.StatusTooManyRequests
	}
	return false
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
