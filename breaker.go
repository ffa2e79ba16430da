package beanstalk

import (
	"time"

	"github.com/pior/beanstalk/protocol"
	"github.com/sony/gobreaker/v2"
)

// NewCircuitBreakerConfig returns a function suitable for
// Config.NewCircuitBreaker. This is a helper for common use cases.
//
// The breaker trips once at least 3 requests have been observed in an
// interval and 60% of them failed. While open, operations fail fast with
// gobreaker.ErrOpenState without touching the socket. Server-recognized
// failure statuses such as NOT_FOUND are command outcomes, not transport
// failures, and never count against the breaker.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[*protocol.Response] {
	return func(addr string) *gobreaker.CircuitBreaker[*protocol.Response] {
		settings := gobreaker.Settings{
			Name:        addr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[*protocol.Response](settings)
	}
}
