package beanstalk

import (
	"net"
	"time"

	"github.com/pior/beanstalk/protocol"
	"github.com/sony/gobreaker/v2"
)

// Default connection parameters.
const (
	// DefaultAddr is the address used when Dial receives an empty one.
	DefaultAddr = "localhost:11300"

	// DefaultTimeout bounds the connect and every I/O readiness wait when
	// Config.Timeout is zero. This is an explicit value rather than a
	// platform default.
	DefaultTimeout = 2 * time.Second
)

// Default job parameters, matching the server's conventions.
const (
	// DefaultPriority is the midpoint of the priority range. Lower values
	// are more urgent.
	DefaultPriority uint32 = 1 << 31

	// DefaultTTR is the default time-to-run granted to a reservation.
	DefaultTTR = 120 * time.Second
)

// Config holds construction-time configuration for a connection.
// The zero value is ready to use.
type Config struct {
	// Timeout bounds the connect and each subsequent I/O wait.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// KeepAlive enables TCP keepalive probes on the connection.
	KeepAlive bool

	// Dialer is used to open the TCP connection. If nil, a net.Dialer
	// bounded by Timeout is used.
	Dialer *net.Dialer

	// NewCircuitBreaker creates a circuit breaker for the connection,
	// called once by Dial with the server address. The breaker wraps each
	// request/response round trip and fails fast while open; it never
	// retries. If nil, no circuit breaker is used.
	NewCircuitBreaker func(addr string) *gobreaker.CircuitBreaker[*protocol.Response]
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
