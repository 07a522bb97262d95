// internal/writer/builder.go
package writer

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	cfg "github.com/tamzrod/motoman-stateserver/internal/config"
	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

const breakerName = "io_feedback"

// Build wires the feedback output writer over an already-connected I/O link.
// The link is shared and owned by the caller.
func Build(c cfg.IOConfig, cli coilClient) SignalWriter {
	return New(cli, c.FeedbackCoilBase, NewBreaker(time.Duration(c.TimeoutMs)*time.Millisecond))
}

// NewBreaker trips after 3 consecutive failures and probes again after
// openFor (at least one second).
func NewBreaker(openFor time.Duration) *gobreaker.CircuitBreaker {
	if openFor < time.Second {
		openFor = time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			slog.Warn("io link breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}
