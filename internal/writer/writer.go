// internal/writer/writer.go
package writer

import (
	"fmt"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

// SignalWriter sets one digital feedback output.
type SignalWriter interface {
	SetIOState(sig Signal, on bool) error
}

// coilClient is the exact contract the writer uses.
type coilClient interface {
	WriteCoil(addr uint16, on bool) error
}

// coilWriter writes feedback outputs as coils on the I/O link.
// Writes go through a circuit breaker so a dead link fails fast
// instead of stalling the caller for a full transport timeout.
type coilWriter struct {
	cli     coilClient
	base    uint16
	breaker *gobreaker.CircuitBreaker
}

// New builds a coil-backed signal writer.
func New(cli coilClient, base uint16, breaker *gobreaker.CircuitBreaker) SignalWriter {
	return &coilWriter{
		cli:     cli,
		base:    base,
		breaker: breaker,
	}
}

func (w *coilWriter) SetIOState(sig Signal, on bool) error {
	off, err := sig.CoilOffset()
	if err != nil {
		return err
	}
	addr := w.base + off

	_, err = w.breaker.Execute(func() (interface{}, error) {
		return nil, w.cli.WriteCoil(addr, on)
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.IOFeedbackWritesTotal.WithLabelValues(sig.String(), result).Inc()

	if err != nil {
		return fmt.Errorf("writer: %s (coil %d) = %t: %w", sig, addr, on, err)
	}
	return nil
}

// ---- recorder ----

// Recorder is an in-memory SignalWriter that keeps every write.
type Recorder struct {
	mu    sync.Mutex
	state map[Signal]bool
	log   []Write
}

// Write is one recorded output write.
type Write struct {
	Signal Signal
	On     bool
}

func NewRecorder() *Recorder {
	return &Recorder{state: make(map[Signal]bool)}
}

func (r *Recorder) SetIOState(sig Signal, on bool) error {
	if !sig.Valid() {
		return fmt.Errorf("writer: unknown feedback signal %d", int(sig))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[sig] = on
	r.log = append(r.log, Write{Signal: sig, On: on})
	return nil
}

// State returns the last value written to sig.
func (r *Recorder) State(sig Signal) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state[sig]
}

// Writes returns a copy of every write so far, in order.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.log))
	copy(out, r.log)
	return out
}
