// internal/writer/status_writer.go
package writer

import "sync"

// EdgeSignal drives one feedback output, writing only when the value changes.
// A failed write leaves the remembered value untouched so the next call retries.
type EdgeSignal struct {
	mu   sync.Mutex
	w    SignalWriter
	sig  Signal
	last bool
}

// NewEdgeSignal starts from false, the controller power-on state of every output.
func NewEdgeSignal(w SignalWriter, sig Signal) *EdgeSignal {
	return &EdgeSignal{w: w, sig: sig}
}

// Set writes on if it differs from the last written value.
// It reports whether a write was attempted.
func (e *EdgeSignal) Set(on bool) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if on == e.last {
		return false, nil
	}
	if err := e.w.SetIOState(e.sig, on); err != nil {
		return true, err
	}
	e.last = on
	return true, nil
}

// Force writes on unconditionally and records it as the last value.
func (e *EdgeSignal) Force(on bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.w.SetIOState(e.sig, on); err != nil {
		return err
	}
	e.last = on
	return nil
}

// Last returns the last successfully written value.
func (e *EdgeSignal) Last() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
