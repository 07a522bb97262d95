// internal/stateserver/fanout.go
package stateserver

import (
	"log/slog"
	"time"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Sender writes one message to every admitted client.
type Sender struct {
	reg     *Registry
	timeout time.Duration
	log     *slog.Logger
}

// NewSender builds a fan-out sender. A zero timeout disables write deadlines.
func NewSender(reg *Registry, timeout time.Duration, log *slog.Logger) *Sender {
	return &Sender{reg: reg, timeout: timeout, log: log}
}

// Broadcast writes msg to each occupied slot, once, in slot order.
// A slot whose write fails, times out or sends nothing is closed and
// released; the pass continues with the remaining slots.
// It reports whether at least one client received msg.
func (s *Sender) Broadcast(msg []byte) bool {
	delivered := false

	s.reg.ForEachOccupied(func(occ Occupant) {
		if s.send(occ.Conn, msg) {
			delivered = true
			return
		}
		if s.reg.Evict(occ.Slot, occ.Conn) {
			metrics.EvictionsTotal.Inc()
			s.log.Info("state client evicted after send failure",
				"slot", occ.Slot,
				"session", occ.ID,
				"remote", remoteAddr(occ.Conn),
			)
		}
	})

	return delivered
}

func (s *Sender) send(c Conn, msg []byte) bool {
	if s.timeout > 0 {
		if d, ok := c.(writeDeadliner); ok {
			if err := d.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
				return false
			}
		}
	}
	n, err := c.Write(msg)
	return err == nil && n > 0
}
