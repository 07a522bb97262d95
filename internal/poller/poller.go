// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/motoman-stateserver/internal/iolink"
	"github.com/tamzrod/motoman-stateserver/internal/status"
)

// Client abstracts the I/O link operations needed by the poller.
type Client interface {
	ReadDiscreteInputs(addr, qty uint16) ([]bool, error)     // FC 2
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Variant  status.Variant
	Interval time.Duration
	Geometry StatusGeometry
}

// Poller is a dumb, clock-driven status reader.
type Poller struct {
	cfg    Config
	client Client
	clock  clockwork.Clock
}

// New creates a poller with immutable config.
func New(cfg Config, client Client, clock clockwork.Clock) (*Poller, error) {
	if cfg.Variant.Name == "" {
		return nil, errors.New("poller: variant required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{cfg: cfg, client: client, clock: clock}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle and no snapshot is produced.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: p.clock.Now()}
	geo := p.cfg.Geometry

	bits, err := p.client.ReadDiscreteInputs(geo.StatusBase, uint16(p.cfg.Variant.Kinds()))
	if err != nil {
		res.Err = fmt.Errorf("poller: status inputs: %w", err)
		return res
	}

	regs, err := p.client.ReadHoldingRegisters(geo.AlarmBase, AlarmRegisters)
	if err != nil {
		res.Err = fmt.Errorf("poller: alarm registers: %w", err)
		return res
	}
	if len(regs) < AlarmRegisters {
		res.Err = fmt.Errorf("poller: alarm registers: got %d want %d", len(regs), AlarmRegisters)
		return res
	}

	// Commit only if all reads succeeded
	snap := status.FromBits(
		p.cfg.Variant,
		bits,
		regs[AlarmRegStatus],
		iolink.Int32(regs[AlarmRegCodeHi], regs[AlarmRegCodeLo]),
	)
	snap.AxisConfigInvalid = regs[AlarmRegAxisConfig] != 0

	res.Snapshot = snap
	return res
}
