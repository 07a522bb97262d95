// internal/controller/group.go
package controller

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/motoman-stateserver/internal/iolink"
	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
)

// Group is one control group as seen by the broadcast loop.
type Group interface {
	No() int
	Axes() int
	Feedback() (simplemsg.JointFeedback, error)
}

// RegisterReader is the I/O link surface a group needs.
type RegisterReader interface {
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)
}

// registerGroup reads joint feedback from input registers.
// Layout from base: Axes positions, then Axes velocities, float32 pairs.
type registerGroup struct {
	no    int
	axes  int
	base  uint16
	src   RegisterReader
	clock clockwork.Clock
	start time.Time
}

// NewRegisterGroup builds a group backed by the I/O link.
// Feedback time is reported in seconds since the group was created.
func NewRegisterGroup(no, axes int, base uint16, src RegisterReader, clock clockwork.Clock) Group {
	return &registerGroup{
		no:    no,
		axes:  axes,
		base:  base,
		src:   src,
		clock: clock,
		start: clock.Now(),
	}
}

func (g *registerGroup) No() int   { return g.no }
func (g *registerGroup) Axes() int { return g.axes }

func (g *registerGroup) Feedback() (simplemsg.JointFeedback, error) {
	fb := simplemsg.JointFeedback{GroupNo: int32(g.no)}

	if g.axes < 1 || g.axes > simplemsg.MaxJoints {
		return fb, fmt.Errorf("controller: group %d: invalid axis count %d", g.no, g.axes)
	}

	qty := uint16(g.axes * 4)
	regs, err := g.src.ReadInputRegisters(g.base, qty)
	if err != nil {
		return fb, fmt.Errorf("controller: group %d feedback read: %w", g.no, err)
	}
	if len(regs) < int(qty) {
		return fb, fmt.Errorf("controller: group %d feedback read: got %d registers want %d", g.no, len(regs), qty)
	}

	values := iolink.Float32s(regs)
	copy(fb.Pos[:g.axes], values[:g.axes])
	copy(fb.Vel[:g.axes], values[g.axes:2*g.axes])

	fb.Time = float32(g.clock.Since(g.start).Seconds())
	fb.ValidFields = simplemsg.ValidTime | simplemsg.ValidPosition | simplemsg.ValidVelocity
	return fb, nil
}
