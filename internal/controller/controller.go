// internal/controller/controller.go
package controller

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/motoman-stateserver/internal/config"
	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
	"github.com/tamzrod/motoman-stateserver/internal/status"
)

// ErrNoStatus is returned until the first successful status read.
var ErrNoStatus = errors.New("controller: no status read yet")

// Controller is the shared controller context: hardware variant,
// interpolation period, control groups and the latest status snapshot.
// It is built once in main and handed to the state server.
type Controller struct {
	variant status.Variant
	period  time.Duration
	groups  []Group

	latest atomic.Pointer[status.Snapshot]
}

// New builds a controller context.
func New(variant status.Variant, period time.Duration, groups []Group) (*Controller, error) {
	if period <= 0 {
		return nil, errors.New("controller: interpolation period must be > 0")
	}
	if len(groups) > variant.MaxGroups {
		return nil, fmt.Errorf("controller: %d groups exceed the %s limit of %d", len(groups), variant.Name, variant.MaxGroups)
	}
	return &Controller{
		variant: variant,
		period:  period,
		groups:  groups,
	}, nil
}

// FromConfig builds a controller whose groups read feedback over src.
// cfg must already be validated and normalized.
func FromConfig(cfg config.ControllerConfig, src RegisterReader, clock clockwork.Clock) (*Controller, error) {
	variant, err := status.LookupVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(cfg.Groups))
	for _, g := range cfg.Groups {
		groups = append(groups, NewRegisterGroup(g.No, g.Axes, g.FeedbackBase, src, clock))
	}

	return New(variant, time.Duration(cfg.InterpolationPeriodMs)*time.Millisecond, groups)
}

func (c *Controller) Variant() status.Variant { return c.variant }

func (c *Controller) NumGroups() int { return len(c.groups) }

// InterpolationPeriod is the motion clock period.
func (c *Controller) InterpolationPeriod() time.Duration { return c.period }

// StatusEvery is the number of motion cycles between status broadcasts,
// floor(100ms / period), never less than 1.
func (c *Controller) StatusEvery() int {
	n := int((100 * time.Millisecond) / c.period)
	if n < 1 {
		return 1
	}
	return n
}

// ---- feedback ----

// BuildFeedback reads the current feedback of group idx (0-based).
func (c *Controller) BuildFeedback(idx int) (simplemsg.JointFeedback, error) {
	if idx < 0 || idx >= len(c.groups) {
		return simplemsg.JointFeedback{}, fmt.Errorf("controller: group index %d out of range", idx)
	}
	return c.groups[idx].Feedback()
}

// ---- status ----

// UpdateStatus replaces the latest snapshot.
func (c *Controller) UpdateStatus(s status.Snapshot) {
	c.latest.Store(&s)
}

// Snapshot returns the latest snapshot; ok is false before the first update.
func (c *Controller) Snapshot() (status.Snapshot, bool) {
	p := c.latest.Load()
	if p == nil {
		return status.Snapshot{}, false
	}
	return *p, true
}

// StatusToMsg encodes the latest snapshot as a robot status packet.
func (c *Controller) StatusToMsg() ([]byte, error) {
	s, ok := c.Snapshot()
	if !ok {
		return nil, ErrNoStatus
	}
	return simplemsg.EncodeRobotStatus(status.Encode(s)), nil
}
