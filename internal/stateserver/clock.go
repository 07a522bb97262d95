// internal/stateserver/clock.go
package stateserver

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// MotionClock delivers one tick per interpolation cycle.
type MotionClock interface {
	Subscribe() (clockwork.Ticker, error)
}

// TickerClock is a motion clock driven by a ticker at the interpolation period.
type TickerClock struct {
	clock  clockwork.Clock
	period time.Duration
}

func NewTickerClock(clock clockwork.Clock, period time.Duration) *TickerClock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TickerClock{clock: clock, period: period}
}

func (t *TickerClock) Subscribe() (clockwork.Ticker, error) {
	if t.period <= 0 {
		return nil, errors.New("stateserver: motion clock period must be > 0")
	}
	return t.clock.NewTicker(t.period), nil
}
