// internal/stateserver/helpers_test.go
package stateserver

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
)

// ---- fake connection ----

type fakeConn struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	fail   bool
	closed bool
	writes int
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail || c.closed {
		return 0, errors.New("broken pipe")
	}
	c.writes++
	return c.buf.Write(p)
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

// ---- fake controller source ----

type fakeSource struct {
	groups    int
	failGroup map[int]bool
	statusErr error
	every     int
}

func (s *fakeSource) NumGroups() int { return s.groups }

func (s *fakeSource) BuildFeedback(idx int) (simplemsg.JointFeedback, error) {
	if s.failGroup[idx] {
		return simplemsg.JointFeedback{}, errors.New("feedback unavailable")
	}
	return simplemsg.JointFeedback{GroupNo: int32(idx)}, nil
}

func (s *fakeSource) StatusToMsg() ([]byte, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return simplemsg.EncodeRobotStatus(simplemsg.RobotStatus{}), nil
}

func (s *fakeSource) StatusEvery() int { return s.every }

// ---- recording broadcaster ----

type recordingOut struct {
	types  []int32
	result bool
}

func (o *recordingOut) Broadcast(msg []byte) bool {
	h, _, err := simplemsg.ReadPacket(bytes.NewReader(msg))
	if err == nil {
		o.types = append(o.types, h.MsgType)
	}
	return o.result
}

func (o *recordingOut) count(msgType int32) int {
	n := 0
	for _, t := range o.types {
		if t == msgType {
			n++
		}
	}
	return n
}

// ---- motion clocks ----

type failingClock struct{ calls int }

func (c *failingClock) Subscribe() (clockwork.Ticker, error) {
	c.calls++
	return nil, errors.New("interpolation clock unavailable")
}

func fakeMotionClock(period time.Duration) (*TickerClock, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClock()
	return NewTickerClock(fc, period), fc
}
