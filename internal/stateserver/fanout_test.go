// internal/stateserver/fanout_test.go
package stateserver

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/motoman-stateserver/internal/logging"
	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

func TestBroadcast_FailureEvictsOnlyThatSlot(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	s := NewSender(reg, 50*time.Millisecond, logging.Discard())

	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		reg.Admit(c)
	}
	conns[1].fail = true
	evictions := testutil.ToFloat64(metrics.EvictionsTotal)

	assert.True(t, s.Broadcast([]byte("hello")))
	assert.Equal(t, evictions+1, testutil.ToFloat64(metrics.EvictionsTotal))

	assert.True(t, conns[1].isClosed())
	assert.False(t, conns[0].isClosed())
	assert.False(t, conns[2].isClosed())
	assert.Equal(t, 2, reg.Count())

	// the others keep receiving
	assert.True(t, s.Broadcast([]byte("again")))
	assert.Equal(t, 2, conns[0].count())
	assert.Equal(t, 2, conns[2].count())

	// and the freed slot is reusable at once
	slot, ok := reg.Admit(&fakeConn{})
	require.True(t, ok)
	assert.Equal(t, 1, slot)
}

func TestBroadcast_NoRecipients(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	s := NewSender(reg, 0, logging.Discard())
	assert.False(t, s.Broadcast([]byte("x")))

	c := &fakeConn{fail: true}
	reg.Admit(c)
	assert.False(t, s.Broadcast([]byte("x")), "all sends failed")
	assert.Zero(t, reg.Count())
}
