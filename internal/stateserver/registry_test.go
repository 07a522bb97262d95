// internal/stateserver/registry_test.go
package stateserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AdmitLowestFreeSlot(t *testing.T) {
	reg := NewRegistry(MaxConnections)

	conns := make([]*fakeConn, MaxConnections)
	for i := range conns {
		conns[i] = &fakeConn{}
		slot, ok := reg.Admit(conns[i])
		require.True(t, ok)
		assert.Equal(t, i, slot)
	}

	extra := &fakeConn{}
	slot, ok := reg.Admit(extra)
	assert.False(t, ok)
	assert.Equal(t, -1, slot)
	assert.Equal(t, MaxConnections, reg.Count())

	for _, c := range conns {
		assert.False(t, c.isClosed(), "existing clients untouched")
	}
}

func TestRegistry_EvictReusesSlot(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	reg.Admit(a)
	reg.Admit(b)
	reg.Admit(c)

	require.True(t, reg.Evict(1, b))
	assert.True(t, b.isClosed())

	// no compaction
	occ := reg.Occupied()
	require.Len(t, occ, 2)
	assert.Equal(t, 0, occ[0].Slot)
	assert.Equal(t, 2, occ[1].Slot)

	d := &fakeConn{}
	slot, ok := reg.Admit(d)
	require.True(t, ok)
	assert.Equal(t, 1, slot)
}

func TestRegistry_EvictIsIdentityChecked(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	old := &fakeConn{}
	reg.Admit(old)
	require.True(t, reg.Evict(0, old))

	fresh := &fakeConn{}
	reg.Admit(fresh)

	// a late eviction for the old occupant must not touch the new one
	assert.False(t, reg.Evict(0, old))
	assert.False(t, fresh.isClosed())
	assert.Equal(t, 1, reg.Count())

	assert.False(t, reg.Evict(7, fresh))
}

func TestRegistry_CapacityBelowMax(t *testing.T) {
	reg := NewRegistry(2)
	_, ok := reg.Admit(&fakeConn{})
	require.True(t, ok)
	_, ok = reg.Admit(&fakeConn{})
	require.True(t, ok)
	_, ok = reg.Admit(&fakeConn{})
	assert.False(t, ok)

	assert.Equal(t, MaxConnections, NewRegistry(9).Capacity())
}

func TestRegistry_SessionIDsDistinct(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	reg.Admit(&fakeConn{})
	reg.Admit(&fakeConn{})

	occ := reg.Occupied()
	require.Len(t, occ, 2)
	assert.NotEqual(t, occ[0].ID, occ[1].ID)
}

func TestRegistry_CloseAll(t *testing.T) {
	reg := NewRegistry(MaxConnections)
	a, b := &fakeConn{}, &fakeConn{}
	reg.Admit(a)
	reg.Admit(b)

	reg.CloseAll()
	assert.Zero(t, reg.Count())
	assert.True(t, a.isClosed())
	assert.True(t, b.isClosed())
}
