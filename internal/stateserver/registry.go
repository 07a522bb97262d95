// internal/stateserver/registry.go
package stateserver

import (
	"io"
	"net"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

// MaxConnections is the fixed size of the slot table.
const MaxConnections = 4

// Conn is an admitted client stream. net.Conn satisfies it.
type Conn interface {
	io.Writer
	io.Closer
}

// Occupant is a copy of one occupied slot, taken under the registry lock.
type Occupant struct {
	Slot int
	ID   uuid.UUID
	Conn Conn
}

// Registry is the fixed-capacity table of connected observers.
// It is the sole owner of slot state. Slots are never compacted.
type Registry struct {
	mu       sync.Mutex
	slots    [MaxConnections]*Occupant
	capacity int
}

// NewRegistry builds a registry using the first capacity slots (1..MaxConnections).
func NewRegistry(capacity int) *Registry {
	if capacity < 1 || capacity > MaxConnections {
		capacity = MaxConnections
	}
	r := &Registry{capacity: capacity}
	for i := 0; i < capacity; i++ {
		metrics.SlotOccupied.WithLabelValues(strconv.Itoa(i)).Set(0)
	}
	metrics.ConnectedClients.Set(0)
	return r
}

// Capacity is the number of usable slots.
func (r *Registry) Capacity() int { return r.capacity }

// Admit places conn in the lowest-index empty slot.
// ok is false when every slot is occupied; the caller owns conn then.
func (r *Registry) Admit(conn Conn) (slot int, ok bool) {
	occ, ok := r.admit(conn)
	if !ok {
		return -1, false
	}
	return occ.Slot, true
}

func (r *Registry) admit(conn Conn) (Occupant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.capacity; i++ {
		if r.slots[i] != nil {
			continue
		}
		occ := &Occupant{Slot: i, ID: uuid.New(), Conn: conn}
		r.slots[i] = occ
		r.publishLocked(i)
		return *occ, true
	}
	return Occupant{}, false
}

// Evict closes conn and empties slot, but only while slot still holds conn.
// It reports whether this call released the slot.
func (r *Registry) Evict(slot int, conn Conn) bool {
	r.mu.Lock()
	if slot < 0 || slot >= r.capacity || r.slots[slot] == nil || r.slots[slot].Conn != conn {
		r.mu.Unlock()
		return false
	}
	r.slots[slot] = nil
	r.publishLocked(slot)
	r.mu.Unlock()

	_ = conn.Close()
	return true
}

// ForEachOccupied calls fn for every slot occupied at the time of the call,
// in slot order. fn runs outside the lock and may call Evict.
func (r *Registry) ForEachOccupied(fn func(Occupant)) {
	for _, occ := range r.Occupied() {
		fn(occ)
	}
}

// Occupied returns a copy of the occupied slots, in slot order.
func (r *Registry) Occupied() []Occupant {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Occupant, 0, r.capacity)
	for i := 0; i < r.capacity; i++ {
		if r.slots[i] != nil {
			out = append(out, *r.slots[i])
		}
	}
	return out
}

// Count returns the number of occupied slots.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked()
}

// CloseAll evicts every occupant.
func (r *Registry) CloseAll() {
	for _, occ := range r.Occupied() {
		r.Evict(occ.Slot, occ.Conn)
	}
}

func (r *Registry) countLocked() int {
	n := 0
	for i := 0; i < r.capacity; i++ {
		if r.slots[i] != nil {
			n++
		}
	}
	return n
}

func (r *Registry) publishLocked(slot int) {
	v := 0.0
	if r.slots[slot] != nil {
		v = 1
	}
	metrics.SlotOccupied.WithLabelValues(strconv.Itoa(slot)).Set(v)
	metrics.ConnectedClients.Set(float64(r.countLocked()))
}

func remoteAddr(c Conn) string {
	if rc, ok := c.(interface{ RemoteAddr() net.Addr }); ok && rc.RemoteAddr() != nil {
		return rc.RemoteAddr().String()
	}
	return "unknown"
}
