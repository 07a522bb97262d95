// internal/status/snapshot.go
package status

// Snapshot is one classified read of the controller status signals.
// It stores raw facts only; every predicate is derived in classify.go.
type Snapshot struct {
	Bits [KindCount]bool

	// AlarmStatus is the raw alarm status word (MaskActiveAlarm / MaskActiveError).
	AlarmStatus uint16

	// AlarmCode is the active alarm number, 0 when none.
	AlarmCode int32

	// AxisConfigInvalid is set when a control group has an unsupported axis type.
	AxisConfigInvalid bool
}

// Get returns the raw value of one status kind.
func (s Snapshot) Get(k Kind) bool {
	if k < 0 || k >= KindCount {
		return false
	}
	return s.Bits[k]
}

// FromBits builds a snapshot from a status input block in Kind order.
// Only the first v.Kinds() bits are used.
func FromBits(v Variant, bits []bool, alarmStatus uint16, alarmCode int32) Snapshot {
	var s Snapshot
	n := v.Kinds()
	for i := 0; i < n && i < len(bits); i++ {
		s.Bits[i] = bits[i]
	}
	s.AlarmStatus = alarmStatus
	s.AlarmCode = alarmCode
	return s
}
