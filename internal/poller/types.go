// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/motoman-stateserver/internal/status"
)

// StatusGeometry describes where the controller status lives on the I/O link.
// Geometry only: classification happens in package status.
type StatusGeometry struct {
	// StatusBase is the discrete input of the first status kind.
	StatusBase uint16

	// AlarmBase is the first of AlarmRegisters holding registers.
	AlarmBase uint16
}

// Alarm register block layout, relative to AlarmBase.
const (
	AlarmRegStatus     = 0
	AlarmRegCodeHi     = 1
	AlarmRegCodeLo     = 2
	AlarmRegAxisConfig = 3

	AlarmRegisters = 4
)

// PollResult is produced by one poll cycle.
type PollResult struct {
	At time.Time

	// Snapshot is valid only when Err is nil.
	Snapshot status.Snapshot

	Err error // non-nil means the poll cycle failed
}
