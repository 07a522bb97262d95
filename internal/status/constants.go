// internal/status/constants.go
package status

// Controller status constants.
// These values define the protocol and MUST NOT be configurable.

// ---- ALARM STATUS MASK ----

// MaskActiveError is set in the alarm status word while an error is active.
const MaskActiveError uint16 = 0x01

// MaskActiveAlarm is set in the alarm status word while an alarm is active.
const MaskActiveAlarm uint16 = 0x02

// ---- NOT-READY SUBCODES ----

// Subcode explains why the controller cannot accept motion.
// Zero means ready. Values are diagnostic only.
type Subcode int32

const (
	Ready               Subcode = 0
	NotReadyUnspecified Subcode = 5000
	NotReadyAlarm       Subcode = 5001
	NotReadyError       Subcode = 5002
	NotReadyEStop       Subcode = 5003
	NotReadyNotPlay     Subcode = 5004
	NotReadyNotRemote   Subcode = 5005
	NotReadyServoOff    Subcode = 5006
	NotReadyHold        Subcode = 5007
	NotReadyNotStarted  Subcode = 5008
	NotReadyWaitingExt  Subcode = 5009
	NotReadyPflActive   Subcode = 5011
	NotReadyInvalidAxis Subcode = 5012
)

func (c Subcode) String() string {
	switch c {
	case Ready:
		return "ready"
	case NotReadyAlarm:
		return "alarm"
	case NotReadyError:
		return "error"
	case NotReadyEStop:
		return "e-stop"
	case NotReadyNotPlay:
		return "not-play"
	case NotReadyNotRemote:
		return "not-remote"
	case NotReadyServoOff:
		return "servo-off"
	case NotReadyHold:
		return "hold"
	case NotReadyNotStarted:
		return "not-started"
	case NotReadyWaitingExt:
		return "waiting-external"
	case NotReadyPflActive:
		return "pfl-active"
	case NotReadyInvalidAxis:
		return "invalid-axis"
	default:
		return "unspecified"
	}
}
