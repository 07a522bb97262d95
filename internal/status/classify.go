// internal/status/classify.go
package status

// IsAlarm reports an alarm: any alarm source bit, gated by the active-alarm mask.
func (s Snapshot) IsAlarm() bool {
	anySource := s.Bits[AlarmMajor] || s.Bits[AlarmMinor] || s.Bits[AlarmSystem] || s.Bits[AlarmUser]
	return anySource && s.AlarmStatus&MaskActiveAlarm != 0
}

// IsError reports an error: the error bit, gated by the active-error mask.
func (s Snapshot) IsError() bool {
	return s.Bits[Error] && s.AlarmStatus&MaskActiveError != 0
}

func (s Snapshot) IsPlay() bool            { return s.Bits[Play] }
func (s Snapshot) IsTeach() bool           { return s.Bits[Teach] }
func (s Snapshot) IsRemote() bool          { return s.Bits[Remote] }
func (s Snapshot) IsOperating() bool       { return s.Bits[Operating] }
func (s Snapshot) IsHold() bool            { return s.Bits[Hold] }
func (s Snapshot) IsServoOn() bool         { return s.Bits[ServoOn] }
func (s Snapshot) IsEcoMode() bool         { return s.Bits[EcoMode] }
func (s Snapshot) IsWaitingExternal() bool { return s.Bits[WaitingExternal] }

// IsEStop reports an emergency stop from any source.
func (s Snapshot) IsEStop() bool {
	return s.Bits[EStopExternal] || s.Bits[EStopPendant] || s.Bits[EStopController]
}

// IsPflActive reports any power-and-force-limiting state.
// Always false on variants without PFL kinds (their bits are never set).
func (s Snapshot) IsPflActive() bool {
	return s.Bits[PflStop] || s.Bits[PflEscape] || s.Bits[PflAvoiding] ||
		s.Bits[PflAvoidJoint] || s.Bits[PflAvoidTrans]
}

// NotReadySubcode returns the highest-priority reason the controller cannot
// accept motion, or Ready.
func (s Snapshot) NotReadySubcode() Subcode {
	switch {
	case s.AxisConfigInvalid:
		return NotReadyInvalidAxis
	case s.IsAlarm():
		return NotReadyAlarm
	case s.IsError():
		return NotReadyError
	case s.IsEStop():
		return NotReadyEStop
	case !s.IsPlay():
		return NotReadyNotPlay
	case !s.IsRemote():
		return NotReadyNotRemote
	case !s.IsServoOn():
		return NotReadyServoOff
	case s.IsHold():
		return NotReadyHold
	case s.IsPflActive():
		return NotReadyPflActive
	case !s.IsOperating():
		return NotReadyNotStarted
	case !s.IsWaitingExternal():
		return NotReadyWaitingExt
	}
	return Ready
}

// IsMotionReady reports whether no not-ready reason applies.
func (s Snapshot) IsMotionReady() bool {
	return s.NotReadySubcode() == Ready
}
