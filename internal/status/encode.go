// internal/status/encode.go
package status

import "github.com/tamzrod/motoman-stateserver/internal/simplemsg"

// Encode converts a Snapshot into a robot status record.
// No IO. No side effects.
func Encode(s Snapshot) simplemsg.RobotStatus {
	mode := simplemsg.ModeUnknown
	switch {
	case s.IsPlay():
		mode = simplemsg.ModeAuto
	case s.IsTeach():
		mode = simplemsg.ModeManual
	}

	return simplemsg.RobotStatus{
		DrivesPowered:  simplemsg.TristateOf(s.IsServoOn()),
		EStopped:       simplemsg.TristateOf(s.IsEStop()),
		ErrorCode:      s.AlarmCode,
		InError:        simplemsg.TristateOf(s.IsAlarm() || s.IsError()),
		InMotion:       simplemsg.TristateOf(s.IsOperating()),
		Mode:           mode,
		MotionPossible: simplemsg.TristateOf(s.IsMotionReady()),
	}
}
