// internal/status/classify_test.go
package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
)

// readySnapshot returns a snapshot that passes every not-ready check.
func readySnapshot() Snapshot {
	var s Snapshot
	s.Bits[Play] = true
	s.Bits[Remote] = true
	s.Bits[ServoOn] = true
	s.Bits[Operating] = true
	s.Bits[WaitingExternal] = true
	return s
}

func TestIsAlarm_GatedByActiveAlarmMask(t *testing.T) {
	var s Snapshot
	s.Bits[AlarmMinor] = true
	assert.False(t, s.IsAlarm(), "alarm bit without mask")

	s.AlarmStatus = MaskActiveError
	assert.False(t, s.IsAlarm(), "error mask does not gate alarms")

	s.AlarmStatus = MaskActiveAlarm
	assert.True(t, s.IsAlarm())

	s.Bits[AlarmMinor] = false
	assert.False(t, s.IsAlarm(), "mask without any source bit")
}

func TestIsError_GatedByActiveErrorMask(t *testing.T) {
	var s Snapshot
	s.Bits[Error] = true
	assert.False(t, s.IsError())

	s.AlarmStatus = MaskActiveError
	assert.True(t, s.IsError())
}

func TestIsEStop_AnySource(t *testing.T) {
	for _, k := range []Kind{EStopExternal, EStopPendant, EStopController} {
		var s Snapshot
		s.Bits[k] = true
		assert.True(t, s.IsEStop(), k.String())
	}
	assert.False(t, Snapshot{}.IsEStop())
}

func TestNotReadySubcode_Priority(t *testing.T) {
	s := readySnapshot()
	require.Equal(t, Ready, s.NotReadySubcode())
	require.True(t, s.IsMotionReady())

	s.Bits[WaitingExternal] = false
	assert.Equal(t, NotReadyWaitingExt, s.NotReadySubcode())

	s.Bits[Operating] = false
	assert.Equal(t, NotReadyNotStarted, s.NotReadySubcode())

	s.Bits[PflStop] = true
	assert.Equal(t, NotReadyPflActive, s.NotReadySubcode())

	s.Bits[Hold] = true
	assert.Equal(t, NotReadyHold, s.NotReadySubcode())

	s.Bits[ServoOn] = false
	assert.Equal(t, NotReadyServoOff, s.NotReadySubcode())

	s.Bits[Remote] = false
	assert.Equal(t, NotReadyNotRemote, s.NotReadySubcode())

	s.Bits[Play] = false
	assert.Equal(t, NotReadyNotPlay, s.NotReadySubcode())

	s.Bits[EStopPendant] = true
	assert.Equal(t, NotReadyEStop, s.NotReadySubcode())

	s.Bits[Error] = true
	s.AlarmStatus = MaskActiveError
	assert.Equal(t, NotReadyError, s.NotReadySubcode())

	s.Bits[AlarmMajor] = true
	s.AlarmStatus |= MaskActiveAlarm
	assert.Equal(t, NotReadyAlarm, s.NotReadySubcode())

	s.AxisConfigInvalid = true
	assert.Equal(t, NotReadyInvalidAxis, s.NotReadySubcode())
	assert.False(t, s.IsMotionReady())
}

func TestFromBits_VariantWithoutPflIgnoresPflBits(t *testing.T) {
	bits := make([]bool, KindCount)
	bits[PflStop] = true
	bits[ServoOn] = true

	dx, err := LookupVariant("dx200")
	require.NoError(t, err)
	s := FromBits(dx, bits, 0, 0)
	assert.True(t, s.IsServoOn())
	assert.False(t, s.IsPflActive())

	yrc, err := LookupVariant("YRC1000")
	require.NoError(t, err)
	s = FromBits(yrc, bits, 0, 0)
	assert.True(t, s.IsPflActive())
}

func TestLookupVariant_Unknown(t *testing.T) {
	_, err := LookupVariant("nx100")
	assert.Error(t, err)

	v, err := LookupVariant("dx100")
	require.NoError(t, err)
	assert.Equal(t, 3, v.MaxGroups)
	assert.Equal(t, int(PflStop), v.Kinds())
}

func TestEncode_RobotStatusFields(t *testing.T) {
	s := readySnapshot()
	s.AlarmCode = 0

	rs := Encode(s)
	assert.Equal(t, simplemsg.True, rs.DrivesPowered)
	assert.Equal(t, simplemsg.False, rs.EStopped)
	assert.Equal(t, simplemsg.False, rs.InError)
	assert.Equal(t, simplemsg.True, rs.InMotion)
	assert.Equal(t, simplemsg.ModeAuto, rs.Mode)
	assert.Equal(t, simplemsg.True, rs.MotionPossible)

	s.Bits[Play] = false
	s.Bits[Teach] = true
	s.Bits[AlarmUser] = true
	s.AlarmStatus = MaskActiveAlarm
	s.AlarmCode = 4107

	rs = Encode(s)
	assert.Equal(t, simplemsg.ModeManual, rs.Mode)
	assert.Equal(t, simplemsg.True, rs.InError)
	assert.Equal(t, int32(4107), rs.ErrorCode)
	assert.Equal(t, simplemsg.False, rs.MotionPossible)

	assert.Equal(t, simplemsg.ModeUnknown, Encode(Snapshot{}).Mode)
}
