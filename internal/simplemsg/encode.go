// internal/simplemsg/encode.go
package simplemsg

import (
	"encoding/binary"
	"math"
)

// EncodeRobotStatus builds a full ROBOT_STATUS packet.
// No IO. No side effects.
func EncodeRobotStatus(s RobotStatus) []byte {
	pkt := newPacket(MsgRobotStatus, robotStatusBodySize)
	body := pkt[prefixSize+headerSize:]

	putI32(body[0:], int32(s.DrivesPowered))
	putI32(body[4:], int32(s.EStopped))
	putI32(body[8:], s.ErrorCode)
	putI32(body[12:], int32(s.InError))
	putI32(body[16:], int32(s.InMotion))
	putI32(body[20:], int32(s.Mode))
	putI32(body[24:], int32(s.MotionPossible))

	return pkt
}

// EncodeJointFeedback builds a full JOINT_FEEDBACK packet for one group.
func EncodeJointFeedback(f JointFeedback) []byte {
	pkt := newPacket(MsgJointFeedback, jointFeedbackBodySize)
	putJointFeedback(pkt[prefixSize+headerSize:], f)
	return pkt
}

// JointFeedbackEx is the aggregate container spanning all control groups
// of one cycle. It is sized once per cycle for the current group count.
type JointFeedbackEx struct {
	groups []JointFeedback
	filled []bool
}

// NewJointFeedbackEx returns an empty container for numGroups groups.
// numGroups is clamped to [0, MaxGroups].
func NewJointFeedbackEx(numGroups int) *JointFeedbackEx {
	if numGroups < 0 {
		numGroups = 0
	}
	if numGroups > MaxGroups {
		numGroups = MaxGroups
	}
	return &JointFeedbackEx{
		groups: make([]JointFeedback, numGroups),
		filled: make([]bool, numGroups),
	}
}

// Set stores the feedback of group index idx. Out-of-range indexes are ignored.
func (x *JointFeedbackEx) Set(idx int, f JointFeedback) bool {
	if idx < 0 || idx >= len(x.groups) {
		return false
	}
	x.groups[idx] = f
	x.filled[idx] = true
	return true
}

// Complete reports whether every group slot has been set.
func (x *JointFeedbackEx) Complete() bool {
	for _, ok := range x.filled {
		if !ok {
			return false
		}
	}
	return len(x.filled) > 0
}

// Encode builds a full MOTO_JOINT_FEEDBACK_EX packet.
// Unused group records are zero.
func (x *JointFeedbackEx) Encode() []byte {
	pkt := newPacket(MsgJointFeedbackEx, jointFeedbackExBodySize)
	body := pkt[prefixSize+headerSize:]

	putI32(body[0:], int32(len(x.groups)))
	for i, g := range x.groups {
		off := 4 + i*jointFeedbackBodySize
		putJointFeedback(body[off:off+jointFeedbackBodySize], g)
	}
	return pkt
}

// ---- helpers (pure geometry) ----

func newPacket(msgType int32, bodySize int) []byte {
	pkt := make([]byte, prefixSize+headerSize+bodySize)

	// prefix counts everything after itself
	putI32(pkt[0:], int32(headerSize+bodySize))
	putI32(pkt[4:], msgType)
	putI32(pkt[8:], CommTopic)
	putI32(pkt[12:], ReplyInvalid)

	return pkt
}

func putJointFeedback(dst []byte, f JointFeedback) {
	putI32(dst[0:], f.GroupNo)
	putI32(dst[4:], f.ValidFields)
	putF32(dst[8:], f.Time)

	off := 12
	for _, arr := range [3]*[MaxJoints]float32{&f.Pos, &f.Vel, &f.Acc} {
		for j := 0; j < MaxJoints; j++ {
			putF32(dst[off:], arr[j])
			off += 4
		}
	}
}

func putI32(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
