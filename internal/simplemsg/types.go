// internal/simplemsg/types.go
package simplemsg

// Simple message framing (ROS-Industrial), little-endian.
// These values define the protocol and MUST NOT be configurable.

// ---- MESSAGE TYPES ----

const (
	MsgRobotStatus     int32 = 13
	MsgJointFeedback   int32 = 15
	MsgJointFeedbackEx int32 = 2017
)

// ---- COMM / REPLY ----

const (
	CommTopic    int32 = 1
	ReplyInvalid int32 = 0
)

// ---- GEOMETRY ----

// MaxJoints is the fixed joint array length of a feedback record.
const MaxJoints = 10

// MaxGroups is the number of group records carried by an extended feedback message.
const MaxGroups = 4

// ---- VALID FIELDS ----

const (
	ValidTime         int32 = 0x01
	ValidPosition     int32 = 0x02
	ValidVelocity     int32 = 0x04
	ValidAcceleration int32 = 0x08
)

// ---- SIZES (bytes) ----

const (
	prefixSize              = 4
	headerSize              = 12
	robotStatusBodySize     = 7 * 4
	jointFeedbackBodySize   = 3*4 + 3*MaxJoints*4
	jointFeedbackExBodySize = 4 + MaxGroups*jointFeedbackBodySize
)

// Tristate is the protocol's three-valued boolean.
type Tristate int32

const (
	Unknown Tristate = -1
	False   Tristate = 0
	True    Tristate = 1
)

// TristateOf converts a bool into its protocol value.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// Mode is the controller operating mode as reported to observers.
type Mode int32

const (
	ModeUnknown Mode = -1
	ModeManual  Mode = 1
	ModeAuto    Mode = 2
)

// Header precedes every message body.
type Header struct {
	MsgType   int32
	CommType  int32
	ReplyType int32
}

// RobotStatus is the controller status record.
type RobotStatus struct {
	DrivesPowered  Tristate
	EStopped       Tristate
	ErrorCode      int32
	InError        Tristate
	InMotion       Tristate
	Mode           Mode
	MotionPossible Tristate
}

// JointFeedback is the per-group position/velocity record.
type JointFeedback struct {
	GroupNo     int32
	ValidFields int32
	Time        float32
	Pos         [MaxJoints]float32
	Vel         [MaxJoints]float32
	Acc         [MaxJoints]float32
}
