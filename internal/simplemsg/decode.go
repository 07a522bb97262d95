// internal/simplemsg/decode.go
package simplemsg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// maxPacketSize bounds the prefix value accepted by ReadPacket.
const maxPacketSize = 4096

var ErrShortBody = errors.New("simplemsg: body too short")

// ReadPacket reads one framed packet and returns its header and body.
func ReadPacket(r io.Reader) (Header, []byte, error) {
	var prefix [prefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, nil, err
	}

	n := int(int32(binary.LittleEndian.Uint32(prefix[:])))
	if n < headerSize || n > maxPacketSize {
		return Header{}, nil, fmt.Errorf("simplemsg: invalid length prefix %d", n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, nil, err
	}

	h := Header{
		MsgType:   getI32(buf[0:]),
		CommType:  getI32(buf[4:]),
		ReplyType: getI32(buf[8:]),
	}
	return h, buf[headerSize:], nil
}

// DecodeRobotStatus parses a ROBOT_STATUS body.
func DecodeRobotStatus(body []byte) (RobotStatus, error) {
	if len(body) < robotStatusBodySize {
		return RobotStatus{}, ErrShortBody
	}
	return RobotStatus{
		DrivesPowered:  Tristate(getI32(body[0:])),
		EStopped:       Tristate(getI32(body[4:])),
		ErrorCode:      getI32(body[8:]),
		InError:        Tristate(getI32(body[12:])),
		InMotion:       Tristate(getI32(body[16:])),
		Mode:           Mode(getI32(body[20:])),
		MotionPossible: Tristate(getI32(body[24:])),
	}, nil
}

// DecodeJointFeedback parses a JOINT_FEEDBACK body.
func DecodeJointFeedback(body []byte) (JointFeedback, error) {
	if len(body) < jointFeedbackBodySize {
		return JointFeedback{}, ErrShortBody
	}

	f := JointFeedback{
		GroupNo:     getI32(body[0:]),
		ValidFields: getI32(body[4:]),
		Time:        getF32(body[8:]),
	}

	off := 12
	for _, arr := range [3]*[MaxJoints]float32{&f.Pos, &f.Vel, &f.Acc} {
		for j := 0; j < MaxJoints; j++ {
			arr[j] = getF32(body[off:])
			off += 4
		}
	}
	return f, nil
}

// DecodeJointFeedbackEx parses a MOTO_JOINT_FEEDBACK_EX body into its valid groups.
func DecodeJointFeedbackEx(body []byte) ([]JointFeedback, error) {
	if len(body) < jointFeedbackExBodySize {
		return nil, ErrShortBody
	}

	n := int(getI32(body[0:]))
	if n < 0 || n > MaxGroups {
		return nil, fmt.Errorf("simplemsg: invalid group count %d", n)
	}

	out := make([]JointFeedback, 0, n)
	for i := 0; i < n; i++ {
		off := 4 + i*jointFeedbackBodySize
		f, err := DecodeJointFeedback(body[off : off+jointFeedbackBodySize])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func getI32(src []byte) int32 {
	return int32(binary.LittleEndian.Uint32(src))
}

func getF32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}
