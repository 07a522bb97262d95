// internal/writer/types.go
package writer

import "fmt"

// Signal is a numbered digital feedback output of the controller.
// Numbers are fixed by the controller IO map and MUST NOT be configurable.
type Signal int

const (
	IOFeedbackWaitingMPIncMove      Signal = 11120
	IOFeedbackIncMoveDone           Signal = 11121
	IOFeedbackInitializationDone    Signal = 11122
	IOFeedbackConnectServerRunning  Signal = 11123
	IOFeedbackMotionServerConnected Signal = 11124
	IOFeedbackStateServerConnected  Signal = 11125
	IOFeedbackIOServerConnected     Signal = 11126
	IOFeedbackFailure               Signal = 11127
	IOFeedbackReserved1             Signal = 11130
	IOFeedbackReserved2             Signal = 11131
	IOFeedbackReserved3             Signal = 11132
	IOFeedbackReserved4             Signal = 11133
	IOFeedbackReserved5             Signal = 11134
	IOFeedbackReserved6             Signal = 11135
	IOFeedbackReserved7             Signal = 11136
	IOFeedbackReserved8             Signal = 11137
)

var signalNames = map[Signal]string{
	IOFeedbackWaitingMPIncMove:      "waiting_mp_incmove",
	IOFeedbackIncMoveDone:           "incmove_done",
	IOFeedbackInitializationDone:    "initialization_done",
	IOFeedbackConnectServerRunning:  "connect_server_running",
	IOFeedbackMotionServerConnected: "motion_server_connected",
	IOFeedbackStateServerConnected:  "state_server_connected",
	IOFeedbackIOServerConnected:     "io_server_connected",
	IOFeedbackFailure:               "failure",
	IOFeedbackReserved1:             "reserved_1",
	IOFeedbackReserved2:             "reserved_2",
	IOFeedbackReserved3:             "reserved_3",
	IOFeedbackReserved4:             "reserved_4",
	IOFeedbackReserved5:             "reserved_5",
	IOFeedbackReserved6:             "reserved_6",
	IOFeedbackReserved7:             "reserved_7",
	IOFeedbackReserved8:             "reserved_8",
}

func (s Signal) String() string {
	if n, ok := signalNames[s]; ok {
		return n
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// Valid reports whether s is a known feedback output.
func (s Signal) Valid() bool {
	_, ok := signalNames[s]
	return ok
}

// CoilOffset maps a signal onto its coil offset from the feedback coil base.
// Controller output numbers are octal-like: the last digit is the bit (0..7),
// the rest the byte.
func (s Signal) CoilOffset() (uint16, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("writer: unknown feedback signal %d", int(s))
	}
	n := int(s)
	return uint16((n/10-int(IOFeedbackWaitingMPIncMove)/10)*8 + n%10), nil
}
