// internal/stateserver/alarm.go
package stateserver

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
)

// Alarm codes raised by the state server.
const (
	AlarmTaskCreateFailed = 8004
)

// Fault is an operator-visible controller alarm.
type Fault struct {
	Code    int
	Subcode int
	Msg     string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("alarm %d[%d]: %s: %v", f.Code, f.Subcode, f.Msg, f.Err)
	}
	return fmt.Sprintf("alarm %d[%d]: %s", f.Code, f.Subcode, f.Msg)
}

func (f *Fault) Unwrap() error { return f.Err }

// AlarmSink raises alarms on the controller.
type AlarmSink interface {
	RaiseFatal(f *Fault)
}

// LogAlarms raises alarms as error logs and a fault counter.
type LogAlarms struct {
	Log *slog.Logger
}

func (a LogAlarms) RaiseFatal(f *Fault) {
	metrics.FaultsTotal.WithLabelValues(strconv.Itoa(f.Code)).Inc()
	a.Log.Error("controller alarm raised",
		"code", f.Code,
		"subcode", f.Subcode,
		"msg", f.Msg,
		"err", f.Err,
	)
}
