// internal/stateserver/loop.go
package stateserver

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
	"github.com/tamzrod/motoman-stateserver/internal/simplemsg"
	"github.com/tamzrod/motoman-stateserver/internal/writer"
)

// Source is the controller surface the broadcast loop reads each cycle.
type Source interface {
	NumGroups() int
	BuildFeedback(idx int) (simplemsg.JointFeedback, error)
	StatusToMsg() ([]byte, error)

	// StatusEvery is the number of cycles between status broadcasts.
	StatusEvery() int
}

// broadcaster is the fan-out the loop sends through.
type broadcaster interface {
	Broadcast(msg []byte) bool
}

// Message type labels for metrics.
const (
	labelFeedback   = "joint_feedback"
	labelFeedbackEx = "joint_feedback_ex"
	labelStatus     = "robot_status"
)

// loop is the per-cycle broadcast state. It is owned by one goroutine.
type loop struct {
	src       Source
	out       broadcaster
	connected *writer.EdgeSignal
	log       *slog.Logger

	statusEvery   int
	statusCounter int

	// throttles per-cycle warnings
	warn *rate.Limiter
}

func newLoop(src Source, out broadcaster, connected *writer.EdgeSignal, log *slog.Logger) *loop {
	every := src.StatusEvery()
	if every < 1 {
		every = 1
	}
	return &loop{
		src:         src,
		out:         out,
		connected:   connected,
		log:         log,
		statusEvery: every,
		warn:        rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// run drives one cycle per motion clock tick until ctx is cancelled.
func (l *loop) run(ctx context.Context, ticker clockwork.Ticker) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			start := time.Now()
			l.cycle()
			metrics.CycleDuration.Observe(time.Since(start).Seconds())
		}
	}
}

// cycle builds and broadcasts everything due on one tick.
func (l *loop) cycle() {
	n := l.src.NumGroups()
	ex := simplemsg.NewJointFeedbackEx(n)
	eligible := true

	// ---- per-group feedback ----

	for i := 0; i < n; i++ {
		fb, err := l.src.BuildFeedback(i)
		if err != nil {
			eligible = false
			metrics.BuildFailuresTotal.WithLabelValues(labelFeedback).Inc()
			l.warnf("joint feedback build failed", "group", i, "err", err)
			continue
		}
		if !ex.Set(i, fb) {
			eligible = false
		}

		sent := l.out.Broadcast(simplemsg.EncodeJointFeedback(fb))
		l.count(labelFeedback, sent)
		l.setConnected(sent)
	}

	// ---- extended feedback (multi-group only) ----

	if n >= 2 && eligible && ex.Complete() {
		l.count(labelFeedbackEx, l.out.Broadcast(ex.Encode()))
	}

	// ---- throttled status ----

	l.statusCounter++
	if l.statusCounter >= l.statusEvery {
		l.statusCounter = 0

		msg, err := l.src.StatusToMsg()
		if err != nil {
			metrics.BuildFailuresTotal.WithLabelValues(labelStatus).Inc()
			l.warnf("robot status build failed", "err", err)
			return
		}
		l.count(labelStatus, l.out.Broadcast(msg))
	}
}

func (l *loop) setConnected(sent bool) {
	if _, err := l.connected.Set(sent); err != nil {
		l.warnf("state server connected output write failed", "value", sent, "err", err)
	}
}

func (l *loop) count(label string, sent bool) {
	if sent {
		metrics.MessagesSentTotal.WithLabelValues(label).Inc()
	}
}

func (l *loop) warnf(msg string, args ...any) {
	if l.warn.Allow() {
		l.log.Warn(msg, args...)
	}
}
