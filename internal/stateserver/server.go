// internal/stateserver/server.go
package stateserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/tamzrod/motoman-stateserver/internal/metrics"
	"github.com/tamzrod/motoman-stateserver/internal/writer"
)

// Broadcast task states. A task never returns to taskNotStarted.
const (
	taskNotStarted int32 = iota
	taskRunning
	taskFailed
)

// Spawner starts fn on its own goroutine.
type Spawner func(fn func()) error

func goSpawner(fn func()) error {
	go fn()
	return nil
}

// Options is the minimal runtime config the server needs.
type Options struct {
	MaxClients  int
	SendTimeout time.Duration
}

// Deps are the collaborators of the server.
type Deps struct {
	Source Source
	Clock  MotionClock
	IO     writer.SignalWriter
	Alarms AlarmSink
	Log    *slog.Logger

	// Spawn defaults to a plain goroutine.
	Spawn Spawner
}

// Server admits observers and owns the broadcast task.
type Server struct {
	reg       *Registry
	sender    *Sender
	src       Source
	clock     MotionClock
	io        writer.SignalWriter
	connected *writer.EdgeSignal
	alarms    AlarmSink
	spawn     Spawner
	log       *slog.Logger

	task     atomic.Int32
	loopDone chan struct{}
	overflow *rate.Limiter

	stopOnce sync.Once
}

// New builds a server.
func New(opts Options, d Deps) (*Server, error) {
	if d.Source == nil {
		return nil, errors.New("stateserver: source required")
	}
	if d.Clock == nil {
		return nil, errors.New("stateserver: motion clock required")
	}
	if d.IO == nil {
		return nil, errors.New("stateserver: io writer required")
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Alarms == nil {
		d.Alarms = LogAlarms{Log: d.Log}
	}
	if d.Spawn == nil {
		d.Spawn = goSpawner
	}

	reg := NewRegistry(opts.MaxClients)

	return &Server{
		reg:       reg,
		sender:    NewSender(reg, opts.SendTimeout, d.Log),
		src:       d.Source,
		clock:     d.Clock,
		io:        d.IO,
		connected: writer.NewEdgeSignal(d.IO, writer.IOFeedbackStateServerConnected),
		alarms:    d.Alarms,
		spawn:     d.Spawn,
		log:       d.Log,
		loopDone:  make(chan struct{}),
		overflow:  rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Registry exposes the slot table.
func (s *Server) Registry() *Registry { return s.reg }

// Broadcast sends msg to every admitted client.
func (s *Server) Broadcast(msg []byte) bool { return s.sender.Broadcast(msg) }

// ---- ADMISSION ----

// OnNewConnection admits conn or closes it when every slot is taken.
// The first successful admission starts the broadcast task, once;
// ctx bounds the task's lifetime.
func (s *Server) OnNewConnection(ctx context.Context, conn Conn) {
	occ, ok := s.reg.admit(conn)
	if !ok {
		_ = conn.Close()
		metrics.AdmissionsTotal.WithLabelValues("rejected").Inc()
		if s.overflow.Allow() {
			s.log.Warn("state server full, connection closed",
				"remote", remoteAddr(conn),
				"max_clients", s.reg.Capacity(),
			)
		}
		return
	}

	metrics.AdmissionsTotal.WithLabelValues("accepted").Inc()
	s.log.Info("state client admitted",
		"slot", occ.Slot,
		"session", occ.ID,
		"remote", remoteAddr(conn),
	)

	if s.task.Load() == taskNotStarted {
		s.startTask(ctx)
	}
}

// startTask claims the task and spawns the loop. Only the caller that wins
// the claim proceeds; a failure is final.
func (s *Server) startTask(ctx context.Context) {
	if !s.task.CompareAndSwap(taskNotStarted, taskRunning) {
		return
	}

	if err := s.spawnLoop(ctx); err != nil {
		s.task.Store(taskFailed)
		close(s.loopDone)

		s.alarms.RaiseFatal(&Fault{
			Code:    AlarmTaskCreateFailed,
			Subcode: 3,
			Msg:     "FAILED TO CREATE TASK",
			Err:     err,
		})
		if werr := s.io.SetIOState(writer.IOFeedbackFailure, true); werr != nil {
			s.log.Error("failure output write failed", "err", werr)
		}
		return
	}

	if err := s.connected.Force(true); err != nil {
		s.log.Warn("state server connected output write failed", "value", true, "err", err)
	}
	s.log.Info("state broadcast task started")
}

func (s *Server) spawnLoop(ctx context.Context) error {
	ticker, err := s.clock.Subscribe()
	if err != nil {
		return fmt.Errorf("motion clock subscribe: %w", err)
	}

	l := newLoop(s.src, s.sender, s.connected, s.log)

	err = s.spawn(func() {
		defer close(s.loopDone)
		l.run(ctx, ticker)
		s.shutdown()
	})
	if err != nil {
		ticker.Stop()
		return err
	}
	return nil
}

// shutdown releases every slot and drops the connected output.
func (s *Server) shutdown() {
	s.stopOnce.Do(func() {
		s.reg.CloseAll()
		if err := s.connected.Force(false); err != nil {
			s.log.Warn("state server connected output write failed", "value", false, "err", err)
		}
		s.log.Info("state broadcast task terminated")
	})
}

// TaskRunning reports whether the broadcast task was started successfully.
func (s *Server) TaskRunning() bool { return s.task.Load() == taskRunning }

// TaskFailed reports whether starting the broadcast task failed.
func (s *Server) TaskFailed() bool { return s.task.Load() == taskFailed }

// ---- LISTENER ----

// Serve accepts connections on ln until ctx is cancelled.
// On return every client has been closed and the task has stopped.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.log.Info("state server listening", "addr", ln.Addr().String(), "max_clients", s.reg.Capacity())

	var serveErr error
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil {
				serveErr = fmt.Errorf("stateserver: accept: %w", err)
				_ = ln.Close()
			}
			break
		}
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
		s.OnNewConnection(ctx, conn)
	}

	s.wait(ctx)
	return serveErr
}

// wait joins the broadcast task, or releases clients directly
// when no task is running.
func (s *Server) wait(ctx context.Context) {
	if s.task.Load() == taskNotStarted {
		s.reg.CloseAll()
		return
	}
	if ctx.Err() != nil {
		<-s.loopDone
	}
	if s.task.Load() == taskFailed {
		s.reg.CloseAll()
	}
}
