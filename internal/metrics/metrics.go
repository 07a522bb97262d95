// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// State Server Connection Metrics
var (
	// ConnectedClients tracks occupied slots in the state server registry
	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stateserver_connected_clients",
			Help: "Number of occupied state server connection slots",
		},
	)

	// SlotOccupied exposes per-slot health (1=occupied, 0=empty)
	SlotOccupied = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stateserver_slot_occupied",
			Help: "State server slot occupancy by slot index",
		},
		[]string{"slot"},
	)

	// AdmissionsTotal tracks admission attempts by result (accepted/rejected)
	AdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_admissions_total",
			Help: "State server connection admissions by result",
		},
		[]string{"result"},
	)

	// EvictionsTotal tracks slots released after a send failure
	EvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stateserver_evictions_total",
			Help: "Total clients evicted after a send failure",
		},
	)
)

// Broadcast Loop Metrics
var (
	// MessagesSentTotal counts fan-out passes with at least one recipient, by message type
	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_messages_sent_total",
			Help: "Broadcasts delivered to at least one client, by message type",
		},
		[]string{"type"},
	)

	// BuildFailuresTotal counts skipped messages, by message type
	BuildFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_build_failures_total",
			Help: "Messages skipped because the build returned no data, by message type",
		},
		[]string{"type"},
	)

	// CycleDuration tracks broadcast work per motion clock tick in seconds
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stateserver_cycle_duration_seconds",
			Help:    "Broadcast loop work per motion clock tick in seconds",
			Buckets: []float64{.0001, .00025, .0005, .001, .002, .004, .008, .016},
		},
	)
)

// Controller IO Metrics
var (
	// IOFeedbackWritesTotal counts digital feedback output writes by signal and result
	IOFeedbackWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_io_feedback_writes_total",
			Help: "Digital feedback output writes by signal and result",
		},
		[]string{"signal", "result"},
	)

	// StatusPollsTotal counts controller status polls by result
	StatusPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_status_polls_total",
			Help: "Controller status polls by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerState tracks the IO link breaker (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stateserver_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	// FaultsTotal counts operator-visible alarms raised, by alarm code
	FaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stateserver_faults_total",
			Help: "Operator-visible alarms raised, by alarm code",
		},
		[]string{"code"},
	)
)
