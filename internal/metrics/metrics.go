// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/modbus-servo/internal/status"
)

const namespace = "servo"

// Metrics exports controller outcomes and drive telemetry.
// It implements servo.Observer.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	cycles     *prometheus.GaugeVec

	position   *prometheus.GaugeVec
	flags      *prometheus.GaugeVec
	pollErrors *prometheus.CounterVec
	lastPoll   *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Controller operations by outcome.",
		}, []string{"servo", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in controller operations.",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"servo", "op"}),
		cycles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "move_cycles",
			Help:      "Moves that ended within tolerance since the controller started.",
		}, []string{"servo"}),
		position: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "encoder_position",
			Help:      "Last observed encoder position.",
		}, []string{"servo"}),
		flags: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flag_active",
			Help:      "1 when the named status or alarm flag is set.",
		}, []string{"servo", "kind", "flag"}),
		pollErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Failed telemetry polls.",
		}, []string{"servo"}),
		lastPoll: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_poll_timestamp_seconds",
			Help:      "Unix time of the last successful telemetry poll.",
		}, []string{"servo"}),
	}

	reg.MustRegister(
		m.operations,
		m.duration,
		m.cycles,
		m.position,
		m.flags,
		m.pollErrors,
		m.lastPoll,
	)
	return m
}

// ---- servo.Observer ----

func (m *Metrics) ObserveOperation(servo, op, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(servo, op, outcome).Inc()
	m.duration.WithLabelValues(servo, op).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCycle(servo string, cycles uint64) {
	m.cycles.WithLabelValues(servo).Set(float64(cycles))
}

// ---- telemetry ----

// RecordSnapshot updates telemetry gauges from one monitor observation.
func (m *Metrics) RecordSnapshot(s status.Snapshot) {
	if s.Err != nil {
		m.pollErrors.WithLabelValues(s.Servo).Inc()
		return
	}

	m.position.WithLabelValues(s.Servo).Set(float64(s.Position))
	m.lastPoll.WithLabelValues(s.Servo).Set(float64(s.At.Unix()))

	setFlags(m.flags, s.Servo, "status", status.StatusNames, s.Status)
	setFlags(m.flags, s.Servo, "alarm", status.AlarmNames, s.Alarms)
}

func setFlags(g *prometheus.GaugeVec, servo, kind string, table []string, active status.Flags) {
	for _, name := range table {
		v := 0.0
		if active.Has(name) {
			v = 1
		}
		g.WithLabelValues(servo, kind, name).Set(v)
	}
}
