package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// Command outcomes used as the "outcome" label
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// CommandMetricsCollector records mediator command and query executions
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	inFlight        *prometheus.GaugeVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// most handlers are one or two backend round trips
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Mediator request duration by request type and outcome",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
			},
			[]string{"command", "outcome"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Mediator requests handled by request type and outcome",
			},
			[]string{"command", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_in_flight",
				Help:      "Mediator requests currently executing",
			},
			[]string{"command"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	return registerAll(c.commandDuration, c.commandsTotal, c.inFlight)
}

// begin marks a request as executing and returns the matching end call
func (c *CommandMetricsCollector) begin(command string) func(duration float64, err error) {
	c.inFlight.WithLabelValues(command).Inc()
	return func(duration float64, err error) {
		c.inFlight.WithLabelValues(command).Dec()
		c.RecordCommandExecution(command, duration, Outcome(err))
	}
}

// RecordCommandExecution records one finished request
func (c *CommandMetricsCollector) RecordCommandExecution(command string, duration float64, outcome string) {
	c.commandDuration.WithLabelValues(command, outcome).Observe(duration)
	c.commandsTotal.WithLabelValues(command, outcome).Inc()
}

// Outcome classifies a handler error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case shared.IsValidationError(err):
		return OutcomeInvalid
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrCarrierNotFound),
		errors.Is(err, market.ErrNoSearchResults):
		return OutcomeNotFound
	case errors.Is(err, project.ErrProjectExists),
		errors.Is(err, market.ErrStaleResults):
		return OutcomeConflict
	case errors.Is(err, api.ErrCircuitOpen):
		return OutcomeUnavailable
	}
	return OutcomeError
}
