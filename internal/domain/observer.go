package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// Command names reported to observers.
const (
	CommandCreate       = "create"
	CommandEnsureExists = "ensure-exists"
	CommandChangeMember = "change-member"
)

// Observer is notified around every command. Commands behave the same with or without one.
type Observer interface {
	CommandStarted(ctx context.Context, command string, id m.FixtureItemID)
	CommandFinished(ctx context.Context, command string, id m.FixtureItemID, err error, elapsed time.Duration)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

// CommandStarted implements Observer.
func (NopObserver) CommandStarted(context.Context, string, m.FixtureItemID) {}

// CommandFinished implements Observer.
func (NopObserver) CommandFinished(context.Context, string, m.FixtureItemID, error, time.Duration) {}

// LogObserver writes command outcomes to the default slog logger.
type LogObserver struct{}

// CommandStarted implements Observer.
func (LogObserver) CommandStarted(ctx context.Context, command string, id m.FixtureItemID) {
	slog.DebugContext(ctx, "Command started", "command", command, "id", id.String())
}

// CommandFinished implements Observer.
func (LogObserver) CommandFinished(ctx context.Context, command string, id m.FixtureItemID, err error, elapsed time.Duration) {
	switch outcome := Outcome(err); {
	case err == nil:
		slog.InfoContext(ctx, "Command succeeded", "command", command, "id", id.String(), "elapsed", elapsed)
	case errors.Is(err, m.ErrInvariantViolation):
		slog.ErrorContext(ctx, "Command aborted", "command", command, "id", id.String(), "outcome", outcome, "error", err)
	default:
		slog.WarnContext(ctx, "Command failed", "command", command, "id", id.String(), "outcome", outcome, "error", err)
	}
}

// Outcome labels err for logs and metrics: "ok", a failure code, "invariant" or "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}

	if failure, ok := m.AsFailure(err); ok {
		return string(failure.Code)
	}

	if errors.Is(err, m.ErrInvariantViolation) {
		return "invariant"
	}

	return "error"
}

// MetricsObserver counts commands by outcome and records their latency.
type MetricsObserver struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver registers the command metrics with reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	observer := &MetricsObserver{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fixtura",
			Name:      "commands_total",
			Help:      "Fixture commands executed, by command and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fixtura",
			Name:      "command_duration_seconds",
			Help:      "Latency of fixture commands.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}

	for _, collector := range []prometheus.Collector{observer.commands, observer.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return observer, nil
}

// CommandStarted implements Observer.
func (o *MetricsObserver) CommandStarted(context.Context, string, m.FixtureItemID) {}

// CommandFinished implements Observer.
func (o *MetricsObserver) CommandFinished(_ context.Context, command string, _ m.FixtureItemID, err error, elapsed time.Duration) {
	o.commands.WithLabelValues(command, Outcome(err)).Inc()
	o.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

type observers []Observer

// Observers fans notifications out to every given observer in order.
func Observers(list ...Observer) Observer {
	return observers(list)
}

func (o observers) CommandStarted(ctx context.Context, command string, id m.FixtureItemID) {
	for _, observer := range o {
		observer.CommandStarted(ctx, command, id)
	}
}

func (o observers) CommandFinished(ctx context.Context, command string, id m.FixtureItemID, err error, elapsed time.Duration) {
	for _, observer := range o {
		observer.CommandFinished(ctx, command, id, err, elapsed)
	}
}

// observe reports command to observer and returns the func that finishes it.
func observe(ctx context.Context, observer Observer, command string, id m.FixtureItemID) func(err error) {
	start := time.Now()

	observer.CommandStarted(ctx, command, id)

	return func(err error) {
		observer.CommandFinished(ctx, command, id, err, time.Since(start))
	}
}
