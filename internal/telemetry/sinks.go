package telemetry

import (
	"context"
	"strconv"

	"carrello/internal/amqp"
	"carrello/internal/log"
)

// NopSink discards every signal.
type NopSink struct{}

func (NopSink) Signal(context.Context, string, map[string]string) error { return nil }

// LogSink writes signals to the structured log. Useful for local runs with no
// broker configured.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Signal(ctx context.Context, name string, properties map[string]string) error {
	args := []any{log.FieldEvent, name}
	for k, v := range properties {
		args = append(args, k, v)
	}
	s.Logger.InfoContext(ctx, "Telemetry signal", args...)
	return nil
}

// AMQPSink publishes signals to the telemetry queue.
type AMQPSink struct {
	Client *amqp.Client
}

func (s AMQPSink) Signal(ctx context.Context, name string, properties map[string]string) error {
	return s.Client.PublishSignal(ctx, amqp.NewSignalMessage(name, properties))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
