package telemetry

import (
	"context"

	"go.velin.dev/pipfile/internal/core/ports"
)

// Noop is a Tracer that records nothing. It is the default outside
// interactive terminals and in tests.
type Noop struct{}

var _ ports.Tracer = Noop{}

// NewNoop creates a no-op tracer.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

func (Noop) EmitPlan(context.Context, []string) {}

func (Noop) Close() error { return nil }

type noopSpan struct{}

func (noopSpan) End(error) {}
