package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer reports resolution progress, one span per package.
type Tracer interface {
	// Start creates a new span for the named unit of work.
	Start(ctx context.Context, name string) (context.Context, Span)

	// EmitPlan signals the set of packages about to be resolved.
	EmitPlan(ctx context.Context, names []string)

	// Close flushes the recording session.
	Close() error
}

// Span represents a unit of work.
type Span interface {
	// End completes the span; a non-nil err marks it failed.
	End(err error)
}
