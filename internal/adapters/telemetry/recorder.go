// Package telemetry provides progress reporting for resolution runs.
package telemetry

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.velin.dev/pipfile/internal/core/ports"
)

// Recorder implements ports.Tracer using the progrock library: one vertex
// per resolved package.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

var _ ports.Tracer = (*Recorder)(nil)

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex for the named package.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &span{vertex: v}
}

// EmitPlan records the set of packages about to be resolved as a single
// completed vertex, so the tape shows the plan up front.
func (r *Recorder) EmitPlan(_ context.Context, names []string) {
	name := fmt.Sprintf("resolving %d packages", len(names))
	v := r.rec.Vertex(digest.FromString(name), name)
	for _, n := range names {
		_, _ = fmt.Fprintln(v.Stdout(), n)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type span struct {
	vertex *progrock.VertexRecorder
}

func (s *span) End(err error) {
	s.vertex.Done(err)
}
