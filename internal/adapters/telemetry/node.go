package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/mattn/go-isatty"

	"go.velin.dev/pipfile/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Tracer, error) {
			// The tape renderer assumes an interactive terminal.
			if isatty.IsTerminal(os.Stderr.Fd()) {
				return New(), nil
			}
			return NewNoop(), nil
		},
	})
}
