package resolver

import (
	"context"

	"github.com/grindlemire/graft"

	"go.velin.dev/pipfile/internal/adapters/logger"
	"go.velin.dev/pipfile/internal/adapters/pypi"
	"go.velin.dev/pipfile/internal/adapters/telemetry"
	"go.velin.dev/pipfile/internal/core/ports"
)

const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pypi.NodeID, telemetry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			index, err := graft.Dep[ports.IndexClient](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(index, tracer, log), nil
		},
	})
}
