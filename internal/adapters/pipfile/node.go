package pipfile

import (
	"context"

	"github.com/grindlemire/graft"

	"go.velin.dev/pipfile/internal/adapters/logger"
	"go.velin.dev/pipfile/internal/core/ports"
)

const NodeID graft.ID = "adapter.manifest_codec"

func init() {
	graft.Register(graft.Node[ports.ManifestCodec]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ManifestCodec, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCodec(log), nil
		},
	})
}
