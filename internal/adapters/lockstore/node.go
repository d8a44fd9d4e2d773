package lockstore

import (
	"context"

	"github.com/grindlemire/graft"

	"go.velin.dev/pipfile/internal/core/ports"
)

const NodeID graft.ID = "adapter.lock_store"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LockStore, error) {
			return NewStore(), nil
		},
	})
}
