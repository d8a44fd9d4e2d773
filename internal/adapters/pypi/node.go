package pypi

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/grindlemire/graft"

	"go.velin.dev/pipfile/internal/adapters/logger"
	"go.velin.dev/pipfile/internal/core/ports"
)

const NodeID graft.ID = "adapter.index_client"

const defaultCacheTTL = 24 * time.Hour

func init() {
	graft.Register(graft.Node[ports.IndexClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.IndexClient, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			opts := []Option{}
			if cacheDir, err := os.UserCacheDir(); err == nil {
				opts = append(opts, WithCache(filepath.Join(cacheDir, "pipfile", "index"), defaultCacheTTL))
			}
			return NewClient(log, opts...), nil
		},
	})
}
