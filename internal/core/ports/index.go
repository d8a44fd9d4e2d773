package ports

import (
	"context"

	"go.velin.dev/pipfile/internal/core/domain"
)

// IndexClient queries a package index for a project's published releases.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type IndexClient interface {
	// Project fetches the release listing for the named package from the
	// given source. It returns domain.ErrPackageNotFound when the index has
	// no such project and domain.ErrIndexUnavailable when the index cannot
	// be reached.
	Project(ctx context.Context, source domain.Source, name string) (*domain.Project, error)
}
