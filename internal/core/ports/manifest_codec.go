package ports

import "go.velin.dev/pipfile/internal/core/domain"

// ManifestCodec reads and writes Pipfile manifests.
//
//go:generate mockgen -source=manifest_codec.go -destination=mocks/mock_manifest_codec.go -package=mocks
type ManifestCodec interface {
	// Load reads and parses the manifest at the given path.
	Load(path string) (*domain.Manifest, error)

	// Save serializes the manifest to the given path. Parsing the result
	// again yields an equivalent set of (name, constraint) pairs.
	Save(path string, m *domain.Manifest) error
}
