package pipfile_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.velin.dev/pipfile/internal/adapters/pipfile"
	"go.velin.dev/pipfile/internal/core/domain"
)

// constraintSet flattens a manifest to its (name, constraint) pairs, the
// equivalence the round-trip property is defined over.
func constraintSet(m *domain.Manifest) map[string]string {
	set := map[string]string{}
	for _, req := range m.Packages {
		set[req.NormalizedName()] = req.Specifier.String()
	}
	for _, req := range m.DevPackages {
		set["dev:"+req.NormalizedName()] = req.Specifier.String()
	}
	return set
}

func TestRoundTrip(t *testing.T) {
	original, err := pipfile.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	data, err := pipfile.Marshal(original)
	require.NoError(t, err)

	reparsed, err := pipfile.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, constraintSet(original), constraintSet(reparsed))
	assert.Equal(t, original.Sources, reparsed.Sources)
	assert.Equal(t, original.Requires, reparsed.Requires)

	// Markers must survive the trip too.
	var pywin32 domain.Requirement
	for _, req := range reparsed.DevPackages {
		if req.Name == "pywin32" {
			pywin32 = req
		}
	}
	require.NotNil(t, pywin32.Marker)
	assert.False(t, pywin32.Marker.Evaluate(domain.Environment{SysPlatform: "linux", OSName: "posix"}))
}

func TestCodec_SaveLoad(t *testing.T) {
	original, err := pipfile.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	codec := pipfile.NewCodec(nopLogger{})
	path := filepath.Join(t.TempDir(), "Pipfile")
	require.NoError(t, codec.Save(path, original))

	reloaded, err := codec.Load(path)
	require.NoError(t, err)
	assert.Equal(t, constraintSet(original), constraintSet(reloaded))
}

func TestRoundTrip_ContentHashStable(t *testing.T) {
	original, err := pipfile.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	data, err := pipfile.Marshal(original)
	require.NoError(t, err)

	reparsed, err := pipfile.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, original.ContentHash(), reparsed.ContentHash())
}
