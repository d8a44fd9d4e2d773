package pipfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.velin.dev/pipfile/internal/adapters/pipfile"
	"go.velin.dev/pipfile/internal/core/domain"
)

const sampleManifest = `
[[source]]
name = "pypi"
url = "https://pypi.org/simple"
verify_ssl = true

[packages]
numpy = "*"
pyqt5 = "*"
shapely = "*"
matplotlib = "==3.2.2"
pillow = "*"

[dev-packages]
hypothesis = "*"
pywin32 = {version = "*", sys_platform = "== 'win32'"}

[requires]
python_version = "3.6"
`

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func TestParse(t *testing.T) {
	m, err := pipfile.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	require.Len(t, m.Sources, 1)
	assert.Equal(t, "pypi", m.Sources[0].Name)
	assert.Equal(t, "https://pypi.org/simple", m.Sources[0].URL)
	assert.True(t, m.Sources[0].VerifySSL)

	assert.Equal(t, "3.6", m.Requires.PythonVersion)

	require.Len(t, m.Packages, 5)
	require.Len(t, m.DevPackages, 2)

	byName := map[string]domain.Requirement{}
	for _, req := range m.Packages {
		byName[req.Name] = req
	}

	assert.Equal(t, "*", byName["numpy"].Specifier.String())
	assert.Equal(t, "==3.2.2", byName["matplotlib"].Specifier.String())

	pinned, ok := byName["matplotlib"].Specifier.Exact()
	require.True(t, ok)
	assert.Equal(t, "3.2.2", pinned.String())
}

func TestParse_PlatformGatedDevPackage(t *testing.T) {
	m, err := pipfile.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	var pywin32 domain.Requirement
	for _, req := range m.DevPackages {
		if req.Name == "pywin32" {
			pywin32 = req
		}
	}
	require.NotEmpty(t, pywin32.Name)
	require.NotNil(t, pywin32.Marker)
	assert.True(t, pywin32.Dev)

	linux := domain.Environment{SysPlatform: "linux", OSName: "posix"}
	windows := domain.Environment{SysPlatform: "win32", OSName: "nt"}
	assert.False(t, pywin32.Marker.Evaluate(linux))
	assert.True(t, pywin32.Marker.Evaluate(windows))
}

func TestParse_TableEntryWithMarkersKey(t *testing.T) {
	content := `
[packages]
colorama = {version = ">=0.4,<1.0", markers = "sys_platform == 'win32' or os_name == 'nt'", index = "pypi"}
`
	m, err := pipfile.Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, m.Packages, 1)

	req := m.Packages[0]
	assert.Equal(t, ">=0.4,<1.0", req.Specifier.String())
	assert.Equal(t, "pypi", req.Index)
	require.NotNil(t, req.Marker)
	assert.True(t, req.Marker.Evaluate(domain.Environment{SysPlatform: "win32", OSName: "nt"}))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "bad constraint",
			content: "[packages]\nnumpy = \"latest\"\n",
			wantErr: domain.ErrInvalidSpecifier,
		},
		{
			name:    "bad pinned version",
			content: "[packages]\nnumpy = \"==not.a.version\"\n",
			wantErr: domain.ErrInvalidVersion,
		},
		{
			name:    "bad marker",
			content: "[dev-packages]\npywin32 = {version = \"*\", sys_platform = \"win32\"}\n",
			wantErr: domain.ErrInvalidMarker,
		},
		{
			name:    "bad python version",
			content: "[requires]\npython_version = \"three\"\n",
			wantErr: domain.ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipfile.Parse([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestParse_NotTOML(t *testing.T) {
	_, err := pipfile.Parse([]byte("packages: [not toml"))
	require.Error(t, err)
}

func TestCodec_Load(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Pipfile")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	codec := pipfile.NewCodec(nopLogger{})
	m, err := codec.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Packages, 5)
}

func TestCodec_Load_MissingFile(t *testing.T) {
	codec := pipfile.NewCodec(nopLogger{})
	_, err := codec.Load(filepath.Join(t.TempDir(), "Pipfile"))
	require.Error(t, err)
}
