package pypi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.velin.dev/pipfile/internal/adapters/pypi"
	"go.velin.dev/pipfile/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

const matplotlibDoc = `{
	"releases": {
		"3.2.1": [
			{"digests": {"sha256": "aaa1"}, "requires_python": ">=3.6", "yanked": false}
		],
		"3.2.2": [
			{"digests": {"sha256": "bbb1"}, "requires_python": ">=3.6", "yanked": false},
			{"digests": {"sha256": "bbb2"}, "requires_python": ">=3.6", "yanked": false}
		],
		"3.3.0rc1": [
			{"digests": {"sha256": "ccc1"}, "requires_python": ">=3.6", "yanked": false}
		],
		"2004-bogus": [
			{"digests": {"sha256": "ddd1"}, "yanked": false}
		]
	}
}`

func newIndexServer(t *testing.T) (*httptest.Server, domain.Source) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pypi/matplotlib/json":
			_, _ = w.Write([]byte(matplotlibDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	source := domain.Source{Name: "pypi", URL: server.URL + "/simple", VerifySSL: true}
	return server, source
}

func TestClient_Project(t *testing.T) {
	_, source := newIndexServer(t)
	client := pypi.NewClient(nopLogger{})

	project, err := client.Project(context.Background(), source, "matplotlib")
	require.NoError(t, err)
	assert.Equal(t, "matplotlib", project.Name)

	// The unparsable legacy version is dropped, the rest sorted ascending.
	require.Len(t, project.Releases, 3)
	assert.Equal(t, "3.2.1", project.Releases[0].Version.String())
	assert.Equal(t, "3.2.2", project.Releases[1].Version.String())
	assert.Equal(t, "3.3.0rc1", project.Releases[2].Version.String())

	assert.Equal(t, []string{"sha256:bbb1", "sha256:bbb2"}, project.Releases[1].Hashes)
	assert.True(t, project.Releases[2].Version.IsPrerelease())
}

func TestClient_Project_NameNormalization(t *testing.T) {
	_, source := newIndexServer(t)
	client := pypi.NewClient(nopLogger{})

	project, err := client.Project(context.Background(), source, "MatPlotLib")
	require.NoError(t, err)
	assert.Equal(t, "matplotlib", project.Name)
}

func TestClient_Project_NotFound(t *testing.T) {
	_, source := newIndexServer(t)
	client := pypi.NewClient(nopLogger{})

	_, err := client.Project(context.Background(), source, "no-such-package")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound), "got %v", err)
}

func TestClient_Project_IndexUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := pypi.NewClient(nopLogger{})
	source := domain.Source{Name: "pypi", URL: server.URL, VerifySSL: true}

	_, err := client.Project(context.Background(), source, "numpy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndexUnavailable), "got %v", err)
}

func TestClient_Project_UnreachableIndex(t *testing.T) {
	client := pypi.NewClient(nopLogger{})
	source := domain.Source{Name: "pypi", URL: "http://127.0.0.1:1", VerifySSL: true}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.Project(ctx, source, "numpy")
	require.Error(t, err)
}

func TestClient_Project_CachedResponse(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(matplotlibDoc))
	}))
	t.Cleanup(server.Close)

	source := domain.Source{Name: "pypi", URL: server.URL, VerifySSL: true}
	client := pypi.NewClient(nopLogger{}, pypi.WithCache(t.TempDir(), time.Hour))

	_, err := client.Project(context.Background(), source, "matplotlib")
	require.NoError(t, err)
	_, err = client.Project(context.Background(), source, "matplotlib")
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second lookup must be served from the cache")
}
