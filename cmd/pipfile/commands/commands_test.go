package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"go.velin.dev/pipfile/cmd/pipfile/commands"
	"go.velin.dev/pipfile/internal/adapters/lockstore"
	"go.velin.dev/pipfile/internal/adapters/pipfile"
	"go.velin.dev/pipfile/internal/adapters/telemetry"
	"go.velin.dev/pipfile/internal/app"
	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports/mocks"
	"go.velin.dev/pipfile/internal/engine/resolver"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func newCLI(t *testing.T, index *mocks.MockIndexClient) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	res := resolver.New(index, telemetry.NewNoop(), nopLogger{}, resolver.WithParallelism(1))
	a := app.New(pipfile.NewCodec(nopLogger{}), res, lockstore.NewStore(), telemetry.NewNoop(), nopLogger{})

	cli := commands.New(a)
	out := &bytes.Buffer{}
	cli.SetOutput(out)
	return cli, out
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Pipfile")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

const manifest = `
[[source]]
name = "pypi"
url = "https://pypi.org/simple"
verify_ssl = true

[packages]
numpy = "*"

[requires]
python_version = "3.6"
`

func TestCheck_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _ := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"check", "--file", writeManifest(t, manifest)})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestCheck_MissingManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _ := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"check", "--file", filepath.Join(t.TempDir(), "Pipfile")})

	if err := cli.Execute(context.Background()); err == nil {
		t.Error("Expected error for missing manifest, got nil")
	}
}

func TestLock_WritesLockfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mocks.NewMockIndexClient(ctrl)
	index.EXPECT().Project(gomock.Any(), gomock.Any(), "numpy").Return(&domain.Project{
		Name: "numpy",
		Releases: []domain.Release{
			{Version: domain.MustParseVersion("1.19.5"), Hashes: []string{"sha256:abc"}},
		},
	}, nil)

	cli, _ := newCLI(t, index)
	path := writeManifest(t, manifest)
	cli.SetArgs([]string{"lock", "--file", path})

	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("lockfile not written: %v", err)
	}
}

func TestVerify_NoLockfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _ := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"verify", "--file", writeManifest(t, manifest)})

	err := cli.Execute(context.Background())
	if !errors.Is(err, domain.ErrLockfileNotFound) {
		t.Errorf("Expected ErrLockfileNotFound, got: %v", err)
	}
}

func TestShow_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, out := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"show", "--file", writeManifest(t, manifest), "--format", "json"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(out.String(), `"name": "numpy"`) {
		t.Errorf("JSON output missing numpy entry:\n%s", out.String())
	}
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, out := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"version"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(out.String(), "pipfile version") {
		t.Errorf("unexpected version output: %s", out.String())
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli, _ := newCLI(t, mocks.NewMockIndexClient(ctrl))
	cli.SetArgs([]string{"frobnicate"})

	if err := cli.Execute(context.Background()); err == nil {
		t.Error("Expected error for unknown command, got nil")
	}
}
