// Package app implements the application layer: the operations the CLI
// exposes over manifests and lockfiles.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports"
	"go.velin.dev/pipfile/internal/engine/resolver"
)

// DefaultManifestName is the manifest filename looked up in the working
// directory when no --file flag is given.
const DefaultManifestName = "Pipfile"

// App wires the manifest codec, resolver, and lock store into user-facing
// operations.
type App struct {
	codec    ports.ManifestCodec
	resolver *resolver.Resolver
	store    ports.LockStore
	tracer   ports.Tracer
	logger   ports.Logger

	// environment overrides the platform-derived marker environment. Tests
	// use it for deterministic platform behavior.
	environment *domain.Environment
}

// Components groups the application object with the adapters the CLI needs
// directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(
	codec ports.ManifestCodec,
	res *resolver.Resolver,
	store ports.LockStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		codec:    codec,
		resolver: res,
		store:    store,
		tracer:   tracer,
		logger:   logger,
	}
}

// WithEnvironment pins the marker environment instead of deriving it from
// the running platform.
func WithEnvironment(env domain.Environment) func(*App) {
	return func(a *App) {
		a.environment = &env
	}
}

// Check parses and validates the manifest: schema properties, constraint
// syntax, marker syntax, and the declared interpreter version.
func (a *App) Check(_ context.Context, manifestPath string) error {
	m, err := a.codec.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "manifest check failed")
	}

	// Surface impossible constraint sets at check time, before anyone locks.
	env := a.markerEnvironment(m)
	reqs, err := m.MergedRequirements(env, true)
	if err != nil {
		return zerr.Wrap(err, "manifest check failed")
	}
	for _, req := range reqs {
		if req.Specifier.Unsatisfiable() {
			conflict := zerr.With(domain.ErrVersionConflict, "package", req.Name)
			return zerr.With(conflict, "constraint", req.Specifier.String())
		}
	}

	a.logger.Info(fmt.Sprintf("manifest ok: %d packages, %d dev-packages", len(m.Packages), len(m.DevPackages)))
	return nil
}

// Lock resolves the manifest and writes the lockfile.
func (a *App) Lock(ctx context.Context, manifestPath string) error {
	m, err := a.codec.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	lock, err := a.resolver.Resolve(ctx, m, a.markerEnvironment(m))
	if err != nil {
		return zerr.Wrap(err, "resolution failed")
	}

	lockPath := LockPath(manifestPath)
	if err := a.store.Write(lockPath, lock); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}

	a.logger.Info("wrote " + lockPath)
	return nil
}

// Verify checks that the lockfile was generated from the manifest as it is
// now. A stale lockfile returns domain.ErrLockfileStale.
func (a *App) Verify(_ context.Context, manifestPath string) error {
	m, err := a.codec.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	lock, err := a.store.Read(LockPath(manifestPath))
	if err != nil {
		return err
	}

	if !lock.Matches(m.ContentHash()) {
		stale := zerr.With(domain.ErrLockfileStale, "expected_hash", m.ContentHash())
		return zerr.With(stale, "lockfile_hash", lock.Meta.Hash.SHA256)
	}

	a.logger.Info("lockfile up to date")
	return nil
}

// Close releases long-lived resources, flushing the progress recorder.
func (a *App) Close() error {
	return a.tracer.Close()
}

func (a *App) markerEnvironment(m *domain.Manifest) domain.Environment {
	if a.environment != nil {
		env := *a.environment
		if env.PythonVersion == "" {
			env.PythonVersion = m.Requires.PythonVersion
		}
		return env
	}
	return domain.CurrentEnvironment(m.Requires.PythonVersion)
}

// LockPath returns the lockfile path for a manifest path: the lockfile lives
// next to the manifest.
func LockPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), filepath.Base(manifestPath)+".lock")
}
