// Package resolver implements dependency resolution: matching every manifest
// requirement to an exact release published by the declared package index.
package resolver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports"
)

// Resolver resolves manifest requirements into a lockfile.
type Resolver struct {
	index       ports.IndexClient
	tracer      ports.Tracer
	logger      ports.Logger
	parallelism int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithParallelism bounds the number of concurrent index lookups.
func WithParallelism(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// New creates a new Resolver.
func New(index ports.IndexClient, tracer ports.Tracer, logger ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		index:       index,
		tracer:      tracer,
		logger:      logger,
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves every requirement the environment admits and returns the
// resulting lockfile. Exact pins are honored strictly; unconstrained
// requirements select the latest release compatible with the manifest's
// interpreter version.
func (r *Resolver) Resolve(ctx context.Context, m *domain.Manifest, env domain.Environment) (*domain.Lockfile, error) {
	if len(m.Sources) == 0 {
		return nil, domain.ErrNoSources
	}

	reqs, err := m.MergedRequirements(env, true)
	if err != nil {
		return nil, err
	}

	// Constraint sets that are provably empty fail before any network call.
	for _, req := range reqs {
		if req.Specifier.Unsatisfiable() {
			conflict := zerr.With(domain.ErrVersionConflict, "package", req.Name)
			return nil, zerr.With(conflict, "constraint", req.Specifier.String())
		}
	}

	names := make([]string, len(reqs))
	for i, req := range reqs {
		names[i] = req.NormalizedName()
	}
	r.tracer.EmitPlan(ctx, names)

	lock := domain.NewLockfile(m)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for _, req := range reqs {
		g.Go(func() error {
			spanCtx, span := r.tracer.Start(gctx, req.NormalizedName())

			locked, err := r.resolveOne(spanCtx, m, req)
			span.End(err)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if req.Dev {
				lock.Develop[req.NormalizedName()] = locked
			} else {
				lock.Default[req.NormalizedName()] = locked
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("resolved %d packages (%d default, %d develop)",
		len(lock.Default)+len(lock.Develop), len(lock.Default), len(lock.Develop)))
	return lock, nil
}

func (r *Resolver) resolveOne(ctx context.Context, m *domain.Manifest, req domain.Requirement) (domain.LockedPackage, error) {
	source, ok := m.SourceByName(req.Index)
	if !ok {
		err := zerr.With(zerr.New("unknown package index"), "package", req.Name)
		return domain.LockedPackage{}, zerr.With(err, "index", req.Index)
	}

	project, err := r.index.Project(ctx, source, req.Name)
	if err != nil {
		return domain.LockedPackage{}, err
	}

	release, err := selectRelease(req, project, m.Requires.PythonVersion)
	if err != nil {
		return domain.LockedPackage{}, err
	}

	return domain.LockedPackage{
		Version: "==" + release.Version.String(),
		Hashes:  release.Hashes,
		Index:   source.Name,
		Markers: req.Marker.String(),
	}, nil
}

// selectRelease picks the release a requirement resolves to: the highest
// candidate satisfying the constraint. Pre-releases are only candidates when
// the constraint names one; yanked releases only when pinned exactly.
func selectRelease(req domain.Requirement, project *domain.Project, pythonVersion string) (domain.Release, error) {
	var declaredPython domain.Version
	havePython := false
	if pythonVersion != "" {
		if v, err := domain.ParseVersion(pythonVersion); err == nil {
			declaredPython = v
			havePython = true
		}
	}

	pin, pinned := req.Specifier.Exact()
	allowPre := req.Specifier.HasPrereleaseClause()
	pythonExcluded := false

	// Releases arrive sorted ascending; walk from the newest down.
	for i := len(project.Releases) - 1; i >= 0; i-- {
		release := project.Releases[i]

		if !req.Specifier.Match(release.Version) {
			continue
		}
		isPin := pinned && pin.Compare(release.Version) == 0
		if release.Yanked && !isPin {
			continue
		}
		if release.Version.IsPrerelease() && !allowPre && !isPin {
			continue
		}
		if havePython && !release.RequiresPython.IsAny() && !release.RequiresPython.Match(declaredPython) {
			pythonExcluded = true
			continue
		}

		return release, nil
	}

	if pythonExcluded {
		err := zerr.With(domain.ErrPythonVersionMismatch, "package", req.Name)
		err = zerr.With(err, "constraint", req.Specifier.String())
		return domain.Release{}, zerr.With(err, "python_version", pythonVersion)
	}

	err := zerr.With(domain.ErrNoMatchingVersion, "package", req.Name)
	err = zerr.With(err, "constraint", req.Specifier.String())
	return domain.Release{}, zerr.With(err, "available", len(project.Releases))
}
