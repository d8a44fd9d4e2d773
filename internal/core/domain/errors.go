package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when a version token cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidSpecifier is returned when a constraint string is neither "*"
	// nor a comparison operator followed by a version token.
	ErrInvalidSpecifier = zerr.New("invalid version specifier")

	// ErrInvalidMarker is returned when a platform marker expression cannot be parsed.
	ErrInvalidMarker = zerr.New("invalid marker expression")

	// ErrEmptyPackageName is returned when a manifest entry has an empty name.
	ErrEmptyPackageName = zerr.New("empty package name")

	// ErrNoSources is returned when a manifest declares no package index.
	ErrNoSources = zerr.New("no package sources declared")

	// ErrVersionConflict is returned when a requirement's combined specifiers
	// cannot be satisfied by any version.
	ErrVersionConflict = zerr.New("version conflict")

	// ErrPackageNotFound is returned when the package index has no project
	// with the requested name.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrNoMatchingVersion is returned when the index has releases for the
	// package but none satisfies the requirement.
	ErrNoMatchingVersion = zerr.New("no matching version")

	// ErrIndexUnavailable is returned when the package index cannot be reached.
	ErrIndexUnavailable = zerr.New("package index unavailable")

	// ErrPythonVersionMismatch is returned when a pinned release excludes the
	// interpreter version the manifest requires.
	ErrPythonVersionMismatch = zerr.New("required python version not supported")

	// ErrLockfileStale is returned when the lockfile hash no longer matches
	// the manifest it was generated from.
	ErrLockfileStale = zerr.New("lockfile is out of date")

	// ErrLockfileNotFound is returned when no lockfile exists next to the manifest.
	ErrLockfileNotFound = zerr.New("lockfile not found")
)
