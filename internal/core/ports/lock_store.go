package ports

import "go.velin.dev/pipfile/internal/core/domain"

// LockStore persists lockfiles.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile at the given path. It returns
	// domain.ErrLockfileNotFound when none exists.
	Read(path string) (*domain.Lockfile, error)

	// Write persists the lockfile to the given path.
	Write(path string, lock *domain.Lockfile) error
}
