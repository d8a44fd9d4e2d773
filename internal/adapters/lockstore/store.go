// Package lockstore persists lockfiles as JSON files next to the manifest.
package lockstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Store implements ports.LockStore using a flat JSON file.
type Store struct{}

var _ ports.LockStore = (*Store)(nil)

// NewStore creates a new lockfile store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile at path.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrLockfileNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read lockfile")
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", path)
	}

	if lock.Default == nil {
		lock.Default = map[string]domain.LockedPackage{}
	}
	if lock.Develop == nil {
		lock.Develop = map[string]domain.LockedPackage{}
	}
	return &lock, nil
}

// Write persists the lockfile to path.
func (s *Store) Write(path string, lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "    ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for lockfile")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(filepath.Clean(path), data, filePerm); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	return nil
}
