package domain

// LockfileSpecVersion is the lockfile schema version this tool writes.
const LockfileSpecVersion = 6

// LockedPackage is one resolved entry in the lockfile.
type LockedPackage struct {
	// Version is the pinned constraint, always of the form "==X.Y.Z".
	Version string `json:"version"`

	// Hashes are the artifact digests of the locked release.
	Hashes []string `json:"hashes,omitempty"`

	// Index names the source the package resolves against.
	Index string `json:"index,omitempty"`

	// Markers preserves the requirement's platform predicate.
	Markers string `json:"markers,omitempty"`
}

// LockMeta is the lockfile's _meta section.
type LockMeta struct {
	// Hash is the content hash of the manifest the lock was generated from.
	Hash LockHash `json:"hash"`

	// SpecVersion is the lockfile schema version.
	SpecVersion int `json:"pipfile-spec"`

	// Requires mirrors the manifest's requires section.
	Requires map[string]string `json:"requires"`

	// Sources mirrors the manifest's declared indexes.
	Sources []LockSource `json:"sources"`
}

// LockHash names the digest algorithm explicitly so the schema can migrate.
type LockHash struct {
	SHA256 string `json:"sha256"`
}

// LockSource is a package index recorded in the lockfile.
type LockSource struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	VerifySSL bool   `json:"verify_ssl"`
}

// Lockfile is the reproducible snapshot of a resolution: every runtime and
// development requirement pinned to an exact release.
type Lockfile struct {
	Meta LockMeta `json:"_meta"`

	// Default maps normalized package names to their locked runtime releases.
	Default map[string]LockedPackage `json:"default"`

	// Develop maps normalized package names to their locked dev releases.
	Develop map[string]LockedPackage `json:"develop"`
}

// NewLockfile builds an empty lockfile carrying the manifest's metadata.
func NewLockfile(m *Manifest) *Lockfile {
	meta := LockMeta{
		Hash:        LockHash{SHA256: m.ContentHash()},
		SpecVersion: LockfileSpecVersion,
		Requires:    map[string]string{},
	}
	if m.Requires.PythonVersion != "" {
		meta.Requires["python_version"] = m.Requires.PythonVersion
	}
	for _, s := range m.Sources {
		meta.Sources = append(meta.Sources, LockSource{Name: s.Name, URL: s.URL, VerifySSL: s.VerifySSL})
	}

	return &Lockfile{
		Meta:    meta,
		Default: map[string]LockedPackage{},
		Develop: map[string]LockedPackage{},
	}
}

// Matches reports whether the lockfile was generated from a manifest with
// the given content hash.
func (l *Lockfile) Matches(contentHash string) bool {
	return l.Meta.Hash.SHA256 == contentHash
}
