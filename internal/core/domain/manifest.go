package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Source is a named package index.
type Source struct {
	Name      string
	URL       string
	VerifySSL bool
}

// Requirement is one manifest entry: a package name with its version
// constraint and an optional platform predicate.
type Requirement struct {
	// Name is the package name as written in the manifest.
	Name string

	// Specifier is the version constraint. The zero value is "*".
	Specifier SpecifierSet

	// Marker gates the requirement; nil means always included.
	Marker *Marker

	// Dev marks entries from the dev-packages section.
	Dev bool

	// Index optionally names the source the package must come from.
	Index string
}

// NormalizedName returns the canonical package name: lowercased, with runs
// of "-", "_" and "." collapsed to a single "-".
func (r Requirement) NormalizedName() string {
	return NormalizeName(r.Name)
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName canonicalizes a package name so that "Foo_Bar" and "foo-bar"
// refer to the same project.
func NormalizeName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}

// Requires declares the interpreter the manifest targets.
type Requires struct {
	PythonVersion string
}

// Manifest is a parsed Pipfile: package sources, runtime and development
// requirements, and the required interpreter version.
type Manifest struct {
	Sources     []Source
	Packages    []Requirement
	DevPackages []Requirement
	Requires    Requires
}

// Validate checks the manifest's schema-level properties: every entry has a
// non-empty name, no name appears twice within a section, each declared
// source has a name and URL, and the python version (when present) parses.
// Constraint and marker syntax is enforced at parse time.
func (m *Manifest) Validate() error {
	for _, s := range m.Sources {
		if s.Name == "" || s.URL == "" {
			return zerr.With(zerr.New("source requires name and url"), "source_name", s.Name)
		}
	}

	for _, section := range [][]Requirement{m.Packages, m.DevPackages} {
		seen := make(map[string]bool, len(section))
		for _, req := range section {
			if strings.TrimSpace(req.Name) == "" {
				return ErrEmptyPackageName
			}
			normalized := req.NormalizedName()
			if seen[normalized] {
				return zerr.With(zerr.New("duplicate package entry"), "package", req.Name)
			}
			seen[normalized] = true
		}
	}

	if m.Requires.PythonVersion != "" {
		if _, err := ParseVersion(m.Requires.PythonVersion); err != nil {
			return zerr.Wrap(err, "invalid required python version")
		}
	}

	return nil
}

// SourceByName returns the named source, falling back to the first source
// when name is empty. The second return is false when no source matches.
func (m *Manifest) SourceByName(name string) (Source, bool) {
	if name == "" {
		if len(m.Sources) == 0 {
			return Source{}, false
		}
		return m.Sources[0], true
	}
	for _, s := range m.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// MergedRequirements combines the runtime and dev sections for resolution.
// A package named in both sections resolves once, against the conjunction of
// both constraints; a provably empty conjunction is a version conflict.
// Requirements whose marker does not hold in env are excluded, so a
// platform-gated package never resolves on a non-matching platform.
func (m *Manifest) MergedRequirements(env Environment, includeDev bool) ([]Requirement, error) {
	sections := m.Packages
	if includeDev {
		sections = append(append([]Requirement{}, m.Packages...), m.DevPackages...)
	}

	byName := make(map[string]Requirement)
	order := []string{}

	for _, req := range sections {
		if !req.Marker.Evaluate(env) {
			continue
		}

		key := req.NormalizedName()
		existing, ok := byName[key]
		if !ok {
			byName[key] = req
			order = append(order, key)
			continue
		}

		merged := existing
		merged.Specifier = existing.Specifier.And(req.Specifier)
		merged.Dev = existing.Dev && req.Dev
		if merged.Specifier.Unsatisfiable() {
			err := zerr.With(ErrVersionConflict, "package", req.Name)
			err = zerr.With(err, "constraint_a", existing.Specifier.String())
			return nil, zerr.With(err, "constraint_b", req.Specifier.String())
		}
		byName[key] = merged
	}

	sort.Strings(order)
	result := make([]Requirement, 0, len(order))
	for _, key := range order {
		result = append(result, byName[key])
	}
	return result, nil
}

// ContentHash returns the sha256 of the manifest's canonical JSON form
// (sources, requires, and both package sections as name → constraint). The
// lockfile records it so staleness is detectable without re-resolving.
func (m *Manifest) ContentHash() string {
	type sourceJSON struct {
		Name      string `json:"name"`
		URL       string `json:"url"`
		VerifySSL bool   `json:"verify_ssl"`
	}

	snapshot := struct {
		Sources  []sourceJSON      `json:"sources"`
		Requires map[string]string `json:"requires"`
		Default  map[string]string `json:"default"`
		Develop  map[string]string `json:"develop"`
	}{
		Requires: map[string]string{},
		Default:  map[string]string{},
		Develop:  map[string]string{},
	}

	for _, s := range m.Sources {
		snapshot.Sources = append(snapshot.Sources, sourceJSON{Name: s.Name, URL: s.URL, VerifySSL: s.VerifySSL})
	}
	if m.Requires.PythonVersion != "" {
		snapshot.Requires["python_version"] = m.Requires.PythonVersion
	}
	for _, req := range m.Packages {
		snapshot.Default[req.NormalizedName()] = req.Specifier.String()
	}
	for _, req := range m.DevPackages {
		snapshot.Develop[req.NormalizedName()] = req.Specifier.String()
	}

	// encoding/json emits map keys sorted, so the form is canonical.
	data, err := json.Marshal(snapshot)
	if err != nil {
		// The snapshot is plain strings and maps; marshalling cannot fail.
		panic(err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
