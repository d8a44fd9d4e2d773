// Package pipfile implements the manifest codec for the Pipfile TOML format.
package pipfile

import (
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
	"go.velin.dev/pipfile/internal/core/ports"
)

// Codec implements ports.ManifestCodec for Pipfile-format manifests.
type Codec struct {
	logger ports.Logger
}

var _ ports.ManifestCodec = (*Codec)(nil)

// NewCodec creates a new Pipfile codec.
func NewCodec(logger ports.Logger) *Codec {
	return &Codec{logger: logger}
}

// Load reads and parses the manifest at path, validating its schema.
func (c *Codec) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if len(m.Sources) == 0 {
		// Parsing succeeds without sources; resolution will not.
		c.logger.Warn("manifest declares no package sources")
	}
	return m, nil
}

// Parse decodes manifest bytes into the domain model.
func Parse(data []byte) (*domain.Manifest, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	m := &domain.Manifest{}

	for _, s := range doc.Source {
		m.Sources = append(m.Sources, domain.Source{
			Name:      s.Name,
			URL:       s.URL,
			VerifySSL: s.VerifySSL,
		})
	}

	var err error
	if m.Packages, err = parseSection(doc.Packages, false); err != nil {
		return nil, err
	}
	if m.DevPackages, err = parseSection(doc.DevPackages, true); err != nil {
		return nil, err
	}

	if doc.Requires != nil {
		m.Requires.PythonVersion = doc.Requires.PythonVersion
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseSection converts one packages table. Entries come back in name order:
// TOML tables carry no usable ordering and the manifest's semantics are a
// set, not a sequence.
func parseSection(entries map[string]any, dev bool) ([]domain.Requirement, error) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	reqs := make([]domain.Requirement, 0, len(names))
	for _, name := range names {
		req, err := parseEntry(name, entries[name], dev)
		if err != nil {
			return nil, zerr.With(err, "package", name)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func parseEntry(name string, value any, dev bool) (domain.Requirement, error) {
	req := domain.Requirement{Name: name, Dev: dev}

	switch v := value.(type) {
	case string:
		spec, err := domain.ParseSpecifierSet(v)
		if err != nil {
			return domain.Requirement{}, err
		}
		req.Specifier = spec
		return req, nil

	case map[string]any:
		return parseTableEntry(req, v)

	default:
		return domain.Requirement{}, zerr.With(zerr.New("package entry must be a string or table"), "entry", name)
	}
}

func parseTableEntry(req domain.Requirement, table map[string]any) (domain.Requirement, error) {
	if version, ok := table["version"].(string); ok {
		spec, err := domain.ParseSpecifierSet(version)
		if err != nil {
			return domain.Requirement{}, err
		}
		req.Specifier = spec
	}

	if index, ok := table["index"].(string); ok {
		req.Index = index
	}

	// Marker clauses come either from an explicit markers key or from bare
	// platform keys; both forms combine with "and".
	clauses := []string{}
	if markers, ok := table["markers"].(string); ok && markers != "" {
		clauses = append(clauses, markers)
	}
	for _, key := range platformKeys {
		predicate, ok := table[key].(string)
		if !ok {
			continue
		}
		clauses = append(clauses, key+" "+strings.TrimSpace(predicate))
	}

	if len(clauses) > 0 {
		marker, err := domain.ParseMarker(strings.Join(clauses, " and "))
		if err != nil {
			return domain.Requirement{}, err
		}
		req.Marker = marker
	}

	return req, nil
}
