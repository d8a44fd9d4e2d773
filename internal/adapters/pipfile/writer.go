package pipfile

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"go.velin.dev/pipfile/internal/core/domain"
)

const filePerm = 0o644

// Save serializes the manifest to path. Re-parsing the output yields an
// equivalent set of (name, constraint) pairs.
func (c *Codec) Save(path string, m *domain.Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
	}
	return nil
}

// Marshal encodes the manifest back to Pipfile TOML.
func Marshal(m *domain.Manifest) ([]byte, error) {
	doc := document{
		Packages:    marshalSection(m.Packages),
		DevPackages: marshalSection(m.DevPackages),
	}

	for _, s := range m.Sources {
		doc.Source = append(doc.Source, sourceDTO{
			Name:      s.Name,
			URL:       s.URL,
			VerifySSL: s.VerifySSL,
		})
	}

	if m.Requires.PythonVersion != "" {
		doc.Requires = &requiresDTO{PythonVersion: m.Requires.PythonVersion}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode manifest")
	}
	return data, nil
}

func marshalSection(reqs []domain.Requirement) map[string]any {
	if len(reqs) == 0 {
		return nil
	}

	section := make(map[string]any, len(reqs))
	for _, req := range reqs {
		// Plain constraints stay in the short string form; markers and index
		// overrides need the table form.
		if req.Marker == nil && req.Index == "" {
			section[req.Name] = req.Specifier.String()
			continue
		}
		section[req.Name] = packageTable{
			Version: req.Specifier.String(),
			Markers: req.Marker.String(),
			Index:   req.Index,
		}
	}
	return section
}
