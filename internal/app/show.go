package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.velin.dev/pipfile/internal/core/domain"
)

// Output formats accepted by Show.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ShowOptions controls what Show lists and how.
type ShowOptions struct {
	// Dev includes the dev-packages section.
	Dev bool

	// All disables marker filtering and lists every declared entry.
	All bool

	// Format is one of text, json, yaml.
	Format string
}

// ShowEntry is one listed requirement.
type ShowEntry struct {
	Name       string `json:"name" yaml:"name"`
	Constraint string `json:"constraint" yaml:"constraint"`
	Section    string `json:"section" yaml:"section"`
	Markers    string `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// Show lists the manifest's requirements. Unless opts.All is set, entries
// whose platform predicate fails in the current environment are excluded,
// exactly as resolution would exclude them.
func (a *App) Show(_ context.Context, manifestPath string, w io.Writer, opts ShowOptions) error {
	m, err := a.codec.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	env := a.markerEnvironment(m)
	entries := []ShowEntry{}

	appendSection := func(reqs []domain.Requirement, section string) {
		for _, req := range reqs {
			if !opts.All && !req.Marker.Evaluate(env) {
				continue
			}
			entries = append(entries, ShowEntry{
				Name:       req.NormalizedName(),
				Constraint: req.Specifier.String(),
				Section:    section,
				Markers:    req.Marker.String(),
			})
		}
	}

	appendSection(m.Packages, "default")
	if opts.Dev {
		appendSection(m.DevPackages, "develop")
	}

	switch opts.Format {
	case "", FormatText:
		return renderText(w, entries)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(entries)
	default:
		return zerr.With(zerr.New("unknown output format"), "format", opts.Format)
	}
}

func renderText(w io.Writer, entries []ShowEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		markers := e.Markers
		if markers != "" {
			markers = "; " + markers
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%s\n", e.Name, e.Constraint, e.Section, markers)
	}
	return tw.Flush()
}
