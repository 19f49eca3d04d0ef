package sources

import (
	"fmt"
	"strings"
)

// Source kinds accepted in configuration.
const (
	KindFile    = "file"
	KindHTTP    = "http"
	KindBuiltin = "builtin"
)

// Spec declares one configured price list source. Specs live in the
// config file; FromSpecs turns them into fetchable sources.
type Spec struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Kind     string `json:"kind"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// FromSpecs materializes configured sources in declaration order,
// skipping disabled entries. Declaration order matters: the catalog
// keeps the first occurrence of a model when sources overlap.
//
// An empty or fully disabled spec list falls back to the built-in
// sample so a fresh install still renders a catalog. A malformed spec
// is a configuration error, not a per-source soft failure.
func FromSpecs(specs []Spec) ([]Source, error) {
	out := make([]Source, 0, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		if spec.Disabled {
			continue
		}

		id := strings.TrimSpace(spec.ID)
		if id == "" {
			return nil, fmt.Errorf("source with empty id")
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate source id %q", id)
		}
		seen[id] = true

		switch spec.Kind {
		case KindFile:
			if strings.TrimSpace(spec.Path) == "" {
				return nil, fmt.Errorf("source %s: file source needs a path", id)
			}
			out = append(out, NewFileSource(id, spec.Name, spec.Path))
		case KindHTTP:
			if strings.TrimSpace(spec.URL) == "" {
				return nil, fmt.Errorf("source %s: http source needs a url", id)
			}
			out = append(out, NewHTTPSource(id, spec.Name, spec.URL))
		case KindBuiltin:
			out = append(out, &SampleSource{id: id})
		default:
			return nil, fmt.Errorf("source %s: unknown kind %q", id, spec.Kind)
		}
	}

	if len(out) == 0 {
		return []Source{NewSampleSource()}, nil
	}
	return out, nil
}
