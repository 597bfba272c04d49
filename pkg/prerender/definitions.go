package prerender

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition binds a render array type to the callbacks run before it renders.
type Definition struct {
	Type      string   `yaml:"-"`
	PreRender []string `yaml:"preRender"`
}

// Definitions indexes element definitions by type.
type Definitions map[string]Definition

type definitionsDocument struct {
	Elements map[string]Definition `yaml:"elements"`
}

// LoadDefinitions parses a YAML document of the form:
//
//	elements:
//	  select_other:
//	    preRender:
//	      - selectother::relocateError
func LoadDefinitions(data []byte) (Definitions, error) {
	defs := make(Definitions)
	if len(bytes.TrimSpace(data)) == 0 {
		return defs, nil
	}

	var doc definitionsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("prerender: parse definitions: %w", err)
	}

	for rawType, def := range doc.Elements {
		elementType := strings.TrimSpace(rawType)
		if elementType == "" {
			return nil, fmt.Errorf("prerender: definitions contain an empty element type")
		}
		def.Type = elementType
		if err := defs.Add(def); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// LoadDefinitionsFile reads and parses the definitions file at path.
func LoadDefinitionsFile(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prerender: read %s: %w", path, err)
	}
	defs, err := LoadDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return defs, nil
}

// Add stores def. Adding a type twice appends the callbacks in order; a
// reference already listed for the type is not added again.
func (d Definitions) Add(def Definition) error {
	elementType := strings.TrimSpace(def.Type)
	if elementType == "" {
		return fmt.Errorf("prerender: definition type is required")
	}

	existing := d[elementType]
	existing.Type = elementType

	seen := make(map[string]struct{}, len(existing.PreRender)+len(def.PreRender))
	for _, ref := range existing.PreRender {
		seen[ref] = struct{}{}
	}
	for _, ref := range def.PreRender {
		trimmed := strings.TrimSpace(ref)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		existing.PreRender = append(existing.PreRender, trimmed)
	}
	d[elementType] = existing
	return nil
}

// Merge copies every definition from other into d.
func (d Definitions) Merge(other Definitions) error {
	for _, elementType := range other.Types() {
		if err := d.Add(other[elementType]); err != nil {
			return err
		}
	}
	return nil
}

// Types returns the sorted element types.
func (d Definitions) Types() []string {
	types := make([]string, 0, len(d))
	for elementType := range d {
		types = append(types, elementType)
	}
	sort.Strings(types)
	return types
}
