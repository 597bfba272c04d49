package render

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

type entry struct {
	renderer Renderer
	aliases  []string
}

// Registry looks renderers up by name or alias. Names and aliases share one
// case-insensitive namespace.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	lookup  map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
		lookup:  make(map[string]string),
	}
}

// Register adds a renderer under its Name() plus any aliases (e.g. "yml"
// for "yaml"). A name or alias that is already taken returns an error and
// nothing is registered.
func (r *Registry) Register(renderer Renderer, aliases ...string) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalize(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	keys := []string{name}
	for _, alias := range aliases {
		alias = normalize(alias)
		if alias == "" || slices.Contains(keys, alias) {
			continue
		}
		keys = append(keys, alias)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		if owner, taken := r.lookup[key]; taken {
			return fmt.Errorf("render: %q already registered by renderer %q", key, owner)
		}
	}
	for _, key := range keys {
		r.lookup[key] = name
	}
	r.entries[name] = entry{renderer: renderer, aliases: keys[1:]}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer, aliases ...string) {
	if err := r.Register(renderer, aliases...); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name or alias.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.lookup[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return r.entries[canonical].renderer, nil
}

// Aliases returns the aliases registered for the renderer called name.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries[r.lookup[normalize(name)]].aliases)
}

// List returns the sorted renderer names, without aliases.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name or alias resolves to a renderer.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lookup[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
