package callbacks

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-webform/pkg/renderarray"
)

type entry struct {
	provider Provider
	trusted  map[string]struct{}
	manifest []string
}

// Registry stores providers by name together with the manifest each one
// declared when it was registered.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]entry
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]entry),
	}
}

// Register adds a provider by its Name(). The trusted manifest is read once
// here; later changes to what the provider returns do not widen it.
// Duplicate names return an error.
func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("callbacks: provider is required")
	}
	name := strings.TrimSpace(provider.Name())
	if name == "" {
		return fmt.Errorf("callbacks: provider name is required")
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("callbacks: provider name %q must not contain %q", name, Separator)
	}

	trusted := make(map[string]struct{})
	manifest := make([]string, 0)
	for _, op := range provider.TrustedCallbacks() {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		if _, ok := provider.Callback(op); !ok {
			return fmt.Errorf("callbacks: provider %q trusts %q but does not implement it", name, op)
		}
		if _, seen := trusted[op]; seen {
			continue
		}
		trusted[op] = struct{}{}
		manifest = append(manifest, op)
	}
	sort.Strings(manifest)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("callbacks: provider %q already registered", name)
	}
	r.providers[name] = entry{provider: provider, trusted: trusted, manifest: manifest}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(provider Provider) {
	if err := r.Register(provider); err != nil {
		panic(err)
	}
}

// Has reports whether a provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[strings.TrimSpace(name)]
	return ok
}

// Names returns a sorted list of provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifest returns a copy of every provider's trusted operations keyed by
// provider name.
func (r *Registry) Manifest() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string, len(r.providers))
	for name, e := range r.providers {
		out[name] = slices.Clone(e.manifest)
	}
	return out
}

// Check reports whether raw names a trusted callback without resolving it.
func (r *Registry) Check(raw string) error {
	_, err := r.Resolve(raw)
	return err
}

// Resolve returns the callback named by raw. The operation must be present in
// the provider's registered manifest.
func (r *Registry) Resolve(raw string) (Callback, error) {
	ref, err := ParseReference(raw)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	e, ok := r.providers[ref.Provider]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, ref.Provider)
	}
	if _, trusted := e.trusted[ref.Operation]; !trusted {
		return nil, fmt.Errorf("%w: %s", ErrUntrustedCallback, ref)
	}

	callback, ok := e.provider.Callback(ref.Operation)
	if !ok || callback == nil {
		return nil, fmt.Errorf("%w: %s is not implemented", ErrUntrustedCallback, ref)
	}
	return callback, nil
}

// Invoke resolves raw and calls it with node.
func (r *Registry) Invoke(raw string, node renderarray.Node) (renderarray.Node, error) {
	callback, err := r.Resolve(raw)
	if err != nil {
		return nil, err
	}
	out, err := callback(node)
	if err != nil {
		return nil, fmt.Errorf("callbacks: %s: %w", strings.TrimSpace(raw), err)
	}
	return out, nil
}
