package callbacks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-webform/pkg/renderarray"
)

// Separator splits a reference into provider and operation names.
const Separator = "::"

var (
	// ErrInvalidReference is returned for references not shaped provider::operation.
	ErrInvalidReference = errors.New("callbacks: invalid reference")
	// ErrUnknownProvider is returned when no provider is registered under the name.
	ErrUnknownProvider = errors.New("callbacks: unknown provider")
	// ErrUntrustedCallback is returned when the operation is absent from the
	// provider's manifest.
	ErrUntrustedCallback = errors.New("callbacks: untrusted callback")
)

// Callback transforms a render node before it is rendered. Implementations
// may mutate node in place and return it.
type Callback func(node renderarray.Node) (renderarray.Node, error)

// Provider exposes a fixed set of callbacks the host is allowed to invoke by
// name.
type Provider interface {
	Name() string
	// TrustedCallbacks lists the operation names the host may invoke.
	TrustedCallbacks() []string
	// Callback returns the implementation for name.
	Callback(name string) (Callback, bool)
}

// Reference identifies a callback as provider::operation.
type Reference struct {
	Provider  string
	Operation string
}

// String renders the reference in provider::operation form.
func (r Reference) String() string {
	return r.Provider + Separator + r.Operation
}

// ParseReference splits raw into its provider and operation parts.
func ParseReference(raw string) (Reference, error) {
	trimmed := strings.TrimSpace(raw)
	provider, operation, ok := strings.Cut(trimmed, Separator)
	provider = strings.TrimSpace(provider)
	operation = strings.TrimSpace(operation)
	if !ok || provider == "" || operation == "" || strings.Contains(operation, Separator) {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	return Reference{Provider: provider, Operation: operation}, nil
}
