// Package selectother holds the trusted pre-render callbacks for the
// select_other composite element: a select control with an attached "other"
// text input.
package selectother

import (
	"fmt"

	"github.com/goliatone/go-webform/pkg/callbacks"
	"github.com/goliatone/go-webform/pkg/prerender"
	"github.com/goliatone/go-webform/pkg/renderarray"
)

const (
	// ProviderName is the name the callbacks are registered under.
	ProviderName = "selectother"
	// ElementType is the render array type handled by this package.
	ElementType = "select_other"
	// OpRelocateError names RelocateError in references and manifests.
	OpRelocateError = "relocateError"
)

// Callbacks implements callbacks.Provider for the select_other element.
type Callbacks struct{}

var _ callbacks.Provider = Callbacks{}

// Name implements callbacks.Provider.
func (Callbacks) Name() string { return ProviderName }

// TrustedCallbacks implements callbacks.Provider.
func (Callbacks) TrustedCallbacks() []string {
	return []string{OpRelocateError}
}

// Callback implements callbacks.Provider.
func (Callbacks) Callback(name string) (callbacks.Callback, bool) {
	switch name {
	case OpRelocateError:
		return RelocateError, true
	default:
		return nil, false
	}
}

// RelocateError moves the error message flag from the inner select to the
// element itself, so the error is shown next to the select and not repeated
// for the wrapper. The node is mutated in place and returned. A select child
// that is not a mapping is left untouched.
func RelocateError(node renderarray.Node) (renderarray.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("selectother: %w: node is nil", renderarray.ErrInvalidArgument)
	}
	node[renderarray.KeyErrorNoMessage] = true
	if selectNode, ok := node.Child(renderarray.KeySelect); ok {
		delete(selectNode, renderarray.KeyErrorNoMessage)
	}
	return node, nil
}

// RelocateErrorValue is RelocateError for untyped host values. Anything that
// is not a mapping fails with renderarray.ErrInvalidArgument.
func RelocateErrorValue(v any) (renderarray.Node, error) {
	node, err := renderarray.AsNode(v)
	if err != nil {
		return nil, err
	}
	return RelocateError(node)
}

// Definition returns the element definition that runs RelocateError before
// every select_other element is rendered.
func Definition() prerender.Definition {
	return prerender.Definition{
		Type:      ElementType,
		PreRender: []string{callbacks.Reference{Provider: ProviderName, Operation: OpRelocateError}.String()},
	}
}

// Register adds the select_other callbacks to reg.
func Register(reg *callbacks.Registry) error {
	return reg.Register(Callbacks{})
}
