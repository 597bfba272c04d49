// Package yaml renders processed render trees back to YAML.
package yaml

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-webform/pkg/render"
	"github.com/goliatone/go-webform/pkg/renderarray"
)

// Renderer emits the tree as a YAML document with sorted keys.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns a YAML renderer.
func New() Renderer { return Renderer{} }

// Name identifies the renderer.
func (Renderer) Name() string { return "yaml" }

// ContentType reports the MIME type of the rendered output.
func (Renderer) ContentType() string { return "application/yaml" }

// Render encodes node.
func (Renderer) Render(ctx context.Context, node renderarray.Node) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("yaml: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("yaml: %w: node is nil", renderarray.ErrInvalidArgument)
	}
	return renderarray.Encode(node)
}
