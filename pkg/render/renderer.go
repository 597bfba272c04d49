package render

import (
	"context"

	"github.com/goliatone/go-webform/pkg/renderarray"
)

// Renderer converts a processed render tree into a byte representation
// (HTML, YAML, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, node renderarray.Node) ([]byte, error)
}
