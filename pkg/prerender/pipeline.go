package prerender

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-webform/pkg/callbacks"
	"github.com/goliatone/go-webform/pkg/renderarray"
)

// DefaultMaxDepth bounds how deep Apply descends into a render tree.
const DefaultMaxDepth = 64

// ErrMaxDepth is returned when a render tree nests deeper than allowed.
var ErrMaxDepth = errors.New("prerender: maximum depth exceeded")

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDefinitions adds element definitions to the pipeline.
func WithDefinitions(defs ...Definition) Option {
	return func(p *Pipeline) {
		for _, def := range defs {
			// Invalid definitions are reported by Validate.
			if err := p.definitions.Add(def); err != nil {
				p.invalid = append(p.invalid, err)
			}
		}
	}
}

// WithDefinitionSet merges a loaded definition set into the pipeline.
func WithDefinitionSet(defs Definitions) Option {
	return func(p *Pipeline) {
		if err := p.definitions.Merge(defs); err != nil {
			p.invalid = append(p.invalid, err)
		}
	}
}

// WithLogger sets the logger used for per-callback debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Pipeline) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// Pipeline applies pre-render callbacks to render trees.
type Pipeline struct {
	registry    *callbacks.Registry
	definitions Definitions
	logger      *zap.Logger
	maxDepth    int
	invalid     []error
}

// New constructs a pipeline resolving callbacks through registry.
func New(registry *callbacks.Registry, options ...Option) *Pipeline {
	p := &Pipeline{
		registry:    registry,
		definitions: make(Definitions),
		logger:      zap.NewNop(),
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Definitions returns a copy of the configured element definitions.
func (p *Pipeline) Definitions() Definitions {
	out := make(Definitions, len(p.definitions))
	for elementType, def := range p.definitions {
		out[elementType] = Definition{
			Type:      def.Type,
			PreRender: append([]string(nil), def.PreRender...),
		}
	}
	return out
}

// Validate checks every configured callback reference against the registry.
// All failures are reported together.
func (p *Pipeline) Validate() error {
	if p.registry == nil {
		return errors.New("prerender: callback registry is nil")
	}

	errs := append([]error(nil), p.invalid...)
	for _, elementType := range p.definitions.Types() {
		for _, ref := range p.definitions[elementType].PreRender {
			if err := p.registry.Check(ref); err != nil {
				errs = append(errs, fmt.Errorf("prerender: element %q: %w", elementType, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Apply runs the pre-render callbacks for node and all of its children,
// depth first. Callbacks for an element run before its children are visited
// and each one receives the node returned by the previous one.
func (p *Pipeline) Apply(ctx context.Context, node renderarray.Node) (renderarray.Node, error) {
	if ctx == nil {
		return nil, errors.New("prerender: context is required")
	}
	if p.registry == nil {
		return nil, errors.New("prerender: callback registry is nil")
	}
	if node == nil {
		return nil, fmt.Errorf("prerender: %w: node is nil", renderarray.ErrInvalidArgument)
	}
	return p.apply(ctx, node, "", 0)
}

func (p *Pipeline) apply(ctx context.Context, node renderarray.Node, path string, depth int) (renderarray.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w at %q", ErrMaxDepth, displayPath(path))
	}

	for _, ref := range p.referencesFor(node) {
		p.logger.Debug("invoking pre-render callback",
			zap.String("callback", ref),
			zap.String("path", displayPath(path)),
			zap.String("type", node.String(renderarray.KeyType)),
		)
		out, err := p.registry.Invoke(ref, node)
		if err != nil {
			return nil, fmt.Errorf("prerender: element %q: %w", displayPath(path), err)
		}
		if out == nil {
			return nil, fmt.Errorf("prerender: element %q: callback %s returned a nil node", displayPath(path), ref)
		}
		node = out
	}

	for _, key := range node.Elements() {
		child, _ := node.Child(key)
		processed, err := p.apply(ctx, child, joinPath(path, key), depth+1)
		if err != nil {
			return nil, err
		}
		node[key] = processed
	}
	return node, nil
}

func (p *Pipeline) referencesFor(node renderarray.Node) []string {
	var refs []string
	if elementType := node.String(renderarray.KeyType); elementType != "" {
		refs = append(refs, p.definitions[elementType].PreRender...)
	}
	return append(refs, node.Strings(renderarray.KeyPreRender)...)
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
