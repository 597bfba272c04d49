// Package html renders processed render trees to HTML markup. It honours the
// errorNoMessage flag: an element with errors always carries the error class
// but only prints its messages when the flag is unset.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-webform/pkg/render"
	"github.com/goliatone/go-webform/pkg/renderarray"
)

const (
	typeSelect      = "select"
	typeTextfield   = "textfield"
	typeSelectOther = "select_other"
	typeFieldset    = "fieldset"
)

// Option configures the Renderer.
type Option func(*Renderer)

// WithPolicy overrides the sanitizer applied to error messages.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithTemplates layers files over the embedded templates. A template missing
// from files (element.tmpl, fieldset.tmpl, select.tmpl, textfield.tmpl) is
// loaded from TemplatesFS.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.files = files
		}
	}
}

// Renderer turns render trees into HTML.
type Renderer struct {
	policy    *bluemonday.Policy
	files     fs.FS
	templates map[string]*pongo2.Template
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a Renderer and compiles its templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	templates, err := loadTemplates(r.files)
	if err != nil {
		return nil, err
	}
	r.templates = templates
	return r, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the MIME type of the rendered output.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render converts node and its children into markup.
func (r *Renderer) Render(ctx context.Context, node renderarray.Node) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if node == nil {
		return nil, fmt.Errorf("html: %w: node is nil", renderarray.ErrInvalidArgument)
	}
	out, err := r.render(ctx, node, "")
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func (r *Renderer) render(ctx context.Context, node renderarray.Node, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if explicit := node.String(renderarray.KeyName); explicit != "" {
		name = explicit
	}

	children := make([]string, 0)
	for _, key := range childOrder(node) {
		child, _ := node.Child(key)
		markup, err := r.render(ctx, child, joinName(name, key))
		if err != nil {
			return "", err
		}
		children = append(children, markup)
	}

	elementType := node.String(renderarray.KeyType)
	errs := render.NormalizeMessages(node.Strings(renderarray.KeyErrors))

	data := pongo2.Context{
		"type":       templateType(elementType),
		"name":       name,
		"title":      node.String(renderarray.KeyTitle),
		"value":      node.String(renderarray.KeyValue),
		"has_errors": len(errs) > 0,
		"children":   children,
		"messages":   r.messages(node, errs),
	}

	tpl := r.templates[templateFor(elementType)]
	if elementType == typeSelect {
		data["options"] = selectOptions(node)
	}

	out, err := tpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("html: render %q: %w", displayName(name), err)
	}
	return out, nil
}

func (r *Renderer) messages(node renderarray.Node, errs []string) []string {
	if len(errs) == 0 || node.Bool(renderarray.KeyErrorNoMessage) {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, message := range errs {
		if cleaned := strings.TrimSpace(r.policy.Sanitize(message)); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// childOrder puts the select before the other input and sorts the rest.
func childOrder(node renderarray.Node) []string {
	keys := node.Elements()
	rank := func(key string) int {
		switch key {
		case renderarray.KeySelect:
			return 0
		case renderarray.KeyOther:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return rank(keys[i]) < rank(keys[j])
	})
	return keys
}

func selectOptions(node renderarray.Node) []option {
	options, ok := node.Child(renderarray.KeyOptions)
	if !ok {
		return nil
	}
	selected := node.String(renderarray.KeyValue)
	values := make([]string, 0, len(options))
	for value := range options {
		values = append(values, value)
	}
	sort.Strings(values)

	out := make([]option, 0, len(values))
	for _, value := range values {
		out = append(out, option{
			Value:    value,
			Label:    options.String(value),
			Selected: value == selected,
		})
	}
	return out
}

func templateFor(elementType string) string {
	switch elementType {
	case typeSelect, typeTextfield:
		return elementType
	case typeSelectOther, typeFieldset:
		return typeFieldset
	default:
		return "element"
	}
}

func templateType(elementType string) string {
	if elementType == "" {
		return "container"
	}
	return strings.ReplaceAll(elementType, "_", "-")
}

func joinName(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "[" + child + "]"
}

func displayName(name string) string {
	if name == "" {
		return "<root>"
	}
	return name
}

func loadTemplates(override fs.FS) (map[string]*pongo2.Template, error) {
	var loaders []pongo2.TemplateLoader
	if override != nil {
		loaders = append(loaders, pongo2.NewFSLoader(override))
	}
	loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))
	set := pongo2.NewSet("webform-html", loaders...)

	out := make(map[string]*pongo2.Template, 4)
	for _, name := range []string{"element", typeFieldset, typeSelect, typeTextfield} {
		tpl, err := set.FromFile(name + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("html: load %s template: %w", name, err)
		}
		out[name] = tpl
	}
	return out, nil
}
