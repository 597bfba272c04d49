package renderarray

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Well-known keys understood by the pipeline and the bundled renderers.
const (
	KeyType           = "type"
	KeyName           = "name"
	KeyTitle          = "title"
	KeyValue          = "value"
	KeyOptions        = "options"
	KeyErrors         = "errors"
	KeyErrorNoMessage = "errorNoMessage"
	KeyPreRender      = "preRender"
	KeySelect         = "select"
	KeyOther          = "other"
)

// ErrInvalidArgument is returned when a value handed to the package is not a
// mapping.
var ErrInvalidArgument = errors.New("renderarray: invalid argument")

// Node is one element of a render tree.
type Node map[string]any

// AsNode converts v into a Node. Only Node and map[string]any are accepted.
func AsNode(v any) (Node, error) {
	switch typed := v.(type) {
	case Node:
		if typed == nil {
			return nil, fmt.Errorf("%w: node is nil", ErrInvalidArgument)
		}
		return typed, nil
	case map[string]any:
		if typed == nil {
			return nil, fmt.Errorf("%w: node is nil", ErrInvalidArgument)
		}
		return Node(typed), nil
	default:
		return nil, fmt.Errorf("%w: expected mapping, got %T", ErrInvalidArgument, v)
	}
}

// Child returns the mapping stored under key. The second result is false when
// the key is missing or holds a non-mapping value.
func (n Node) Child(key string) (Node, bool) {
	raw, ok := n[key]
	if !ok {
		return nil, false
	}
	child, err := AsNode(raw)
	if err != nil {
		return nil, false
	}
	return child, true
}

// Bool reports the boolean stored under key. Missing or non-boolean values
// read as false.
func (n Node) Bool(key string) bool {
	value, _ := n[key].(bool)
	return value
}

// String returns the trimmed string stored under key.
func (n Node) String(key string) string {
	switch value := n[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case fmt.Stringer:
		return strings.TrimSpace(value.String())
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

// Strings returns the values stored under key as a string slice. A single
// string is treated as a one element list. Blank entries are dropped.
func (n Node) Strings(key string) []string {
	var out []string
	switch value := n[key].(type) {
	case string:
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	case []string:
		for _, item := range value {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	case []any:
		for _, item := range value {
			if item == nil {
				continue
			}
			if trimmed := strings.TrimSpace(fmt.Sprint(item)); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// Children returns the sorted keys whose values are mappings.
func (n Node) Children() []string {
	keys := make([]string, 0, len(n))
	for key, value := range n {
		switch value.(type) {
		case Node, map[string]any:
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Elements returns the sorted keys of child elements: mappings other than
// data maps such as options. Callers walking the tree should use this rather
// than Children.
func (n Node) Elements() []string {
	keys := n.Children()
	out := keys[:0]
	for _, key := range keys {
		if IsDataKey(key) {
			continue
		}
		out = append(out, key)
	}
	return out
}

// IsDataKey reports whether key holds element data rather than a child
// element, even when its value is a mapping.
func IsDataKey(key string) bool {
	switch key {
	case KeyOptions:
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the node. Slices and nested mappings are
// copied; other values are shared.
func (n Node) Clone() Node {
	if n == nil {
		return nil
	}
	out := make(Node, len(n))
	for key, value := range n {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Node:
		return typed.Clone()
	case map[string]any:
		return Node(typed).Clone()
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
