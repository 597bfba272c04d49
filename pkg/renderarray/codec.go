package renderarray

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON) document into a Node. Nested mappings become
// Node values so callers can use Child on them. An empty document decodes to
// an empty node.
func Decode(data []byte) (Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Node{}, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("renderarray: decode: %w", err)
	}
	if raw == nil {
		return Node{}, nil
	}

	node, err := AsNode(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("renderarray: decode: %w", err)
	}
	return node, nil
}

// DecodeFile reads and decodes the document at path.
func DecodeFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("renderarray: read %s: %w", path, err)
	}
	node, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return node, nil
}

// Encode renders the node as YAML. Mapping keys are emitted in sorted order.
func Encode(node Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(plain(node)); err != nil {
		return nil, fmt.Errorf("renderarray: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("renderarray: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(Node, len(typed))
		for key, item := range typed {
			out[key] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(Node, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = normalize(item)
		}
		return out
	default:
		return value
	}
}

// plain strips the Node type so the encoder sees ordinary maps.
func plain(value any) any {
	switch typed := value.(type) {
	case Node:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = plain(item)
		}
		return out
	case map[string]any:
		return plain(Node(typed))
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = plain(item)
		}
		return out
	default:
		return value
	}
}
