package beanstalk

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrMalformedDocument is returned when a statistics or listing body does
// not match any of the three shapes the protocol emits.
var ErrMalformedDocument = errors.New("beanstalk: malformed document")

// DocumentKind identifies which of the three permitted shapes a decoded
// document has.
type DocumentKind int

const (
	DocumentScalar DocumentKind = iota + 1
	DocumentList
	DocumentMap
)

// Document is the decoded form of a statistics or listing body. The
// protocol emits a restricted subset of YAML: a single scalar, a flat list
// of scalars, or a flat mapping of scalar keys to scalar values. Exactly
// one of Scalar, List, or Map is populated, according to Kind.
//
// Scalar values are preserved exactly as their text on the wire; use Get
// and Int for typed access to mapping entries.
type Document struct {
	Kind   DocumentKind
	Scalar string
	List   []string
	Map    map[string]string
}

// DecodeDocument decodes a body into a Document. Any document outside the
// permitted shapes, including nested structures, fails with an error
// wrapping ErrMalformedDocument.
func DecodeDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
		}
		return &Document{Kind: DocumentScalar, Scalar: node.Value}, nil

	case yaml.SequenceNode:
		list := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: list holds a non-scalar value", ErrMalformedDocument)
			}
			list = append(list, item.Value)
		}
		return &Document{Kind: DocumentList, List: list}, nil

	case yaml.MappingNode:
		m := make(map[string]string, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: mapping holds a non-scalar key", ErrMalformedDocument)
			}
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: value for key %q is not a scalar", ErrMalformedDocument, key.Value)
			}
			m[key.Value] = value.Value
		}
		return &Document{Kind: DocumentMap, Map: m}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported document shape", ErrMalformedDocument)
	}
}

// Get returns the value for a key of a mapping document.
func (d *Document) Get(key string) (string, bool) {
	value, ok := d.Map[key]
	return value, ok
}

// Int returns the value for a key of a mapping document, parsed as an
// integer. Returns false when the key is absent or its value is not an
// integer.
func (d *Document) Int(key string) (int64, bool) {
	value, ok := d.Map[key]
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Keys returns the sorted keys of a mapping document.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Map))
	for key := range d.Map {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
