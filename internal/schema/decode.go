package schema

import (
	"encoding/json"
	"sort"
)

// jsonNode mirrors the JSON Schema subset accepted as input:
// "type" plus "properties" for objects and "items" for arrays.
type jsonNode struct {
	Title      string               `json:"title,omitempty"`
	Type       string               `json:"type,omitempty"`
	Properties map[string]*jsonNode `json:"properties,omitempty"`
	Items      *jsonNode            `json:"items,omitempty"`
}

// Decode parses a JSON Schema document into a Node tree.
//
// Scalar type tags are carried through verbatim; whether a tag is known is
// decided by the sizing type table, so the size policy lives in one place.
// Object fields are ordered by name to keep the tree deterministic.
func Decode(data []byte) (*Node, error) {
	var raw jsonNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}
	node, err := build(&raw, "")
	if err != nil {
		return nil, err
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}
	return node, nil
}

func build(raw *jsonNode, path string) (*Node, error) {
	if raw == nil {
		return nil, &DecodeError{Path: path, Reason: "missing schema node"}
	}

	// The original schemas omit "type" on some entity roots; a node carrying
	// "properties" is treated as an object.
	typ := raw.Type
	if typ == "" && raw.Properties != nil {
		typ = "object"
	}

	switch typ {
	case "object":
		names := make([]string, 0, len(raw.Properties))
		for name := range raw.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, 0, len(names))
		for _, name := range names {
			child, err := build(raw.Properties[name], join(path, name))
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: name, Node: child})
		}
		return &Node{Kind: KindObject, Title: raw.Title, Fields: fields}, nil

	case "array":
		if raw.Items == nil {
			return nil, &DecodeError{Path: path, Reason: "array without items"}
		}
		items, err := build(raw.Items, join(path, "[]"))
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindArray, Title: raw.Title, Items: items}, nil

	case "":
		return nil, &DecodeError{Path: path, Reason: "node without a type"}

	default:
		// Any other tag is a scalar; the sizing table decides if it is known.
		return &Node{Kind: KindScalar, Title: raw.Title, Scalar: typ}, nil
	}
}
