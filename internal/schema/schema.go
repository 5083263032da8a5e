package schema

// Kind classifies a schema node
type Kind int

const (
	KindScalar Kind = iota // leaf field with a primitive type tag
	KindObject             // nested document with named fields
	KindArray              // repeated field with a single item schema
)

// String returns the string representation of the node kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Field is a named child of an object node
type Field struct {
	Name string
	Node *Node
}

// Node is one node of a schema tree. Exactly one of the kind-specific
// members is meaningful:
//   - KindScalar: Scalar holds the primitive type tag ("string", "number", ...)
//   - KindObject: Fields holds the declared fields in declaration order
//   - KindArray:  Items holds the item schema
//
// Title is an optional entity label carried through from the source schema.
// It is kept for catalog naming and debugging only; size and cost decisions
// never depend on it.
type Node struct {
	Kind   Kind
	Title  string
	Scalar string
	Fields []Field
	Items  *Node
}

// NewScalar builds a scalar leaf node
func NewScalar(typeTag string) *Node {
	return &Node{Kind: KindScalar, Scalar: typeTag}
}

// NewObject builds an object node from fields in declaration order
func NewObject(fields ...Field) *Node {
	return &Node{Kind: KindObject, Fields: fields}
}

// NewArray builds an array node around an item schema
func NewArray(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// Field returns the child node with the given name, or nil
func (n *Node) Field(name string) *Node {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// Validate walks the tree and checks that it is a finite tree: every node
// reachable exactly once, arrays carry an item schema, objects carry only
// named fields. A node encountered twice means the schema graph has a cycle
// (or shares subtrees in a way that would make sizing ambiguous).
func (n *Node) Validate() error {
	seen := make(map[*Node]bool)
	return n.validate(seen, "")
}

func (n *Node) validate(seen map[*Node]bool, path string) error {
	if n == nil {
		return &InvalidNodeError{Path: path, Reason: "nil node"}
	}
	if seen[n] {
		return &CycleError{Path: path}
	}
	seen[n] = true

	switch n.Kind {
	case KindScalar:
		if n.Scalar == "" {
			return &InvalidNodeError{Path: path, Reason: "scalar node without a type tag"}
		}
	case KindObject:
		for _, f := range n.Fields {
			if f.Name == "" {
				return &InvalidNodeError{Path: path, Reason: "object field without a name"}
			}
			if err := f.Node.validate(seen, join(path, f.Name)); err != nil {
				return err
			}
		}
	case KindArray:
		if n.Items == nil {
			return &InvalidNodeError{Path: path, Reason: "array node without an item schema"}
		}
		if err := n.Items.validate(seen, join(path, "[]")); err != nil {
			return err
		}
	default:
		return &InvalidNodeError{Path: path, Reason: "unknown node kind"}
	}
	return nil
}

func join(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}
