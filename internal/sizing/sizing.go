// Package sizing estimates document byte sizes from a schema tree and
// per-field cardinality statistics. The estimate is a pure function of its
// inputs: the same schema and the same cardinalities always give the same
// size.
package sizing

import (
	"github.com/leengari/shardsim/internal/schema"
)

// DefaultKeyOverhead is the per-field cost of the key/tag bytes stored next
// to every value in a document store.
const DefaultKeyOverhead = 12

// Cardinalities maps an array field name to the expected number of items.
// The map is fixed when a collection enters the catalog; sizing never guesses
// cardinalities from schema titles or field names.
type Cardinalities map[string]int64

// Table maps a scalar type tag to its encoded byte size.
type Table map[string]int64

// DefaultTable returns the scalar sizes used by the reference hardware
// profile. Callers needing different encodings supply their own table.
func DefaultTable() Table {
	return Table{
		"string":     80,
		"number":     8,
		"integer":    8,
		"date":       20,
		"longstring": 200,
	}
}

// Sizer computes document sizes for schema trees.
//
// Unknown scalar tags fail with UnknownTypeError unless DefaultScalarSize is
// set, in which case that one size applies to every unknown tag. Array fields
// without a supplied cardinality use DefaultArrayCardinality, or fail with
// MissingCardinalityError when Strict is set.
type Sizer struct {
	Table                   Table
	KeyOverhead             int64
	DefaultScalarSize       int64 // applies to unknown scalar tags when > 0
	DefaultArrayCardinality int64
	Strict                  bool
}

// NewSizer returns a sizer with the default type table, the default key
// overhead and an array-cardinality fallback of 1.
func NewSizer() *Sizer {
	return &Sizer{
		Table:                   DefaultTable(),
		KeyOverhead:             DefaultKeyOverhead,
		DefaultArrayCardinality: 1,
	}
}

// DocumentSize returns the estimated byte size of one document conforming to
// the given schema. For an object root the size is the sum of its field
// sizes; any other root is sized like a single field.
func (s *Sizer) DocumentSize(node *schema.Node, cards Cardinalities) (int64, error) {
	if err := node.Validate(); err != nil {
		return 0, err
	}
	if node.Kind == schema.KindObject {
		return s.objectBody(node, cards)
	}
	return s.fieldSize("", node, cards)
}

// objectBody sums the field sizes of an object without charging overhead for
// the object itself. The root document and array items are sized this way;
// nested object fields add their own key overhead in fieldSize.
func (s *Sizer) objectBody(node *schema.Node, cards Cardinalities) (int64, error) {
	var total int64
	for _, f := range node.Fields {
		size, err := s.fieldSize(f.Name, f.Node, cards)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// fieldSize returns key overhead plus the value size of one named field.
func (s *Sizer) fieldSize(name string, node *schema.Node, cards Cardinalities) (int64, error) {
	switch node.Kind {
	case schema.KindScalar:
		size, err := s.scalarSize(name, node.Scalar)
		if err != nil {
			return 0, err
		}
		return s.KeyOverhead + size, nil

	case schema.KindObject:
		body, err := s.objectBody(node, cards)
		if err != nil {
			return 0, err
		}
		return s.KeyOverhead + body, nil

	case schema.KindArray:
		card, err := s.cardinality(name, cards)
		if err != nil {
			return 0, err
		}
		unit, err := s.itemUnitSize(name, node.Items, cards)
		if err != nil {
			return 0, err
		}
		return s.KeyOverhead + card*unit, nil

	default:
		return 0, &schema.InvalidNodeError{Path: name, Reason: "unknown node kind"}
	}
}

// itemUnitSize is the size of one array element: object items are sized as a
// bare document body, everything else as a keyed field.
func (s *Sizer) itemUnitSize(name string, item *schema.Node, cards Cardinalities) (int64, error) {
	if item.Kind == schema.KindObject {
		return s.objectBody(item, cards)
	}
	return s.fieldSize(name, item, cards)
}

func (s *Sizer) scalarSize(field, tag string) (int64, error) {
	if size, ok := s.Table[tag]; ok {
		return size, nil
	}
	if s.DefaultScalarSize > 0 {
		return s.DefaultScalarSize, nil
	}
	return 0, &UnknownTypeError{Field: field, Type: tag}
}

func (s *Sizer) cardinality(field string, cards Cardinalities) (int64, error) {
	if card, ok := cards[field]; ok {
		if card < 0 {
			return 0, &NegativeCardinalityError{Field: field, Value: card}
		}
		return card, nil
	}
	if s.Strict {
		return 0, &MissingCardinalityError{Field: field}
	}
	return s.DefaultArrayCardinality, nil
}
