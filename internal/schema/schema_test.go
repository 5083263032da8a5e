package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFlatObject(t *testing.T) {
	data := []byte(`{
		"title": "Stock",
		"type": "object",
		"properties": {
			"IDW": { "type": "integer" },
			"IDP": { "type": "integer" },
			"quantity": { "type": "integer" }
		}
	}`)

	node, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, KindObject, node.Kind)
	assert.Equal(t, "Stock", node.Title)
	assert.Len(t, node.Fields, 3)

	// Fields are ordered by name for determinism.
	assert.Equal(t, "IDP", node.Fields[0].Name)
	assert.Equal(t, "IDW", node.Fields[1].Name)
	assert.Equal(t, "quantity", node.Fields[2].Name)

	idw := node.Field("IDW")
	require.NotNil(t, idw)
	assert.Equal(t, KindScalar, idw.Kind)
	assert.Equal(t, "integer", idw.Scalar)
}

func TestDecodeNestedArrayOfObjects(t *testing.T) {
	data := []byte(`{
		"title": "Product",
		"type": "object",
		"properties": {
			"IDP": { "type": "integer" },
			"orderlines": {
				"type": "array",
				"items": {
					"title": "OrderLine",
					"type": "object",
					"properties": {
						"IDC": { "type": "integer" },
						"quantity": { "type": "integer" }
					}
				}
			}
		}
	}`)

	node, err := Decode(data)
	require.NoError(t, err)

	lines := node.Field("orderlines")
	require.NotNil(t, lines)
	assert.Equal(t, KindArray, lines.Kind)
	require.NotNil(t, lines.Items)
	assert.Equal(t, KindObject, lines.Items.Kind)
	assert.Equal(t, "OrderLine", lines.Items.Title)
	assert.Len(t, lines.Items.Fields, 2)
}

func TestDecodeObjectWithoutExplicitType(t *testing.T) {
	// Entity roots in the source schemas sometimes omit "type": "object".
	data := []byte(`{
		"title": "Warehouse",
		"properties": {
			"IDW": { "type": "integer" }
		}
	}`)

	node, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, KindObject, node.Kind)
}

func TestDecodeUnknownScalarTagIsCarriedThrough(t *testing.T) {
	// Whether a tag is sizable is the sizing table's decision, not the
	// decoder's.
	data := []byte(`{"type": "object", "properties": {"blob": {"type": "geometry"}}}`)

	node, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "geometry", node.Field("blob").Scalar)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"array without items", `{"type": "object", "properties": {"xs": {"type": "array"}}}`},
		{"node without type", `{"type": "object", "properties": {"x": {}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestValidateDetectsCycle(t *testing.T) {
	inner := NewObject()
	node := NewObject(Field{Name: "self", Node: inner})
	// Close the loop: the schema graph is no longer a tree.
	inner.Fields = append(inner.Fields, Field{Name: "back", Node: node})

	err := node.Validate()
	require.Error(t, err)
	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestValidateRejectsMalformedNodes(t *testing.T) {
	t.Run("scalar without tag", func(t *testing.T) {
		err := (&Node{Kind: KindScalar}).Validate()
		assert.Error(t, err)
	})
	t.Run("array without items", func(t *testing.T) {
		err := (&Node{Kind: KindArray}).Validate()
		assert.Error(t, err)
	})
	t.Run("unnamed object field", func(t *testing.T) {
		err := NewObject(Field{Name: "", Node: NewScalar("integer")}).Validate()
		assert.Error(t, err)
	})
}
