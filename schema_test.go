package datom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/datom-go/storage"
)

func TestAttributeSchemaBuilderDefaultsToCardinalityOne(t *testing.T) {
	attr := NewAttributeSchema().Ident("plain/attr")
	tx := attr.Tx()

	conn := NewConnection(storage.NewMemoryBackend("test"))
	result, err := conn.Transact(tx)
	require.NoError(t, err)

	var sawCardinalityOne bool
	for _, d := range result.Datoms {
		if d.A == BuiltinCardinality {
			vid, ok := d.V.(VID)
			require.True(t, ok)
			assert.True(t, vid.ID.Equal(BuiltinCardinalityOne))
			sawCardinalityOne = true
		}
	}
	assert.True(t, sawCardinalityOne)
}

func TestAttributeSchemaBuilderComponentImpliesRef(t *testing.T) {
	attr := NewAttributeSchema().Ident("parent/child").Component()
	tx := attr.Tx()

	conn := NewConnection(storage.NewMemoryBackend("test"))
	result, err := conn.Transact(tx)
	require.NoError(t, err)

	var sawRefType, sawComponent bool
	for _, d := range result.Datoms {
		if d.A == BuiltinValueType {
			vid, ok := d.V.(VID)
			require.True(t, ok)
			assert.True(t, vid.ID.Equal(BuiltinTypeRef))
			sawRefType = true
		}
		if d.A == BuiltinIsComponent {
			b, ok := d.V.(VBoolean)
			require.True(t, ok)
			assert.True(t, bool(b))
			sawComponent = true
		}
	}
	assert.True(t, sawRefType)
	assert.True(t, sawComponent)
}

func TestAttributeSchemaBuilderFullySpecified(t *testing.T) {
	attr := NewAttributeSchema().
		Ident("account/balance").
		ValueType(AttrDecimal).
		Doc("current account balance").
		Unique().
		Many()

	conn := NewConnection(storage.NewMemoryBackend("test"))
	result, err := conn.Transact(attr.Tx())
	require.NoError(t, err)
	assert.Len(t, result.Datoms, 5)
}
