package datom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/datom-go/storage"
)

func newTestConnection(t *testing.T) *Connection {
	t.Helper()
	return NewConnection(storage.NewMemoryBackend("test"))
}

// TestSchemaAndEntityCreation walks through defining a schema attribute
// and then using it to assert facts about a fresh entity, the way a
// caller bootstraps a brand-new database.
func TestSchemaAndEntityCreation(t *testing.T) {
	conn := newTestConnection(t)

	nameAttr := NewAttributeSchema().
		Ident("person/name").
		Doc("a person's full name")
	ageAttr := NewAttributeSchema().
		Ident("person/age").
		ValueType(AttrInteger)

	result, err := conn.Transact(nameAttr.Tx().Append(ageAttr.Tx()))
	require.NoError(t, err)
	// Each builder always emits a cardinality fact plus one per field set:
	// name gets cardinality+ident+doc, age gets cardinality+ident+value-type.
	assert.Len(t, result.Datoms, 6)

	person := NewID()
	tx := NewTransaction().
		Add(Resolved(person), Resolved(nameAttr.ID()), VString("Ada Lovelace")).
		Add(Resolved(person), Resolved(ageAttr.ID()), Int(28))
	_, err = conn.Transact(tx)
	require.NoError(t, err)

	db, err := conn.DB()
	require.NoError(t, err)

	entity := db.Entity(Resolved(person))
	result1, err := entity.Get(Resolved(nameAttr.ID()))
	require.NoError(t, err)
	v, ok := result1.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("Ada Lovelace"), v.V)

	result2, err := entity.Get(Ident("person/age"))
	require.NoError(t, err)
	v2, ok := result2.(EValue)
	require.True(t, ok)
	assert.True(t, ValuesEqual(Int(28), v2.V))
}

func TestRetractRepeatedAttributeErrors(t *testing.T) {
	conn := newTestConnection(t)

	tagsAttr := NewAttributeSchema().Ident("item/tags").Many()
	_, err := conn.Transact(tagsAttr.Tx())
	require.NoError(t, err)

	item := NewID()
	_, err = conn.Transact(NewTransaction().
		Add(Resolved(item), Resolved(tagsAttr.ID()), VString("red")).
		Add(Resolved(item), Resolved(tagsAttr.ID()), VString("blue")))
	require.NoError(t, err)

	_, err = conn.Transact(NewTransaction().Retract(Resolved(item), Resolved(tagsAttr.ID())))
	require.Error(t, err)

	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, TxFailedToRetractRepeatedAttribute, txErr.Kind)
}

func TestRetractNonexistentAttributeErrors(t *testing.T) {
	conn := newTestConnection(t)

	colorAttr := NewAttributeSchema().Ident("item/color")
	_, err := conn.Transact(colorAttr.Tx())
	require.NoError(t, err)

	item := NewID()
	_, err = conn.Transact(NewTransaction().Retract(Resolved(item), Resolved(colorAttr.ID())))
	require.Error(t, err)

	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, TxFailedToRetractNonexistentAttribute, txErr.Kind)
}

func TestAsOfTimeTravel(t *testing.T) {
	conn := newTestConnection(t)

	colorAttr := NewAttributeSchema().Ident("item/color")
	_, err := conn.Transact(colorAttr.Tx())
	require.NoError(t, err)

	item := NewID()
	r1, err := conn.Transact(NewTransaction().Add(Resolved(item), Resolved(colorAttr.ID()), VString("red")))
	require.NoError(t, err)
	tAfterRed := r1.After.T()

	_, err = conn.Transact(NewTransaction().Add(Resolved(item), Resolved(colorAttr.ID()), VString("blue")))
	require.NoError(t, err)

	past := conn.AsOf(tAfterRed)
	result, err := past.Entity(Resolved(item)).Get(Resolved(colorAttr.ID()))
	require.NoError(t, err)
	v, ok := result.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("red"), v.V)

	present, err := conn.DB()
	require.NoError(t, err)
	result, err = present.Entity(Resolved(item)).Get(Resolved(colorAttr.ID()))
	require.NoError(t, err)
	v, ok = result.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("blue"), v.V)
}

func TestRefTraversal(t *testing.T) {
	conn := newTestConnection(t)

	ownerAttr := NewAttributeSchema().Ident("pet/owner").Component()
	nameAttr := NewAttributeSchema().Ident("entity/name")
	_, err := conn.Transact(ownerAttr.Tx().Append(nameAttr.Tx()))
	require.NoError(t, err)

	owner := NewID()
	pet := NewID()
	_, err = conn.Transact(NewTransaction().
		Add(Resolved(owner), Resolved(nameAttr.ID()), VString("Grace")).
		Add(Resolved(pet), Resolved(nameAttr.ID()), VString("Rex")).
		Add(Resolved(pet), Resolved(ownerAttr.ID()), Ref(owner)))
	require.NoError(t, err)

	db, err := conn.DB()
	require.NoError(t, err)

	result, err := db.Entity(Resolved(pet)).Get(Resolved(ownerAttr.ID()))
	require.NoError(t, err)
	ref, ok := result.(ERef)
	require.True(t, ok)
	ownerName, err := ref.E.Get(Resolved(nameAttr.ID()))
	require.NoError(t, err)
	v, ok := ownerName.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("Grace"), v.V)

	reverse, err := db.Entity(Resolved(owner)).ReverseGet(Resolved(ownerAttr.ID()))
	require.NoError(t, err)
	require.Len(t, reverse, 1)
	assert.True(t, reverse[0].Equal(pet))
}

func TestBuiltinBootstrap(t *testing.T) {
	conn := newTestConnection(t)
	db, err := conn.DB()
	require.NoError(t, err)

	result, err := db.Entity(Resolved(BuiltinCardinality)).Get(Resolved(BuiltinIdent))
	require.NoError(t, err)
	v, ok := result.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("db/cardinality"), v.V)
}

func TestTieredBackendThroughConnection(t *testing.T) {
	fast := storage.NewMemoryBackend("fast")
	durable := storage.NewMemoryBackend("durable")
	conn := NewConnection(storage.NewTieredBackend("tiered", fast, durable))

	nameAttr := NewAttributeSchema().Ident("entity/name")
	_, err := conn.Transact(nameAttr.Tx())
	require.NoError(t, err)

	entity := NewID()
	_, err = conn.Transact(NewTransaction().Add(Resolved(entity), Resolved(nameAttr.ID()), VString("tiered")))
	require.NoError(t, err)

	db, err := conn.DB()
	require.NoError(t, err)
	result, err := db.Entity(Resolved(entity)).Get(Resolved(nameAttr.ID()))
	require.NoError(t, err)
	v, ok := result.(EValue)
	require.True(t, ok)
	assert.Equal(t, VString("tiered"), v.V)
}
