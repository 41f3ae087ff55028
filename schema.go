package datom

// AttributeType names one of the value types an attribute can declare
// for its db/value-type.
type AttributeType int

const (
	AttrString AttributeType = iota
	AttrInteger
	AttrDecimal
	AttrID
	AttrRef
	AttrBoolean
)

func (t AttributeType) id() ID {
	switch t {
	case AttrString:
		return BuiltinTypeString
	case AttrInteger:
		return BuiltinTypeInteger
	case AttrDecimal:
		return BuiltinTypeDecimal
	case AttrID:
		return BuiltinTypeID
	case AttrRef:
		return BuiltinTypeRef
	case AttrBoolean:
		return BuiltinTypeBoolean
	default:
		return BuiltinTypeString
	}
}

// AttributeSchemaBuilder fluently assembles the facts that define a new
// schema attribute. Calling Tx() turns the accumulated fields into
// FactAdd entries against the schema entity's own id.
type AttributeSchemaBuilder struct {
	id        ID
	ident     *string
	many      bool
	valueType *AttributeType
	doc       *string
	unique    bool
	component bool
}

// NewAttributeSchema starts a builder for a fresh schema attribute.
func NewAttributeSchema() *AttributeSchemaBuilder {
	return &AttributeSchemaBuilder{id: NewID()}
}

// SetID overrides the schema attribute's own id, for callers that need
// a predetermined id (e.g. bootstrapping a fixed schema).
func (b *AttributeSchemaBuilder) SetID(id ID) *AttributeSchemaBuilder {
	b.id = id
	return b
}

// Ident sets the attribute's db/ident.
func (b *AttributeSchemaBuilder) Ident(ident string) *AttributeSchemaBuilder {
	b.ident = &ident
	return b
}

// Many marks the attribute cardinality-many.
func (b *AttributeSchemaBuilder) Many() *AttributeSchemaBuilder {
	b.many = true
	return b
}

// ValueType sets the attribute's declared db/value-type.
func (b *AttributeSchemaBuilder) ValueType(t AttributeType) *AttributeSchemaBuilder {
	b.valueType = &t
	return b
}

// Doc sets the attribute's db/doc.
func (b *AttributeSchemaBuilder) Doc(doc string) *AttributeSchemaBuilder {
	b.doc = &doc
	return b
}

// Unique marks the attribute db/unique.
func (b *AttributeSchemaBuilder) Unique() *AttributeSchemaBuilder {
	b.unique = true
	return b
}

// Component marks the attribute as a sub-component reference. This
// also sets the value type to db.type/ref, since only a reference
// attribute can name a sub-component.
func (b *AttributeSchemaBuilder) Component() *AttributeSchemaBuilder {
	b.component = true
	ref := AttrRef
	b.valueType = &ref
	return b
}

// ID returns the schema attribute's own id.
func (b *AttributeSchemaBuilder) ID() ID { return b.id }

// Tx renders the builder's accumulated fields as addition facts
// against a fresh Transaction.
func (b *AttributeSchemaBuilder) Tx() *Transaction {
	tx := NewTransaction()
	self := Resolved(b.id)

	if b.ident != nil {
		tx.Add(self, Resolved(BuiltinIdent), VString(*b.ident))
	}
	if b.many {
		tx.Add(self, Resolved(BuiltinCardinality), VID{ID: BuiltinCardinalityMany})
	} else {
		tx.Add(self, Resolved(BuiltinCardinality), VID{ID: BuiltinCardinalityOne})
	}
	if b.valueType != nil {
		tx.Add(self, Resolved(BuiltinValueType), VID{ID: b.valueType.id()})
	}
	if b.doc != nil {
		tx.Add(self, Resolved(BuiltinDoc), VString(*b.doc))
	}
	if b.unique {
		tx.Add(self, Resolved(BuiltinUnique), VBoolean(true))
	}
	if b.component {
		tx.Add(self, Resolved(BuiltinIsComponent), VBoolean(true))
	}
	return tx
}
