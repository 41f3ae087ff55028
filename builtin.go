package datom

// Builtin schema idents. These are fixed, process-wide constants: they
// are never written to storage and are only consulted as a fallback
// when a snapshot has no stored datom for the attribute in question
// (see Entity.Get in entity.go). Unlike user-defined schema, they
// exist without any corresponding transaction.
var (
	BuiltinID              = ID{24, 94, 9, 88, 239, 123, 79, 142, 164, 26, 97, 11, 90, 10, 88, 237}
	BuiltinIdent           = ID{120, 88, 170, 190, 172, 188, 69, 179, 145, 79, 214, 204, 209, 197, 190, 33}
	BuiltinCardinality     = ID{222, 149, 106, 149, 8, 42, 64, 174, 165, 223, 51, 102, 23, 98, 219, 141}
	BuiltinValueType       = ID{54, 235, 72, 40, 249, 153, 64, 204, 176, 243, 46, 129, 225, 95, 37, 146}
	BuiltinDoc             = ID{58, 240, 124, 36, 63, 29, 67, 103, 171, 82, 223, 71, 245, 64, 64, 108}
	BuiltinUnique          = ID{198, 100, 162, 74, 166, 61, 79, 251, 173, 194, 23, 254, 199, 39, 255, 45}
	BuiltinIsComponent     = ID{150, 14, 118, 162, 220, 30, 72, 207, 151, 143, 82, 253, 116, 132, 117, 72}
	BuiltinCardinalityOne  = ID{24, 28, 223, 221, 192, 79, 77, 57, 175, 68, 137, 21, 60, 89, 65, 71}
	BuiltinCardinalityMany = ID{146, 228, 5, 100, 80, 56, 79, 145, 142, 30, 105, 29, 126, 246, 25, 90}
	BuiltinTypeString      = ID{29, 147, 73, 194, 138, 52, 64, 71, 129, 218, 184, 104, 125, 255, 126, 96}
	BuiltinTypeInteger     = ID{204, 167, 255, 16, 83, 88, 75, 86, 144, 205, 241, 53, 225, 161, 213, 63}
	BuiltinTypeDecimal     = ID{233, 100, 130, 98, 221, 128, 65, 95, 147, 11, 112, 64, 122, 116, 38, 235}
	BuiltinTypeID          = ID{106, 245, 15, 8, 15, 56, 67, 204, 160, 125, 16, 222, 209, 209, 221, 201}
	BuiltinTypeRef         = ID{128, 157, 152, 115, 185, 252, 72, 247, 174, 196, 38, 251, 127, 186, 139, 16}
	BuiltinTypeBoolean     = ID{171, 219, 145, 122, 3, 106, 64, 152, 185, 243, 223, 252, 28, 186, 113, 89}
)

// BuiltinEntity is the attribute map backing one built-in entity.
type BuiltinEntity map[ID]Value

// builtinEntities holds the attribute map for every built-in entity,
// keyed by its own ID.
var builtinEntities = map[ID]BuiltinEntity{
	BuiltinID: {
		BuiltinID:          VID{ID: BuiltinID},
		BuiltinIdent:       VString("db/id"),
		BuiltinValueType:   VID{ID: BuiltinTypeID},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinIdent: {
		BuiltinID:          VID{ID: BuiltinIdent},
		BuiltinIdent:       VString("db/ident"),
		BuiltinUnique:      VBoolean(true),
		BuiltinValueType:   VID{ID: BuiltinTypeString},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinCardinality: {
		BuiltinID:          VID{ID: BuiltinCardinality},
		BuiltinIdent:       VString("db/cardinality"),
		BuiltinValueType:   VID{ID: BuiltinTypeRef},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinValueType: {
		BuiltinID:          VID{ID: BuiltinValueType},
		BuiltinIdent:       VString("db/value-type"),
		BuiltinValueType:   VID{ID: BuiltinTypeRef},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinDoc: {
		BuiltinID:          VID{ID: BuiltinDoc},
		BuiltinIdent:       VString("db/doc"),
		BuiltinValueType:   VID{ID: BuiltinTypeString},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinUnique: {
		BuiltinID:          VID{ID: BuiltinUnique},
		BuiltinIdent:       VString("db/unique"),
		BuiltinValueType:   VID{ID: BuiltinTypeBoolean},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinIsComponent: {
		BuiltinID:          VID{ID: BuiltinIsComponent},
		BuiltinIdent:       VString("db/is-component"),
		BuiltinValueType:   VID{ID: BuiltinTypeBoolean},
		BuiltinCardinality: VID{ID: BuiltinCardinalityOne},
	},
	BuiltinCardinalityOne: {
		BuiltinID:    VID{ID: BuiltinCardinalityOne},
		BuiltinIdent: VString("db.cardinality/one"),
	},
	BuiltinCardinalityMany: {
		BuiltinID:    VID{ID: BuiltinCardinalityMany},
		BuiltinIdent: VString("db.cardinality/many"),
	},
	BuiltinTypeString: {
		BuiltinID:    VID{ID: BuiltinTypeString},
		BuiltinIdent: VString("db.type/string"),
	},
	BuiltinTypeInteger: {
		BuiltinID:    VID{ID: BuiltinTypeInteger},
		BuiltinIdent: VString("db.type/integer"),
	},
	BuiltinTypeDecimal: {
		BuiltinID:    VID{ID: BuiltinTypeDecimal},
		BuiltinIdent: VString("db.type/decimal"),
	},
	BuiltinTypeID: {
		BuiltinID:    VID{ID: BuiltinTypeID},
		BuiltinIdent: VString("db.type/id"),
	},
	BuiltinTypeRef: {
		BuiltinID:    VID{ID: BuiltinTypeRef},
		BuiltinIdent: VString("db.type/ref"),
	},
	BuiltinTypeBoolean: {
		BuiltinID:    VID{ID: BuiltinTypeBoolean},
		BuiltinIdent: VString("db.type/boolean"),
	},
}

// builtinEntitiesByIdent mirrors builtinEntities keyed by each
// entity's db/ident string, for the fast path in EID resolution.
var builtinEntitiesByIdent = func() map[string]BuiltinEntity {
	m := make(map[string]BuiltinEntity, len(builtinEntities))
	for _, e := range builtinEntities {
		if ident, ok := e[BuiltinIdent].(VString); ok {
			m[string(ident)] = e
		}
	}
	return m
}()
