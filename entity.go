package datom

// EntityResult is what reading an attribute off an Entity produces:
// nothing stored, a single scalar, a reference wrapped as another
// Entity, or (for a cardinality-many attribute) a set of values.
type EntityResult interface {
	isEntityResult()
}

type ENotFound struct{}

func (ENotFound) isEntityResult() {}

type EValue struct{ V Value }

func (EValue) isEntityResult() {}

type ERef struct{ E *Entity }

func (ERef) isEntityResult() {}

// EMany is the result of reading a cardinality-many attribute: one
// entry per currently-asserted value, each wrapped the same way a
// single read would wrap it — EValue for a scalar, ERef for a
// db.type/ref value — so a ref-typed cardinality-many attribute yields
// a mix callers can range over uniformly with the other EntityResult
// variants.
type EMany struct{ Vs []EntityResult }

func (EMany) isEntityResult() {}

// Entity is a live, resolving view over one entity within a Database
// snapshot. It holds an unresolved EID rather than an ID so that
// building one never fails; resolution happens lazily, the first time
// a read is attempted.
type Entity struct {
	db  *Database
	eid EID
}

// ID resolves and returns this entity's ID.
func (e *Entity) ID() (ID, error) {
	return Resolve(e.db, e.eid)
}

// Get reads a single attribute, following the full cardinality/value-type
// resolution path (consulting the attribute's own schema, and falling
// back to the database's builtin schema entities when nothing is
// stored).
func (e *Entity) Get(attr EID) (EntityResult, error) {
	attrID, err := Resolve(e.db, attr)
	if err != nil {
		return nil, err
	}
	return e.get(attrID, false, false)
}

// ReverseGet finds every entity whose attr points at this entity via a
// db.type/ref value, by scanning VAET.
func (e *Entity) ReverseGet(attr EID) ([]ID, error) {
	selfID, err := e.ID()
	if err != nil {
		return nil, err
	}
	attrID, err := Resolve(e.db, attr)
	if err != nil {
		return nil, err
	}

	it, err := e.db.DatomsForValueAttribute(VID{ID: selfID}, attrID)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	type state struct {
		t  uint64
		op Op
	}
	latest := map[ID]state{}
	for {
		d, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if cur, seen := latest[d.E]; !seen || d.T >= cur.t {
			latest[d.E] = state{t: d.T, op: d.Op}
		}
	}

	var out []ID
	for id, s := range latest {
		if s.op == OpAdd {
			out = append(out, id)
		}
	}
	return out, nil
}

// Attributes lists every attribute currently set on this entity (i.e.
// whose most recent datom is an addition, not a retraction).
func (e *Entity) Attributes() ([]ID, error) {
	selfID, err := e.ID()
	if err != nil {
		return nil, err
	}
	it, err := e.db.DatomsForEntity(selfID)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	type state struct {
		t  uint64
		op Op
	}
	latest := map[ID]state{}
	for {
		d, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if cur, seen := latest[d.A]; !seen || d.T >= cur.t {
			latest[d.A] = state{t: d.T, op: d.Op}
		}
	}

	var out []ID
	for a, s := range latest {
		if s.op == OpAdd {
			out = append(out, a)
		}
	}
	return out, nil
}

// get is the recursion-safe read path shared by Get and the schema
// lookups connection.go performs while transacting. skipCardinality
// and skipType short-circuit the cardinality/value-type lookups that
// would otherwise recurse into get itself — used when reading the
// cardinality or value-type of an attribute's own schema, which must
// not recurse into looking up its own cardinality/value-type.
func (e *Entity) get(attrID ID, skipCardinality, skipType bool) (EntityResult, error) {
	selfID, err := e.ID()
	if err != nil {
		return nil, err
	}

	if attrID == BuiltinID {
		return EValue{V: VID{ID: selfID}}, nil
	}

	attrEntity := e.db.Entity(Resolved(attrID))

	cardinalityMany := false
	if !skipCardinality {
		card, err := attrEntity.get(BuiltinCardinality, true, true)
		if err != nil {
			return nil, err
		}
		if v, ok := card.(EValue); ok {
			if vid, ok := v.V.(VID); ok && vid.ID == BuiltinCardinalityMany {
				cardinalityMany = true
			}
		}
	}

	valueTypeIsRef := false
	if !skipType {
		vt, err := attrEntity.get(BuiltinValueType, true, true)
		if err != nil {
			return nil, err
		}
		if v, ok := vt.(EValue); ok {
			if vid, ok := v.V.(VID); ok && vid.ID == BuiltinTypeRef {
				valueTypeIsRef = true
			}
		}
	}

	if cardinalityMany {
		return e.getMany(selfID, attrID, valueTypeIsRef)
	}
	return e.getOne(selfID, attrID, valueTypeIsRef)
}

func (e *Entity) getOne(selfID, attrID ID, valueTypeIsRef bool) (EntityResult, error) {
	it, err := e.db.DatomsForEntityAttribute(selfID, attrID)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var (
		found bool
		bestT uint64
		bestV Value
		bestOp Op
	)
	for {
		d, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !found || d.T >= bestT {
			found = true
			bestT = d.T
			bestV = d.V
			bestOp = d.Op
		}
	}

	if !found || bestOp == OpRetract {
		if result, ok := builtinFallback(selfID, attrID); ok {
			return result, nil
		}
		return ENotFound{}, nil
	}

	return e.wrapValue(bestV, valueTypeIsRef), nil
}

func (e *Entity) getMany(selfID, attrID ID, valueTypeIsRef bool) (EntityResult, error) {
	it, err := e.db.DatomsForEntityAttribute(selfID, attrID)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	type entry struct {
		value Value
		t     uint64
		op    Op
	}
	// Keyed by encoded value bytes since Value isn't comparable.
	byValue := map[string]entry{}
	for {
		d, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		key := string(EncodeValue(d.V))
		if cur, seen := byValue[key]; !seen || d.T >= cur.t {
			byValue[key] = entry{value: d.V, t: d.T, op: d.Op}
		}
	}

	var out []EntityResult
	for _, ent := range byValue {
		if ent.op != OpAdd {
			continue
		}
		out = append(out, e.wrapValue(ent.value, valueTypeIsRef))
	}
	if len(out) == 0 {
		if result, ok := builtinFallback(selfID, attrID); ok {
			if many, ok := result.(EMany); ok {
				return many, nil
			}
			if single, ok := result.(EValue); ok {
				return EMany{Vs: []EntityResult{e.wrapValue(single.V, valueTypeIsRef)}}, nil
			}
		}
		return ENotFound{}, nil
	}
	return EMany{Vs: out}, nil
}

// wrapValue wraps a stored value the same way a cardinality-one read
// does: as an ERef over the referenced entity when the attribute's
// value-type is ref, otherwise as a plain EValue.
func (e *Entity) wrapValue(v Value, valueTypeIsRef bool) EntityResult {
	if valueTypeIsRef {
		if vid, ok := v.(VID); ok {
			return ERef{E: e.db.Entity(Resolved(vid.ID))}
		}
	}
	return EValue{V: v}
}

func builtinFallback(selfID, attrID ID) (EntityResult, bool) {
	entity, ok := builtinEntities[selfID]
	if !ok {
		return nil, false
	}
	v, ok := entity[attrID]
	if !ok {
		return nil, false
	}
	return EValue{V: v}, true
}
