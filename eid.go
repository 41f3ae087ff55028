package datom

import "fmt"

// EID is an unresolved reference to an entity: either an ID already in
// hand, an ident string to look up, or a unique attribute/value pair
// to look up. Transaction assembly and query inputs both take an EID
// so callers rarely need to resolve an ident by hand before using it.
type EID interface {
	isEID()
	String() string
}

type eidResolved struct{ id ID }

func (eidResolved) isEID() {}
func (e eidResolved) String() string { return e.id.String() }

// Resolved wraps an already-known ID as an EID.
func Resolved(id ID) EID { return eidResolved{id} }

type eidIdent struct{ ident string }

func (eidIdent) isEID() {}
func (e eidIdent) String() string { return e.ident }

// Ident looks up an entity by its db/ident value.
func Ident(ident string) EID { return eidIdent{ident} }

type eidUnique struct {
	attr  EID
	value Value
}

func (eidUnique) isEID() {}
func (e eidUnique) String() string { return fmt.Sprintf("unique(%v, %v)", e.attr, e.value) }

// Unique looks up the single entity that has value for the given
// (unique) attribute.
func Unique(attr EID, value Value) EID { return eidUnique{attr: attr, value: value} }

// notFoundError is a sentinel used internally to distinguish "no
// stored datom" from an actual decode/storage failure, so Resolve can
// turn it into an UnresolvedEID error instead of propagating it as a
// storage failure.
type notFoundError struct{}

func (notFoundError) Error() string { return "datom: not found" }

func isNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// Resolve turns an EID into a concrete ID by looking it up against db.
func Resolve(db *Database, eid EID) (ID, error) {
	switch e := eid.(type) {
	case eidResolved:
		return e.id, nil
	case eidIdent:
		if builtin, ok := builtinEntitiesByIdent[e.ident]; ok {
			if id, ok := builtin[BuiltinID].(VID); ok {
				return id.ID, nil
			}
		}
		id, err := resolveUniqueAttributeValue(db, BuiltinIdent, VString(e.ident))
		if err != nil {
			if isNotFound(err) {
				return ID{}, NewUnresolvedEIDError(eid)
			}
			return ID{}, err
		}
		return id, nil
	case eidUnique:
		attrID, err := Resolve(db, e.attr)
		if err != nil {
			return ID{}, err
		}
		id, err := resolveUniqueAttributeValue(db, attrID, e.value)
		if err != nil {
			if isNotFound(err) {
				return ID{}, NewUnresolvedEIDError(eid)
			}
			return ID{}, err
		}
		return id, nil
	default:
		return ID{}, fmt.Errorf("eid: unknown EID variant %T", eid)
	}
}

// resolveUniqueAttributeValue scans AVET for (attr, value) and returns
// the entity id of the most recent matching datom, respecting
// retraction: if the latest datom for that entity/attribute/value is a
// retraction, the match is treated as not found.
func resolveUniqueAttributeValue(db *Database, attr ID, value Value) (ID, error) {
	it, err := db.DatomsForAttributeValue(attr, value)
	if err != nil {
		return ID{}, err
	}
	defer it.Close()

	var (
		found   bool
		bestT   uint64
		bestID  ID
		bestOp  Op
	)
	for {
		d, ok, err := it.Next()
		if err != nil {
			return ID{}, err
		}
		if !ok {
			break
		}
		if !ValuesEqual(d.V, value) {
			continue
		}
		if !found || d.T >= bestT {
			found = true
			bestT = d.T
			bestID = d.E
			bestOp = d.Op
		}
	}
	if !found || bestOp == OpRetract {
		return ID{}, notFoundError{}
	}
	return bestID, nil
}
