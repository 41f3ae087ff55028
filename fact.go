package datom

// Fact is one line of a Transaction before it has been resolved into a
// concrete Datom: an addition, a retraction of a specific value, or a
// retraction that looks up the attribute's current cardinality-one
// value on its own.
type Fact interface {
	// datom resolves this fact against db (the pre-transaction
	// snapshot) into a concrete Datom stamped with transaction id t.
	datom(t uint64, db *Database) (Datom, error)
}

// FactAdd asserts that entity e has value v for attribute a.
type FactAdd struct {
	E, A EID
	V    Value
}

func (f FactAdd) datom(t uint64, db *Database) (Datom, error) {
	e, a, err := resolveEA(db, f.E, f.A)
	if err != nil {
		return Datom{}, err
	}
	return Datom{E: e, A: a, V: f.V, T: t, Op: OpAdd}, nil
}

// FactRetractValue retracts a specific (entity, attribute, value)
// triple, for cardinality-many attributes where more than one value
// could be present.
type FactRetractValue struct {
	E, A EID
	V    Value
}

func (f FactRetractValue) datom(t uint64, db *Database) (Datom, error) {
	e, a, err := resolveEA(db, f.E, f.A)
	if err != nil {
		return Datom{}, err
	}
	return Datom{E: e, A: a, V: f.V, T: t, Op: OpRetract}, nil
}

// FactRetract retracts whatever single value entity e currently holds
// for attribute a. It only applies to cardinality-one attributes: a
// cardinality-many attribute requires FactRetractValue naming the
// value to remove, since there's no single "current value" to infer.
type FactRetract struct {
	E, A EID
}

func (f FactRetract) datom(t uint64, db *Database) (Datom, error) {
	e, a, err := resolveEA(db, f.E, f.A)
	if err != nil {
		return Datom{}, err
	}

	result, err := db.Entity(Resolved(e)).get(a, false, false)
	if err != nil {
		return Datom{}, wrapTxError(err)
	}
	switch r := result.(type) {
	case ENotFound:
		return Datom{}, NewFailedToRetractNonexistentAttributeError(e, a)
	case EMany:
		return Datom{}, NewFailedToRetractRepeatedAttributeError(e, a)
	case EValue:
		return Datom{E: e, A: a, V: r.V, T: t, Op: OpRetract}, nil
	case ERef:
		refID, err := r.E.ID()
		if err != nil {
			return Datom{}, err
		}
		return Datom{E: e, A: a, V: VID{ID: refID}, T: t, Op: OpRetract}, nil
	default:
		return Datom{}, NewFailedToRetractNonexistentAttributeError(e, a)
	}
}

func resolveEA(db *Database, eEID, aEID EID) (ID, ID, error) {
	e, err := Resolve(db, eEID)
	if err != nil {
		return ID{}, ID{}, wrapTxError(err)
	}
	a, err := Resolve(db, aEID)
	if err != nil {
		return ID{}, ID{}, wrapTxError(err)
	}
	return e, a, nil
}

// wrapTxError lifts a QueryError (or any other error) up into the
// transaction error layer.
func wrapTxError(err error) *TransactionError {
	if qe, ok := err.(*QueryError); ok {
		return NewTxQueryError(qe)
	}
	return NewTxConnectionError(NewConnectionStorageError(NewMiscStorageError(err)))
}
