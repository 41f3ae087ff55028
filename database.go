package datom

// Database is an immutable snapshot of a Connection fixed at a
// particular transaction id. It never pre-materializes anything: every
// method here derives a filtered range scan over the connection's
// storage on demand.
type Database struct {
	conn *Connection
	t    uint64
}

// T returns the transaction id this snapshot is fixed at.
func (db *Database) T() uint64 { return db.t }

// Connection returns the connection this snapshot was derived from.
func (db *Database) Connection() *Connection { return db.conn }

// datomIterator wraps a raw key-range scan, decoding each key into a
// Datom and filtering out anything committed after the snapshot's t. A
// key that fails to decode terminates the scan with an InvalidData
// error rather than being skipped: malformed stored data is signaled,
// never silently dropped.
type datomIterator struct {
	inner interface {
		Next() ([]byte, bool, error)
		Prev() ([]byte, bool, error)
		Close() error
	}
	index Index
	t     uint64
}

func (it *datomIterator) Next() (Datom, bool, error) {
	for {
		key, ok, err := it.inner.Next()
		if err != nil {
			return Datom{}, false, err
		}
		if !ok {
			return Datom{}, false, nil
		}
		d, err := DecodeKey(it.index, key)
		if err != nil {
			return Datom{}, false, NewInvalidDataError(err)
		}
		if d.T > it.t {
			continue
		}
		return d, true, nil
	}
}

func (it *datomIterator) Prev() (Datom, bool, error) {
	for {
		key, ok, err := it.inner.Prev()
		if err != nil {
			return Datom{}, false, err
		}
		if !ok {
			return Datom{}, false, nil
		}
		d, err := DecodeKey(it.index, key)
		if err != nil {
			return Datom{}, false, NewInvalidDataError(err)
		}
		if d.T > it.t {
			continue
		}
		return d, true, nil
	}
}

func (it *datomIterator) Close() error { return it.inner.Close() }

func (db *Database) scan(index Index, start, end []byte) (*datomIterator, error) {
	raw, err := db.conn.storage.Range(start, end)
	if err != nil {
		return nil, NewConnectionStorageError(NewMiscStorageError(err))
	}
	return &datomIterator{inner: raw, index: index, t: db.t}, nil
}

// Datoms scans an entire index.
func (db *Database) Datoms(index Index) (*datomIterator, error) {
	start, end := IndexPrefixRange(index)
	return db.scan(index, start, end)
}

// DatomsForEntity scans EAVT restricted to a single entity.
func (db *Database) DatomsForEntity(e ID) (*datomIterator, error) {
	start, end := EAVTEntityRange(e)
	return db.scan(EAVT, start, end)
}

// DatomsForEntityAttribute scans EAVT restricted to a single
// entity/attribute pair.
func (db *Database) DatomsForEntityAttribute(e, a ID) (*datomIterator, error) {
	start, end := EAVTEntityAttributeRange(e, a)
	return db.scan(EAVT, start, end)
}

// DatomsForAttributeValue scans AVET restricted to a single
// attribute/value pair.
func (db *Database) DatomsForAttributeValue(a ID, v Value) (*datomIterator, error) {
	start, end := AVETAttributeValueRange(a, v)
	return db.scan(AVET, start, end)
}

// DatomsForValueAttribute scans VAET restricted to a single
// value/attribute pair.
func (db *Database) DatomsForValueAttribute(v Value, a ID) (*datomIterator, error) {
	start, end := VAETValueAttributeRange(v, a)
	return db.scan(VAET, start, end)
}

// Entity resolves eid against this snapshot and returns a live entity
// view over it. Resolution failure is deferred: it surfaces the first
// time the caller tries to read through the returned Entity, mirroring
// how a Database handle itself never fails to construct.
func (db *Database) Entity(eid EID) *Entity {
	return &Entity{db: db, eid: eid}
}
