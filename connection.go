package datom

import (
	"time"

	"github.com/wbrown/datom-go/storage"
)

// Connection owns a Storage backend exclusively and is the sole writer
// against it. All reads go through immutable Database snapshots
// derived from a Connection; the Connection itself only ever appends.
type Connection struct {
	storage storage.Storage
	id      ID
}

// NewConnection wraps a storage backend as a Connection.
func NewConnection(s storage.Storage) *Connection {
	return &Connection{storage: s, id: NewID()}
}

// ID identifies this connection.
func (c *Connection) ID() ID { return c.id }

// LatestT returns the highest committed transaction id, or 0 if the
// store has never been written to. It scans the transaction-record
// keyspace in reverse and decodes only the last record. How much of the
// range the backend walks to serve that one Prev depends on the
// backend: MemoryBackend and BadgerBackend both materialize the range.
func (c *Connection) LatestT() (uint64, error) {
	start, end := TxRecordRangeAll()
	it, err := c.storage.Range(start, end)
	if err != nil {
		return 0, NewConnectionStorageError(NewMiscStorageError(err))
	}
	defer it.Close()

	item, ok, err := it.Prev()
	if err != nil {
		return 0, NewConnectionStorageError(NewMiscStorageError(err))
	}
	if !ok {
		return 0, nil
	}
	t, _, err := DecodeTxRecordKey(item)
	if err != nil {
		return 0, NewInvalidDataError(err)
	}
	return t, nil
}

// DB returns a snapshot as of the latest committed transaction.
func (c *Connection) DB() (*Database, error) {
	t, err := c.LatestT()
	if err != nil {
		return nil, err
	}
	return c.AsOf(t), nil
}

// AsOf returns a snapshot fixed at transaction id t, regardless of
// what has been committed since.
func (c *Connection) AsOf(t uint64) *Database {
	return &Database{conn: c, t: t}
}

// Transact resolves every fact in tx against the database as it stood
// before this write, assigns the next transaction id, computes each
// resulting datom's index membership, and submits the whole batch —
// the new datoms plus one transaction record — as a single atomic
// Storage.Insert call. There is no partial commit: either every key
// lands or none do.
func (c *Connection) Transact(tx *Transaction) (*TransactionResult, error) {
	before, err := c.DB()
	if err != nil {
		return nil, err
	}
	t := before.t + 1

	datoms, err := tx.Datoms(t, before)
	if err != nil {
		return nil, err
	}

	var batch []storage.Item
	for _, d := range datoms {
		batch = append(batch, EncodeKey(EAVT, d))
		batch = append(batch, EncodeKey(AEVT, d))

		unique, err := attributeIsUnique(before, d.A)
		if err != nil {
			return nil, err
		}
		if unique {
			batch = append(batch, EncodeKey(AVET, d))
		}

		isRef, err := attributeValueTypeIsRef(before, d.A)
		if err != nil {
			return nil, err
		}
		if isRef {
			batch = append(batch, EncodeKey(VAET, d))
		}
	}

	now := time.Now()
	batch = append(batch, EncodeTxRecordKey(t, now.UnixMilli()))

	if err := c.storage.Insert(batch); err != nil {
		if isConcurrencyConflict(err) {
			return nil, NewTxConnectionError(NewConnectionStorageError(NewConcurrencyError()))
		}
		return nil, NewTxConnectionError(NewConnectionStorageError(NewMiscStorageError(err)))
	}

	after := c.AsOf(t)
	return &TransactionResult{
		Connection: c,
		Before:     before,
		After:      after,
		Datoms:     datoms,
	}, nil
}

// attributeIsUnique consults an attribute entity's db/unique value,
// defaulting to false if unset.
func attributeIsUnique(db *Database, attr ID) (bool, error) {
	e := db.Entity(Resolved(attr))
	result, err := e.get(BuiltinUnique, true, true)
	if err != nil {
		return false, err
	}
	v, ok := result.(EValue)
	if !ok {
		return false, nil
	}
	b, ok := v.V.(VBoolean)
	return ok && bool(b), nil
}

// attributeValueTypeIsRef consults an attribute entity's
// db/value-type value, reporting whether it is db.type/ref.
func attributeValueTypeIsRef(db *Database, attr ID) (bool, error) {
	e := db.Entity(Resolved(attr))
	result, err := e.get(BuiltinValueType, true, true)
	if err != nil {
		return false, err
	}
	v, ok := result.(EValue)
	if !ok {
		return false, nil
	}
	vid, ok := v.V.(VID)
	return ok && vid.ID == BuiltinTypeRef, nil
}

func isConcurrencyConflict(err error) bool {
	type concurrencyKind interface {
		IsConcurrencyConflict() bool
	}
	if ck, ok := err.(concurrencyKind); ok {
		return ck.IsConcurrencyConflict()
	}
	return false
}

// TransactionResult reports the outcome of a successful Transact call.
type TransactionResult struct {
	Connection *Connection
	Before     *Database
	After      *Database
	Datoms     []Datom
}
