// Package storage provides the byte-level storage abstraction datom-go
// builds its indexes on top of, and the backends that implement it.
package storage

// Item is a single stored key. Storage backends hold no values: every
// piece of information a datom needs is encoded into the key itself
// (see the root package's codec.go), so a backend only needs to
// support ordered key storage and range scans.
type Item = []byte

// Iterator walks a range of items in sorted order, forward or
// backward.
type Iterator interface {
	// Next returns the next item in ascending order, or ok=false when
	// the range is exhausted.
	Next() (item Item, ok bool, err error)
	// Prev returns the next item in descending order, or ok=false when
	// the range is exhausted.
	Prev() (item Item, ok bool, err error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Storage is the byte-level contract every backend implements. Keys
// carry all information; Insert only ever adds keys, since datom-go
// never deletes — retraction is itself a kind of key, not an erasure.
type Storage interface {
	// Range returns an iterator over [start, end) in key order.
	Range(start, end []byte) (Iterator, error)
	// Insert durably adds every item in the batch. It must be atomic:
	// either every item is visible to subsequent Range calls or none
	// are.
	Insert(items []Item) error
	// ID identifies this backend instance, for debugging and for
	// distinguishing sibling backends in a tiered composition.
	ID() string
}
