package storage

import (
	"bytes"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend is the on-disk storage backend, wrapping BadgerDB the
// same way the teacher's BadgerStore does: large memtables and block
// cache tuned for a read-heavy workload, and its own logger disabled
// since this package has no logging framework of its own.
type BadgerBackend struct {
	db *badger.DB
	id string
}

// NewBadgerBackend opens (or creates) a BadgerDB-backed store at path.
func NewBadgerBackend(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	opts.MemTableSize = 128 << 20
	opts.BlockCacheSize = 256 << 20
	opts.IndexCacheSize = 100 << 20
	opts.DetectConflicts = false
	opts.NumCompactors = 4
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open badger at %q: %w", path, err)
	}
	return &BadgerBackend{db: db, id: path}, nil
}

func (b *BadgerBackend) ID() string { return b.id }

// Insert writes every item in the batch as an empty-valued key inside
// one badger.Txn, so a crash mid-batch never leaves a partial write
// visible to readers.
func (b *BadgerBackend) Insert(items []Item) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, item := range items {
			if err := txn.Set(item, nil); err != nil {
				return fmt.Errorf("storage: badger write failed: %w", err)
			}
		}
		return nil
	})
}

// Range returns an iterator over [start, end).
func (b *BadgerBackend) Range(start, end []byte) (Iterator, error) {
	txn := b.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	return &badgerIterator{txn: txn, it: it, start: start, end: end}, nil
}

// Close releases the underlying badger handle.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

// badgerIterator adapts badger's forward-only cursor to the Iterator
// interface. Backward iteration re-seeks to the start bound and walks
// forward up to the end bound into a buffer the first time Prev is
// called, then serves
// subsequent calls off that buffer — badger's own iterator has no
// native reverse mode over a bounded range without opening a second,
// reverse-ordered transaction, and the buffered approach keeps this
// adapter simple at the cost of materializing the range on first
// backward use.
type badgerIterator struct {
	txn   *badger.Txn
	it    *badger.Iterator
	start []byte
	end   []byte

	started bool

	backItems [][]byte
	backPos   int
	backReady bool
}

func (i *badgerIterator) Next() ([]byte, bool, error) {
	if !i.started {
		i.it.Seek(i.start)
		i.started = true
	} else {
		i.it.Next()
	}
	if !i.it.Valid() {
		return nil, false, nil
	}
	key := i.it.Item().KeyCopy(nil)
	if i.end != nil && bytes.Compare(key, i.end) >= 0 {
		return nil, false, nil
	}
	return key, true, nil
}

func (i *badgerIterator) Prev() ([]byte, bool, error) {
	if !i.backReady {
		for it := i.txn.NewIterator(badger.DefaultIteratorOptions); ; {
			it.Seek(i.start)
			for it.Valid() {
				key := it.Item().KeyCopy(nil)
				if i.end != nil && bytes.Compare(key, i.end) >= 0 {
					break
				}
				i.backItems = append(i.backItems, key)
				it.Next()
			}
			it.Close()
			break
		}
		i.backPos = len(i.backItems)
		i.backReady = true
	}
	if i.backPos == 0 {
		return nil, false, nil
	}
	i.backPos--
	return i.backItems[i.backPos], true, nil
}

func (i *badgerIterator) Close() error {
	i.it.Close()
	i.txn.Discard()
	return nil
}
