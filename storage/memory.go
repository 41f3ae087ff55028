package storage

import (
	"bytes"
	"sync/atomic"

	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

// MemoryBackend is an in-memory, persistent-tree storage backend. Each
// committed batch builds a new immutable radix tree from the current
// root and swaps it in with a compare-and-swap; a writer that loses the
// race to a concurrent writer rebuilds from the new root rather than
// silently overwriting it, and is only told to retry once Insert's own
// retry budget is used up. Reads snapshot the current root with a single atomic load,
// so a long-lived Range never observes a partial write.
type MemoryBackend struct {
	id   string
	root atomic.Pointer[iradix.Tree[struct{}]]
}

// NewMemoryBackend constructs an empty in-memory backend.
func NewMemoryBackend(id string) *MemoryBackend {
	b := &MemoryBackend{id: id}
	b.root.Store(iradix.New[struct{}]())
	return b
}

func (b *MemoryBackend) ID() string { return b.id }

// Insert folds every item in the batch into a new tree built from the
// current root, then attempts to CAS it into place. On a lost race
// (another writer committed first) it retries from the fresh root, so
// the only way Insert returns a ConcurrencyError-shaped failure to the
// caller is if the retry budget is exhausted — which in this
// single-process backend only happens under pathological contention.
func (b *MemoryBackend) Insert(items []Item) error {
	const maxRetries = 64
	for attempt := 0; attempt < maxRetries; attempt++ {
		oldRoot := b.root.Load()
		txn := oldRoot.Txn()
		for _, item := range items {
			txn.Insert(item, struct{}{})
		}
		newRoot := txn.Commit()
		if b.root.CompareAndSwap(oldRoot, newRoot) {
			return nil
		}
	}
	return errConcurrency{}
}

// errConcurrency signals that Insert lost every CAS race it attempted.
// Defined locally (rather than importing the root package, which would
// create an import cycle since the root package depends on storage)
// and is recognized by the root package's connection logic via the
// ConcurrencyErrorKind interface below.
type errConcurrency struct{}

func (errConcurrency) Error() string { return "storage: concurrent write conflict" }

// ConcurrencyErrorKind is implemented by any storage error that
// signals a lost compare-and-swap race, so callers outside this
// package can detect it without a direct type dependency.
type ConcurrencyErrorKind interface {
	IsConcurrencyConflict() bool
}

func (errConcurrency) IsConcurrencyConflict() bool { return true }

// Range returns a snapshot-consistent iterator over [start, end). The
// radix tree's own iterator only walks forward, so the range is
// materialized eagerly into a slice against the snapshotted root; the
// snapshot itself is still O(1) (an atomic load of an immutable tree),
// only the walk over the matched keys is eager.
func (b *MemoryBackend) Range(start, end []byte) (Iterator, error) {
	root := b.root.Load()
	var items [][]byte
	it := root.Root().Iterator()
	it.SeekLowerBound(start)
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		if end != nil && bytes.Compare(k, end) >= 0 {
			break
		}
		cp := make([]byte, len(k))
		copy(cp, k)
		items = append(items, cp)
	}
	return &sliceIterator{items: items, pos: -1}, nil
}

// sliceIterator walks a pre-materialized, sorted slice of items
// forward or backward from independent cursors.
type sliceIterator struct {
	items   [][]byte
	pos     int // last index returned by Next, -1 before the first call
	backPos int // positions already returned by Prev, len(items) before the first call
	started bool
}

func (s *sliceIterator) Next() ([]byte, bool, error) {
	next := s.pos + 1
	if next >= len(s.items) {
		return nil, false, nil
	}
	s.pos = next
	return s.items[next], true, nil
}

func (s *sliceIterator) Prev() ([]byte, bool, error) {
	if !s.started {
		s.backPos = len(s.items)
		s.started = true
	}
	prev := s.backPos - 1
	if prev < 0 {
		return nil, false, nil
	}
	s.backPos = prev
	return s.items[prev], true, nil
}

func (s *sliceIterator) Close() error { return nil }
