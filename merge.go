package datom

import "bytes"

// Origin tags which side of a merge an item came from.
type Origin int

const (
	OriginA Origin = iota
	OriginB
)

// MergeItem pairs a merged byte-string item with which source
// produced it.
type MergeItem struct {
	Item   []byte
	Origin Origin
}

// ByteIterator is a forward/backward cursor over a sorted sequence of
// byte strings, matching the shape a storage backend's Range returns.
type ByteIterator interface {
	// Next returns the next item in ascending order, or ok=false when
	// exhausted.
	Next() (item []byte, ok bool, err error)
	// Prev returns the next item in descending order, or ok=false when
	// exhausted.
	Prev() (item []byte, ok bool, err error)
}

// MergeIters performs a lazy, double-ended merge of two sorted byte
// streams, tagging each emitted item with its origin. It does not
// deduplicate equal items between the two sources — ties are broken by
// always emitting the A-side item first — since callers differ on
// whether duplicates across sources are meaningful (the tiered storage
// backend wants them collapsed; a plain two-way merge does not).
type MergeIters struct {
	a, b             ByteIterator
	aFront, aBack    []byte
	bFront, bBack    []byte
	aFrontOK, aBackOK bool
	bFrontOK, bBackOK bool
}

// NewMergeIters constructs a merge over two already-sorted iterators.
func NewMergeIters(a, b ByteIterator) *MergeIters {
	return &MergeIters{a: a, b: b}
}

func (m *MergeIters) fillFront() error {
	if m.aFront == nil && !m.aFrontOK {
		item, ok, err := m.a.Next()
		if err != nil {
			return err
		}
		m.aFront, m.aFrontOK = item, ok
	}
	if m.bFront == nil && !m.bFrontOK {
		item, ok, err := m.b.Next()
		if err != nil {
			return err
		}
		m.bFront, m.bFrontOK = item, ok
	}
	return nil
}

func (m *MergeIters) fillBack() error {
	if m.aBack == nil && !m.aBackOK {
		item, ok, err := m.a.Prev()
		if err != nil {
			return err
		}
		m.aBack, m.aBackOK = item, ok
	}
	if m.bBack == nil && !m.bBackOK {
		item, ok, err := m.b.Prev()
		if err != nil {
			return err
		}
		m.bBack, m.bBackOK = item, ok
	}
	return nil
}

// Next returns the next item in ascending order across both sources.
func (m *MergeIters) Next() (MergeItem, bool, error) {
	if err := m.fillFront(); err != nil {
		return MergeItem{}, false, err
	}
	switch {
	case m.aFrontOK && m.bFrontOK:
		if bytes.Compare(m.aFront, m.bFront) <= 0 {
			out := MergeItem{Item: m.aFront, Origin: OriginA}
			m.aFront, m.aFrontOK = nil, false
			return out, true, nil
		}
		out := MergeItem{Item: m.bFront, Origin: OriginB}
		m.bFront, m.bFrontOK = nil, false
		return out, true, nil
	case m.aFrontOK:
		out := MergeItem{Item: m.aFront, Origin: OriginA}
		m.aFront, m.aFrontOK = nil, false
		return out, true, nil
	case m.bFrontOK:
		out := MergeItem{Item: m.bFront, Origin: OriginB}
		m.bFront, m.bFrontOK = nil, false
		return out, true, nil
	default:
		return MergeItem{}, false, nil
	}
}

// Prev returns the next item in descending order across both sources.
func (m *MergeIters) Prev() (MergeItem, bool, error) {
	if err := m.fillBack(); err != nil {
		return MergeItem{}, false, err
	}
	switch {
	case m.aBackOK && m.bBackOK:
		if bytes.Compare(m.aBack, m.bBack) >= 0 {
			out := MergeItem{Item: m.aBack, Origin: OriginA}
			m.aBack, m.aBackOK = nil, false
			return out, true, nil
		}
		out := MergeItem{Item: m.bBack, Origin: OriginB}
		m.bBack, m.bBackOK = nil, false
		return out, true, nil
	case m.aBackOK:
		out := MergeItem{Item: m.aBack, Origin: OriginA}
		m.aBack, m.aBackOK = nil, false
		return out, true, nil
	case m.bBackOK:
		out := MergeItem{Item: m.bBack, Origin: OriginB}
		m.bBack, m.bBackOK = nil, false
		return out, true, nil
	default:
		return MergeItem{}, false, nil
	}
}
