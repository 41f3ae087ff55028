package datom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceByteIterator struct {
	items [][]byte
	pos   int
	back  int
}

func newSliceByteIterator(items ...[]byte) *sliceByteIterator {
	return &sliceByteIterator{items: items, back: len(items)}
}

func (s *sliceByteIterator) Next() ([]byte, bool, error) {
	if s.pos >= s.back {
		return nil, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

func (s *sliceByteIterator) Prev() ([]byte, bool, error) {
	if s.back <= s.pos {
		return nil, false, nil
	}
	s.back--
	return s.items[s.back], true, nil
}

func TestMergeItersNextInterleaves(t *testing.T) {
	a := newSliceByteIterator([]byte("a"), []byte("c"), []byte("e"))
	b := newSliceByteIterator([]byte("b"), []byte("d"), []byte("f"))
	m := NewMergeIters(a, b)

	var got []string
	for {
		item, ok, err := m.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, string(item.Item))
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)
}

func TestMergeItersTieBreaksToA(t *testing.T) {
	a := newSliceByteIterator([]byte("x"))
	b := newSliceByteIterator([]byte("x"))
	m := NewMergeIters(a, b)

	item, ok, err := m.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, OriginA, item.Origin)

	item, ok, err = m.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, OriginB, item.Origin)
}

func TestMergeItersPrevDescends(t *testing.T) {
	a := newSliceByteIterator([]byte("a"), []byte("c"))
	b := newSliceByteIterator([]byte("b"), []byte("d"))
	m := NewMergeIters(a, b)

	var got []string
	for {
		item, ok, err := m.Prev()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, string(item.Item))
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, got)
}

func TestMergeItersEmptySources(t *testing.T) {
	m := NewMergeIters(newSliceByteIterator(), newSliceByteIterator())
	_, ok, err := m.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
