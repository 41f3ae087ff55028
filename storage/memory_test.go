package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainForward(t *testing.T, it Iterator) [][]byte {
	t.Helper()
	var out [][]byte
	for {
		item, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}

func TestMemoryBackendInsertAndRange(t *testing.T) {
	b := NewMemoryBackend("mem-1")
	require.NoError(t, b.Insert([]Item{[]byte("b"), []byte("a"), []byte("c")}))

	it, err := b.Range(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	got := drainForward(t, it)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, got)
}

func TestMemoryBackendRangeBounds(t *testing.T) {
	b := NewMemoryBackend("mem-1")
	require.NoError(t, b.Insert([]Item{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}))

	it, err := b.Range([]byte("b"), []byte("d"))
	require.NoError(t, err)
	defer it.Close()

	got := drainForward(t, it)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("c")}, got)
}

func TestMemoryBackendPrevWalksBackward(t *testing.T) {
	b := NewMemoryBackend("mem-1")
	require.NoError(t, b.Insert([]Item{[]byte("a"), []byte("b"), []byte("c")}))

	it, err := b.Range(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	item, ok, err := it.Prev()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), item)

	item, ok, err = it.Prev()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("b"), item)
}

func TestMemoryBackendSnapshotIsolation(t *testing.T) {
	b := NewMemoryBackend("mem-1")
	require.NoError(t, b.Insert([]Item{[]byte("a")}))

	it, err := b.Range(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	require.NoError(t, b.Insert([]Item{[]byte("z")}))

	got := drainForward(t, it)
	assert.Equal(t, [][]byte{[]byte("a")}, got)
}

func TestMemoryBackendID(t *testing.T) {
	b := NewMemoryBackend("my-id")
	assert.Equal(t, "my-id", b.ID())
}
