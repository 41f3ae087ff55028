package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerBackendInsertAndRange(t *testing.T) {
	dir, err := os.MkdirTemp("", "datom-badger-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	b, err := NewBadgerBackend(dir)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Insert([]Item{[]byte("b"), []byte("a"), []byte("c")}))

	it, err := b.Range(nil, []byte{0xFF})
	require.NoError(t, err)
	defer it.Close()

	got := drainForward(t, it)
	require.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, got)
}

func TestBadgerBackendPersistsAcrossReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "datom-badger-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	b, err := NewBadgerBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Insert([]Item{[]byte("persisted")}))
	require.NoError(t, b.Close())

	reopened, err := NewBadgerBackend(dir)
	require.NoError(t, err)
	defer reopened.Close()

	it, err := reopened.Range(nil, []byte{0xFF})
	require.NoError(t, err)
	defer it.Close()

	got := drainForward(t, it)
	require.Equal(t, [][]byte{[]byte("persisted")}, got)
}
