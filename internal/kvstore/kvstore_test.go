package kvstore

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *KeyValStore {
	t.Helper()

	kv, err := NewKeyValStore(StoreConfig{
		Path: t.TempDir(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		kv.Close()
	})

	return kv
}

func TestWriteRead(t *testing.T) {
	kv := newTestStore(t)

	require.NoError(t, kv.Write([]byte("key"), []byte("value")))

	value, err := kv.Read([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestReadMissingKey(t *testing.T) {
	kv := newTestStore(t)

	_, err := kv.Read([]byte("nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, badger.ErrKeyNotFound))
}

func TestWriteBatch(t *testing.T) {
	kv := newTestStore(t)

	batch := [][2][]byte{
		{[]byte("a"), []byte("1")},
		{[]byte("b"), []byte("2")},
	}
	require.NoError(t, kv.WriteBatch(batch))

	for _, kvPair := range batch {
		value, err := kv.Read(kvPair[0])
		require.NoError(t, err)
		assert.Equal(t, kvPair[1], value)
	}
}

func TestGetItemsWithPrefix(t *testing.T) {
	kv := newTestStore(t)

	require.NoError(t, kv.Write([]byte("Record:a"), []byte("1")))
	require.NoError(t, kv.Write([]byte("Record:b"), []byte("2")))
	require.NoError(t, kv.Write([]byte("Other:c"), []byte("3")))

	items, err := kv.GetItemsWithPrefix([]byte("Record:"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	// lexicographic key order
	assert.Equal(t, []byte("Record:a"), items[0][0])
	assert.Equal(t, []byte("Record:b"), items[1][0])
}

func TestNoPathConfigured(t *testing.T) {
	_, err := NewKeyValStore(StoreConfig{})
	assert.Error(t, err)
}
