package badgerchain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chain "github.com/i5heu/ouroboros-chain"
	"github.com/i5heu/ouroboros-chain/internal/kvstore"
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

func openStore(t *testing.T, path string) *kvstore.KeyValStore {
	t.Helper()

	kv, err := kvstore.NewKeyValStore(kvstore.StoreConfig{Path: path})
	require.NoError(t, err)
	return kv
}

func newTestChain(t *testing.T) *BadgerChain {
	t.Helper()

	kv := openStore(t, t.TempDir())
	t.Cleanup(func() { kv.Close() })

	bc, err := New(Config{KV: kv})
	require.NoError(t, err)
	return bc
}

func TestEmptyChain(t *testing.T) {
	bc := newTestChain(t)

	_, ok := bc.Top()
	assert.False(t, ok)

	_, ok = bc.TopType("foo")
	assert.False(t, ok)

	assert.Equal(t, 0, bc.Len())
}

func TestPushLinks(t *testing.T) {
	bc := newTestChain(t)

	p1, err := bc.Push(chain.NewEntry("foo", ""))
	require.NoError(t, err)
	p2, err := bc.Push(chain.NewEntry("bar", ""))
	require.NoError(t, err)
	p3, err := bc.Push(chain.NewEntry("foo", ""))
	require.NoError(t, err)

	_, hasNext := p1.Header().Next()
	assert.False(t, hasNext)

	next, hasNext := p3.Header().Next()
	require.True(t, hasNext)
	assert.Equal(t, p2.Header().Hash(), next)

	_, hasTypeNext := p2.Header().TypeNext()
	assert.False(t, hasTypeNext)

	typeNext, hasTypeNext := p3.Header().TypeNext()
	require.True(t, hasTypeNext)
	assert.Equal(t, p1.Header().Hash(), typeNext)

	top, ok := bc.Top()
	require.True(t, ok)
	assert.True(t, top.Header().Equal(p3.Header()))

	topBar, ok := bc.TopType("bar")
	require.True(t, ok)
	assert.True(t, topBar.Header().Equal(p2.Header()))

	assert.Equal(t, 3, bc.Len())
}

func TestPairsRoundTrip(t *testing.T) {
	bc := newTestChain(t)

	var pushed []chain.Pair
	for _, content := range []string{"a", "b", "c"} {
		p, err := bc.Push(chain.NewEntry("foo", content))
		require.NoError(t, err)
		pushed = append(pushed, p)
	}

	pairs, err := bc.Pairs()
	require.NoError(t, err)
	require.Len(t, pairs, len(pushed))

	for i, p := range pairs {
		assert.Equal(t, pushed[i].Header().Hash(), p.Header().Hash(), "record %d", i)
		assert.Equal(t, pushed[i].Entry().Content(), p.Entry().Content(), "record %d", i)
	}
}

func TestReopenContinuesChain(t *testing.T) {
	dir := t.TempDir()

	kv := openStore(t, dir)
	bc, err := New(Config{KV: kv})
	require.NoError(t, err)

	p1, err := bc.Push(chain.NewEntry("foo", "before"))
	require.NoError(t, err)
	p2, err := bc.Push(chain.NewEntry("bar", "before"))
	require.NoError(t, err)

	require.NoError(t, kv.Close())

	// a fresh instance over the same store continues where it left off
	kv = openStore(t, dir)
	defer kv.Close()

	reopened, err := New(Config{KV: kv})
	require.NoError(t, err)

	assert.Equal(t, 2, reopened.Len())

	top, ok := reopened.Top()
	require.True(t, ok)
	assert.True(t, top.Header().Equal(p2.Header()))

	topFoo, ok := reopened.TopType("foo")
	require.True(t, ok)
	assert.True(t, topFoo.Header().Equal(p1.Header()))

	// links across the restart stay intact
	p3, err := reopened.Push(chain.NewEntry("foo", "after"))
	require.NoError(t, err)

	next, hasNext := p3.Header().Next()
	require.True(t, hasNext)
	assert.Equal(t, p2.Header().Hash(), next)

	typeNext, hasTypeNext := p3.Header().TypeNext()
	require.True(t, hasTypeNext)
	assert.Equal(t, p1.Header().Hash(), typeNext)
}

// the persistent chain must behave exactly like the reference chain
func TestMatchesMemChain(t *testing.T) {
	bc := newTestChain(t)
	mem := chain.NewMemChain()

	entries := []chain.Entry{
		chain.NewEntry("foo", ""),
		chain.NewEntry("bar", "x"),
		chain.NewEntry("foo", "y"),
		chain.NewEntry("baz", ""),
		chain.NewEntry("bar", ""),
	}

	for _, e := range entries {
		memPair, err := mem.Push(e)
		require.NoError(t, err)

		badgerPair, err := bc.Push(e)
		require.NoError(t, err)

		assert.Equal(t, memPair.Header().Hash(), badgerPair.Header().Hash())
	}
}

func TestBulkPushAndRescan(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bulk test in short mode")
	}

	bc := newTestChain(t)
	entryTypes := []string{"post", "profile", "link", "vote"}

	for i := 0; i < 500; i++ {
		e := chain.NewEntry(
			types.EntryType(entryTypes[i%len(entryTypes)]),
			fmt.Sprintf("content-%d", i),
		)
		_, err := bc.Push(e)
		require.NoError(t, err)
	}

	pairs, err := bc.Pairs()
	require.NoError(t, err)
	require.Len(t, pairs, 500)

	typeTops := make(map[string]uint64)
	for i, p := range pairs {
		header := p.Header()
		require.Equal(t, p.Entry().Hash(), header.Entry(), "record %d", i)

		if i > 0 {
			next, ok := header.Next()
			require.True(t, ok, "record %d", i)
			require.Equal(t, pairs[i-1].Header().Hash(), next, "record %d", i)
		}

		if want, ok := typeTops[header.EntryType().String()]; ok {
			typeNext, has := header.TypeNext()
			require.True(t, has, "record %d", i)
			require.Equal(t, want, uint64(typeNext), "record %d", i)
		}
		typeTops[header.EntryType().String()] = uint64(header.Hash())
	}
}

func TestRecordEncodeDecode(t *testing.T) {
	mem := chain.NewMemChain()
	mem.Push(chain.NewEntry("foo", "a"))
	p, err := mem.Push(chain.NewEntry("foo", "b"))
	require.NoError(t, err)

	payload, err := encodeRecord(recordFromPair(p, 1))
	require.NoError(t, err)

	rec, err := decodeRecord(payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Index)

	restored := rec.pair()
	assert.Equal(t, p.Header().Hash(), restored.Header().Hash())
	assert.Equal(t, p.Entry().Hash(), restored.Entry().Hash())
}
