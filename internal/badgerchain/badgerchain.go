// Package badgerchain persists a source chain in BadgerDB. It satisfies
// the same SourceChain contract as the in-memory reference chain, so
// the two are substitutable; the difference is that Push can surface
// storage errors.
package badgerchain

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	chain "github.com/i5heu/ouroboros-chain"
	"github.com/i5heu/ouroboros-chain/internal/kvstore"
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

const (
	prefixRecord  = "Record:"
	keyTop        = "Top:"
	prefixTypeTop = "TypeTop:"
)

var _ chain.SourceChain = (*BadgerChain)(nil)

type Config struct {
	KV     *kvstore.KeyValStore
	Logger *logrus.Logger
	Clock  chain.Clock
	Signer chain.Signer
}

// BadgerChain keeps the record sequence under fixed-width big-endian
// index keys so lexicographic key order equals chain order, plus
// pointer keys for the top record and the top record of every type.
// The pointers and the caches derived from them exist so that Top and
// TopType stay pure reads, as the contract requires.
type BadgerChain struct {
	kv       *kvstore.KeyValStore
	log      *logrus.Logger
	clock    chain.Clock
	signer   chain.Signer
	length   uint64
	top      *chain.Pair
	typeTops map[types.EntryType]chain.Pair
}

// New opens a chain over the given store, rehydrating the top pointers
// written by previous runs. A fresh store yields an empty chain.
func New(conf Config) (*BadgerChain, error) {
	if conf.Logger == nil {
		conf.Logger = logrus.New()
	}
	if conf.Clock == nil {
		conf.Clock = chain.NullClock{}
	}
	if conf.Signer == nil {
		conf.Signer = chain.NullSigner{}
	}

	c := &BadgerChain{
		kv:       conf.KV,
		log:      conf.Logger,
		clock:    conf.Clock,
		signer:   conf.Signer,
		typeTops: make(map[types.EntryType]chain.Pair),
	}

	if err := c.hydrate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *BadgerChain) hydrate() error {
	topBytes, err := c.kv.Read([]byte(keyTop))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading top pointer: %w", err)
	}

	topIndex := binary.BigEndian.Uint64(topBytes)
	topPair, err := c.readRecord(topIndex)
	if err != nil {
		return fmt.Errorf("error reading top record %d: %w", topIndex, err)
	}
	c.top = &topPair
	c.length = topIndex + 1

	typePointers, err := c.kv.GetItemsWithPrefix([]byte(prefixTypeTop))
	if err != nil {
		return fmt.Errorf("error scanning type pointers: %w", err)
	}

	for _, kv := range typePointers {
		entryType := types.EntryType(kv[0][len(prefixTypeTop):])
		pair, err := c.readRecord(binary.BigEndian.Uint64(kv[1]))
		if err != nil {
			return fmt.Errorf("error reading top record for type %q: %w", entryType, err)
		}
		c.typeTops[entryType] = pair
	}

	c.log.WithFields(logrus.Fields{
		"records": c.length,
		"types":   len(c.typeTops),
	}).Info("Chain hydrated from store")

	return nil
}

func (c *BadgerChain) Top() (chain.Pair, bool) {
	if c.top == nil {
		return chain.Pair{}, false
	}
	return *c.top, true
}

func (c *BadgerChain) TopType(entryType types.EntryType) (chain.Pair, bool) {
	pair, ok := c.typeTops[entryType]
	return pair, ok
}

// Push links a record for entry against the current chain state and
// commits record plus pointer keys in one transaction. The caches are
// only updated after the transaction lands, so a failed push leaves the
// chain exactly as it was.
func (c *BadgerChain) Push(entry chain.Entry) (chain.Pair, error) {
	pair := chain.NewPairWithProviders(c, entry, c.clock, c.signer)

	payload, err := encodeRecord(recordFromPair(pair, c.length))
	if err != nil {
		return chain.Pair{}, fmt.Errorf("error encoding record %d: %w", c.length, err)
	}

	indexBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(indexBytes, c.length)

	batch := [][2][]byte{
		{recordKey(c.length), payload},
		{[]byte(keyTop), indexBytes},
		{typeTopKey(entry.EntryType()), indexBytes},
	}
	if err := c.kv.WriteBatch(batch); err != nil {
		return chain.Pair{}, fmt.Errorf("error committing record %d: %w", c.length, err)
	}

	c.top = &pair
	c.typeTops[entry.EntryType()] = pair
	c.length++

	return pair, nil
}

// Len returns the number of records on the chain.
func (c *BadgerChain) Len() int {
	return int(c.length)
}

// Pairs returns every record in chain order, decoded from the store.
func (c *BadgerChain) Pairs() ([]chain.Pair, error) {
	items, err := c.kv.GetItemsWithPrefix([]byte(prefixRecord))
	if err != nil {
		return nil, fmt.Errorf("error scanning records: %w", err)
	}

	pairs := make([]chain.Pair, 0, len(items))
	for _, kv := range items {
		rec, err := decodeRecord(kv[1])
		if err != nil {
			return nil, fmt.Errorf("error decoding record %x: %w", kv[0], err)
		}
		pairs = append(pairs, rec.pair())
	}
	return pairs, nil
}

func (c *BadgerChain) readRecord(index uint64) (chain.Pair, error) {
	value, err := c.kv.Read(recordKey(index))
	if err != nil {
		return chain.Pair{}, err
	}
	rec, err := decodeRecord(value)
	if err != nil {
		return chain.Pair{}, err
	}
	return rec.pair(), nil
}

func recordKey(index uint64) []byte {
	key := make([]byte, len(prefixRecord)+8)
	copy(key, prefixRecord)
	binary.BigEndian.PutUint64(key[len(prefixRecord):], index)
	return key
}

func typeTopKey(entryType types.EntryType) []byte {
	return append([]byte(prefixTypeTop), entryType.Bytes()...)
}
