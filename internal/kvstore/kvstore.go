// Package kvstore wraps BadgerDB behind the small key-value surface the
// chain's persistent backend needs.
package kvstore

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

type StoreConfig struct {
	Path             string // directory for the badger value log and LSM tree
	MinimumFreeSpace int    // in GB, refuse to open below this
	Logger           *logrus.Logger
}

type KeyValStore struct {
	config   StoreConfig
	badgerDB *badger.DB
	log      *logrus.Logger
}

func NewKeyValStore(config StoreConfig) (*KeyValStore, error) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	if config.Path == "" {
		return nil, fmt.Errorf("kvstore: no path configured")
	}

	if err := os.MkdirAll(config.Path, 0o755); err != nil {
		return nil, fmt.Errorf("error creating store directory: %w", err)
	}

	if err := checkFreeSpace(config.Path, config.MinimumFreeSpace, config.Logger); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(config.Path)
	opts.Logger = nil
	opts.SyncWrites = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening badger at %s: %w", config.Path, err)
	}

	return &KeyValStore{
		config:   config,
		badgerDB: db,
		log:      config.Logger,
	}, nil
}

func (k *KeyValStore) Write(key []byte, value []byte) error {
	err := k.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("error writing key %x: %w", key, err)
	}
	return nil
}

// WriteBatch writes all key-value pairs in one transaction; either the
// whole batch lands or none of it does.
func (k *KeyValStore) WriteBatch(batch [][2][]byte) error {
	err := k.badgerDB.Update(func(txn *badger.Txn) error {
		for _, kv := range batch {
			if err := txn.Set(kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error writing batch of %d keys: %w", len(batch), err)
	}
	return nil
}

// Read returns the value stored under key. The returned error wraps
// badger.ErrKeyNotFound for missing keys so callers can test for it.
func (k *KeyValStore) Read(key []byte) ([]byte, error) {
	var value []byte
	err := k.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error reading key %x: %w", key, err)
	}
	return value, nil
}

// GetItemsWithPrefix returns all key-value pairs whose key starts with
// the given prefix, in lexicographic key order.
func (k *KeyValStore) GetItemsWithPrefix(prefix []byte) ([][2][]byte, error) {
	var keysAndValues [][2][]byte
	err := k.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			keysAndValues = append(keysAndValues, [2][]byte{key, value})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning prefix %q: %w", prefix, err)
	}
	return keysAndValues, nil
}

func (k *KeyValStore) Sync() error {
	if err := k.badgerDB.Sync(); err != nil {
		return fmt.Errorf("error syncing db: %w", err)
	}
	return nil
}

func (k *KeyValStore) Close() error {
	if err := k.badgerDB.Sync(); err != nil {
		k.log.Errorf("Error syncing db on close: %v", err)
	}
	return k.badgerDB.Close()
}
