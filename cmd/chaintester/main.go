// chaintester pushes a batch of random entries into a persistent chain
// and then verifies every link back to genesis, both from the records
// it pushed and from a fresh decode of the store.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	chain "github.com/i5heu/ouroboros-chain"
	"github.com/i5heu/ouroboros-chain/internal/badgerchain"
	"github.com/i5heu/ouroboros-chain/internal/config"
	"github.com/i5heu/ouroboros-chain/internal/kvstore"
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

var entryTypes = []types.EntryType{"post", "profile", "link", "vote"}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	count := flag.Int("n", 1000, "number of entries to push")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}
	log := conf.NewLogger()

	kv, err := kvstore.NewKeyValStore(kvstore.StoreConfig{
		Path:             conf.Path,
		MinimumFreeSpace: conf.MinimumFreeGB,
		Logger:           log,
	})
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}
	defer kv.Close()

	bc, err := badgerchain.New(badgerchain.Config{KV: kv, Logger: log})
	if err != nil {
		log.Fatalf("Error opening chain: %v", err)
	}

	log.WithFields(logrus.Fields{
		"existing": bc.Len(),
		"pushing":  *count,
	}).Info("Starting push run")

	pushed := make([]chain.Pair, 0, *count)
	for i := 0; i < *count; i++ {
		entry := chain.NewEntry(randomEntryType(), randomContent())
		pair, err := bc.Push(entry)
		if err != nil {
			log.Fatalf("Push %d failed: %v", i, err)
		}
		pushed = append(pushed, pair)
	}

	if err := verifyLinks(pushed); err != nil {
		log.Fatalf("Link verification failed: %v", err)
	}
	log.Info("Pushed records verified in memory")

	// Decode everything back out of badger and check the full sequence.
	pairs, err := bc.Pairs()
	if err != nil {
		log.Fatalf("Error reading records back: %v", err)
	}
	if err := verifyLinks(pairs); err != nil {
		log.Fatalf("Stored chain verification failed: %v", err)
	}

	log.WithField("records", len(pairs)).Info("Stored chain verified")
}

// verifyLinks checks next, typeNext and entry binding over a contiguous
// run of records. The first record may continue an existing chain, so
// its next link is not checked against genesis rules.
func verifyLinks(pairs []chain.Pair) error {
	typeTops := make(map[types.EntryType]types.Hash)

	for i, pair := range pairs {
		header := pair.Header()

		if header.Entry() != pair.Entry().Hash() {
			return fmt.Errorf("record %d: entry hash mismatch", i)
		}

		if i > 0 {
			next, ok := header.Next()
			if !ok || next != pairs[i-1].Header().Hash() {
				return fmt.Errorf("record %d: broken next link", i)
			}

			if want, ok := typeTops[header.EntryType()]; ok {
				typeNext, has := header.TypeNext()
				if !has || typeNext != want {
					return fmt.Errorf("record %d: broken typeNext link", i)
				}
			}
		}

		typeTops[header.EntryType()] = header.Hash()
	}

	return nil
}

func randomEntryType() types.EntryType {
	return entryTypes[randomByte()%byte(len(entryTypes))]
}

func randomContent() string {
	content := make([]byte, 32)
	if _, err := rand.Read(content); err != nil {
		panic(err)
	}
	return hex.EncodeToString(content)
}

func randomByte() byte {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return b[0]
}
