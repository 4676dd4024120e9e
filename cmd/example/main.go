package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	chain "github.com/i5heu/ouroboros-chain"
	"github.com/i5heu/ouroboros-chain/internal/badgerchain"
	"github.com/i5heu/ouroboros-chain/internal/kvstore"
)

func main() {
	fmt.Println("Starting ouroboros-chain example")

	// In-memory chain with placeholder providers: empty time and
	// signature, fully reproducible hashes.
	mem := chain.NewMemChain()

	first, _ := mem.Push(chain.NewEntry("post", "hello world"))
	second, _ := mem.Push(chain.NewEntry("profile", "agent zero"))
	third, _ := mem.Push(chain.NewEntry("post", "hello again"))

	fmt.Printf("genesis header:   %s\n", first.Header().Hash())
	fmt.Printf("second header:    %s\n", second.Header().Hash())
	fmt.Printf("third header:     %s\n", third.Header().Hash())

	if next, ok := third.Header().Next(); ok {
		fmt.Printf("third next:       %s (== second header)\n", next)
	}
	if typeNext, ok := third.Header().TypeNext(); ok {
		fmt.Printf("third typeNext:   %s (== genesis header)\n", typeNext)
	}

	if err := mem.Verify(); err != nil {
		log.Fatalf("MemChain verification failed: %s", err)
	}
	fmt.Println("MemChain verified")

	// Same entries against a persistent chain, stamped with the wall
	// clock this time.
	dataDir := filepath.Join(os.TempDir(), fmt.Sprintf("ouroboros-chain-example-%d", time.Now().UnixNano()))
	defer os.RemoveAll(dataDir)

	kv, err := kvstore.NewKeyValStore(kvstore.StoreConfig{
		Path:             dataDir,
		MinimumFreeSpace: 1,
	})
	if err != nil {
		log.Fatalf("Failed to open store: %s", err)
	}
	defer kv.Close()

	persistent, err := badgerchain.New(badgerchain.Config{
		KV:    kv,
		Clock: chain.SystemClock{},
	})
	if err != nil {
		log.Fatalf("Failed to open chain: %s", err)
	}

	for _, entry := range []chain.Entry{
		chain.NewEntry("post", "hello world"),
		chain.NewEntry("profile", "agent zero"),
		chain.NewEntry("post", "hello again"),
	} {
		pair, err := persistent.Push(entry)
		if err != nil {
			log.Fatalf("Push failed: %s", err)
		}
		fmt.Printf("persisted %q record %s at %s\n",
			entry.EntryType(), pair.Header().Hash(), pair.Header().Time())
	}

	top, _ := persistent.Top()
	fmt.Printf("persistent top:   %s\n", top.Header().Hash())
}
