package chain

import (
	"fmt"

	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// MemChain is the in-memory reference implementation of SourceChain: an
// ordered, append-only slice of Pairs, index 0 being genesis. The slice
// is owned exclusively by the MemChain instance and is never reordered
// or truncated; the only mutation is append. There is no internal
// locking, the single-writer discipline of SourceChain applies.
type MemChain struct {
	pairs  []Pair
	clock  Clock
	signer Signer
}

var _ SourceChain = (*MemChain)(nil)

// NewMemChain returns an empty chain using the placeholder clock and
// signer, so records carry empty time and signature fields.
func NewMemChain() *MemChain {
	return NewMemChainWithProviders(NullClock{}, NullSigner{})
}

// NewMemChainWithProviders returns an empty chain whose records will be
// stamped by clock and signed by signer at push time.
func NewMemChainWithProviders(clock Clock, signer Signer) *MemChain {
	return &MemChain{
		clock:  clock,
		signer: signer,
	}
}

func (c *MemChain) Top() (Pair, bool) {
	if len(c.pairs) == 0 {
		return Pair{}, false
	}
	return c.pairs[len(c.pairs)-1], true
}

func (c *MemChain) TopType(entryType types.EntryType) (Pair, bool) {
	for i := len(c.pairs) - 1; i >= 0; i-- {
		if c.pairs[i].Entry().EntryType() == entryType {
			return c.pairs[i], true
		}
	}
	return Pair{}, false
}

// Push appends a correctly linked record for entry and returns it. The
// error is always nil; it exists to satisfy the SourceChain contract
// shared with backends that can fail.
func (c *MemChain) Push(entry Entry) (Pair, error) {
	pair := NewPairWithProviders(c, entry, c.clock, c.signer)
	c.pairs = append(c.pairs, pair)
	return pair, nil
}

// Len returns the number of records on the chain.
func (c *MemChain) Len() int {
	return len(c.pairs)
}

// Verify walks the whole chain from genesis and checks every record:
// the header is bound to its entry, next points at the predecessor's
// header and typeNext points at the most recent prior header of the
// same type. A chain built exclusively through Push always verifies.
func (c *MemChain) Verify() error {
	typeTops := make(map[types.EntryType]types.Hash)

	for i, pair := range c.pairs {
		header := pair.Header()

		if header.Entry() != pair.Entry().Hash() {
			return fmt.Errorf("record %d: header bound to entry %s, entry hashes to %s",
				i, header.Entry(), pair.Entry().Hash())
		}

		if header.EntryType() != pair.Entry().EntryType() {
			return fmt.Errorf("record %d: header type %q does not match entry type %q",
				i, header.EntryType(), pair.Entry().EntryType())
		}

		next, hasNext := header.Next()
		if i == 0 {
			if hasNext {
				return fmt.Errorf("genesis record has a next link %s", next)
			}
		} else {
			prevHash := c.pairs[i-1].Header().Hash()
			if !hasNext || next != prevHash {
				return fmt.Errorf("record %d: next link %s does not match predecessor %s",
					i, next, prevHash)
			}
		}

		typeNext, hasTypeNext := header.TypeNext()
		wantTypeNext, wantHas := typeTops[header.EntryType()]
		if hasTypeNext != wantHas || typeNext != wantTypeNext {
			return fmt.Errorf("record %d: typeNext link %s does not match last %q record %s",
				i, typeNext, header.EntryType(), wantTypeNext)
		}

		typeTops[header.EntryType()] = header.Hash()
	}

	return nil
}
