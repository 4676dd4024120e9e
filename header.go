package chain

import (
	"encoding/binary"

	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// Header is the immutable metadata record that links an Entry into the
// chain. It carries two hash links: next points at the immediately
// preceding header (zero only for the genesis record) and typeNext
// points at the most recent preceding header of the same entry type
// (zero only for the first record of that type).
//
// A header's validity is tied to the exact chain state it was built
// against. If the chain is mutated after a header is constructed but
// before it is pushed, its links are stale and the header must not be
// used. The only safe usage is to construct a header, wrap it in a Pair
// and push it onto the same unmodified chain immediately; Push does
// exactly that internally, so outside of tests headers rarely need to
// be built by hand.
type Header struct {
	entryType types.EntryType
	time      types.Timestamp
	next      types.Hash
	entry     types.Hash
	typeNext  types.Hash
	signature types.Signature
}

// NewHeader builds a header for entry against the current state of c,
// with the placeholder clock and signer (empty time and signature).
func NewHeader(c SourceChain, entry Entry) Header {
	return NewHeaderWithProviders(c, entry, NullClock{}, NullSigner{})
}

// NewHeaderWithProviders builds a header for entry against the current
// state of c, stamping it with the given clock and signing it with the
// given signer. It cannot fail: an empty chain is a valid input and
// produces zero links.
func NewHeaderWithProviders(c SourceChain, entry Entry, clock Clock, signer Signer) Header {
	h := Header{
		entryType: entry.EntryType(),
		time:      clock.Now(),
		entry:     entry.Hash(),
	}

	if top, ok := c.Top(); ok {
		h.next = top.Header().Hash()
	}

	if topType, ok := c.TopType(entry.EntryType()); ok {
		h.typeNext = topType.Header().Hash()
	}

	h.signature = signer.Sign(h.signablePayload())

	return h
}

func (h Header) EntryType() types.EntryType {
	return h.entryType
}

func (h Header) Time() types.Timestamp {
	return h.time
}

// Next returns the hash of the immediately preceding header. The second
// return value is false for the genesis record.
func (h Header) Next() (types.Hash, bool) {
	return h.next, !h.next.IsZero()
}

// Entry returns the hash of the entry this header is bound to.
func (h Header) Entry() types.Hash {
	return h.entry
}

// TypeNext returns the hash of the most recent preceding header with
// the same entry type. The second return value is false for the first
// record of this type.
func (h Header) TypeNext() (types.Hash, bool) {
	return h.typeNext, !h.typeNext.IsZero()
}

func (h Header) Signature() types.Signature {
	return h.signature
}

// Hash returns the identity of the header, a stable digest over all six
// fields in fixed order. Because the link fields participate, the same
// entry headered against different chain states hashes differently.
func (h Header) Hash() types.Hash {
	return types.HashFields(
		h.entryType.Bytes(),
		h.time.Bytes(),
		h.next.Bytes(),
		h.entry.Bytes(),
		h.typeNext.Bytes(),
		h.signature.Bytes(),
	)
}

// Equal reports whether two headers have the same identity hash. This
// is a probabilistic equality contract: with 64-bit digests, two
// distinct headers that collide compare equal. The chain accepts that
// risk, hashes are the identity of a record everywhere else too.
func (h Header) Equal(other Header) bool {
	return h.Hash() == other.Hash()
}

// Validate reports whether the header is valid. Construction via
// NewHeader already enforces every invariant that currently exists, so
// this always holds; it is the hook where signature verification and
// timestamp checks will land once those collaborators are real.
func (h Header) Validate() bool {
	return true
}

// signablePayload is the byte string a signer commits to: the five
// non-signature fields, length-prefixed in field order.
func (h Header) signablePayload() []byte {
	var payload []byte
	lenBytes := make([]byte, 8)
	for _, field := range [][]byte{
		h.entryType.Bytes(),
		h.time.Bytes(),
		h.next.Bytes(),
		h.entry.Bytes(),
		h.typeNext.Bytes(),
	} {
		binary.LittleEndian.PutUint64(lenBytes, uint64(len(field)))
		payload = append(payload, lenBytes...)
		payload = append(payload, field...)
	}
	return payload
}
