// Package types defines the small shared types used throughout
// ouroboros-chain: content hashes and the opaque string tags carried by
// chain records.
package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash is a 64-bit content digest. It is computed with xxhash64, which
// is unseeded and produces identical output for identical input across
// runs and across processes, so it can be used for content addressing.
// The zero value doubles as "no hash" for optional links.
type Hash uint64

// IsZero reports whether h is the absent-link sentinel.
func (h Hash) IsZero() bool {
	return h == 0
}

func (h Hash) String() string {
	return hex.EncodeToString(h.Bytes())
}

// Bytes returns the digest as 8 bytes in little-endian order.
func (h Hash) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(h))
	return b
}

func (h *Hash) FromBytes(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("invalid byte length for Hash: %d", len(b))
	}
	*h = Hash(binary.LittleEndian.Uint64(b))
	return nil
}

// HashBytes returns the digest of a single byte slice.
func HashBytes(b []byte) Hash {
	return Hash(xxhash.Sum64(b))
}

// HashFields digests the given fields in order. Every field is written
// length-prefixed so that field boundaries cannot shift: ("ab","c") and
// ("a","bc") produce different digests.
func HashFields(fields ...[]byte) Hash {
	d := xxhash.New()
	lenBytes := make([]byte, 8)
	for _, field := range fields {
		binary.LittleEndian.PutUint64(lenBytes, uint64(len(field)))
		d.Write(lenBytes)
		d.Write(field)
	}
	return Hash(d.Sum64())
}

// EntryType is the caller-chosen category tag of an entry. It is an
// open set: any string is a valid type, including the empty string.
type EntryType string

func (t EntryType) String() string {
	return string(t)
}

func (t EntryType) Bytes() []byte {
	return []byte(t)
}

// Timestamp is an opaque ISO 8601 timestamp string produced by a clock
// collaborator. The default clock produces the empty string.
type Timestamp string

func (ts Timestamp) Bytes() []byte {
	return []byte(ts)
}

// Signature is an opaque signature string produced by a signer
// collaborator. The default signer produces the empty string.
type Signature string

func (s Signature) Bytes() []byte {
	return []byte(s)
}
