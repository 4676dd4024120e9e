package chain

import (
	"crypto/ed25519"
	"encoding/hex"
	"time"

	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// Clock produces the timestamp stamped into a header at construction
// time. The chain core treats the value as opaque; real implementations
// are expected to emit ISO 8601.
type Clock interface {
	Now() types.Timestamp
}

// Signer produces the agent signature stamped into a header at
// construction time, given the header's signable payload.
type Signer interface {
	Sign(payload []byte) types.Signature
}

// NullClock is the default clock. Timestamping is not implemented yet,
// so it always returns the empty string, keeping header hashes
// reproducible.
type NullClock struct{}

func (NullClock) Now() types.Timestamp {
	return ""
}

// NullSigner is the default signer. Signing is not implemented yet, so
// it always returns the empty string.
type NullSigner struct{}

func (NullSigner) Sign(payload []byte) types.Signature {
	return ""
}

// SystemClock stamps headers with the wall clock in RFC 3339 UTC.
// Chains using it lose hash reproducibility across runs, which is the
// point: the timestamp becomes part of the record's identity.
type SystemClock struct{}

func (SystemClock) Now() types.Timestamp {
	return types.Timestamp(time.Now().UTC().Format(time.RFC3339Nano))
}

// EdSigner signs header payloads with an ed25519 private key and
// returns the signature hex-encoded.
type EdSigner struct {
	key ed25519.PrivateKey
}

func NewEdSigner(key ed25519.PrivateKey) EdSigner {
	return EdSigner{key: key}
}

func (s EdSigner) Sign(payload []byte) types.Signature {
	return types.Signature(hex.EncodeToString(ed25519.Sign(s.key, payload)))
}

// Public returns the verification key for signatures produced by this
// signer.
func (s EdSigner) Public() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}
