// Package chain implements an append-only, hash-linked source chain:
// the per-agent history log of ouroboros-chain. Every record is
// content-addressed and bound to its predecessor twice, once in global
// chain order and once in same-type chain order, so a record's identity
// depends on both its content and its position.
//
// The package is a pure data structure. It does no locking and no I/O;
// persistent backends live under internal/ and satisfy the same
// SourceChain contract as the in-memory reference implementation.
package chain

import (
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// SourceChain is the contract every chain backend must satisfy, whether
// it keeps records in memory, on disk or somewhere else entirely.
//
// A chain has exactly one writer. Two concurrent Push calls reading the
// same top before either appends would derive the same next link and
// race for the same position, so callers needing concurrency must
// serialize Push externally. Top and TopType are side-effect-free reads
// and may be called freely between writes.
type SourceChain interface {
	// Top returns the most recently appended record, or false if the
	// chain is empty.
	Top() (Pair, bool)

	// TopType returns the most recently appended record whose entry has
	// the given type, or false if no such record exists. Only records
	// already appended at call time are considered.
	TopType(entryType types.EntryType) (Pair, bool)

	// Push links a new record for entry against the current chain state,
	// appends it as the new top and returns it. After Push returns, the
	// record's header next link equals the hash of the header that was
	// top immediately before the call, and Top (and TopType for the
	// entry's type) report the new record.
	//
	// The in-memory chain cannot fail; persistent backends surface
	// storage errors here.
	Push(entry Entry) (Pair, error)
}
