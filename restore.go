package chain

import (
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// RestoreHeader rebuilds a Header from its persisted fields. It is
// meant for storage backends that serialize records and must produce
// the exact same identity hash after a round trip; the fields are taken
// as given, nothing is re-derived. Zero hashes mean absent links.
func RestoreHeader(
	entryType types.EntryType,
	time types.Timestamp,
	next types.Hash,
	entry types.Hash,
	typeNext types.Hash,
	signature types.Signature,
) Header {
	return Header{
		entryType: entryType,
		time:      time,
		next:      next,
		entry:     entry,
		typeNext:  typeNext,
		signature: signature,
	}
}

// RestorePair rebuilds a Pair from a restored header and its entry.
// Callers are responsible for handing back the same header/entry
// combination they persisted; a mismatched pair will fail chain
// verification later.
func RestorePair(header Header, entry Entry) Pair {
	return Pair{
		header: header,
		entry:  entry,
	}
}
