package chain

// Pair is one committed chain record: a Header bound to the Entry it
// describes. Pairs obtained through a chain's Push always satisfy
// Header().Entry() == Entry().Hash().
type Pair struct {
	header Header
	entry  Entry
}

// NewPair builds a correctly linked Pair for entry against the current
// state of c, with the placeholder clock and signer. Like headers,
// pairs go stale if the chain moves before they are pushed; prefer
// SourceChain.Push, which constructs and appends in one step.
func NewPair(c SourceChain, entry Entry) Pair {
	return Pair{
		header: NewHeader(c, entry),
		entry:  entry,
	}
}

// NewPairWithProviders is NewPair with an explicit clock and signer.
// Chain backends use it to apply their configured providers.
func NewPairWithProviders(c SourceChain, entry Entry, clock Clock, signer Signer) Pair {
	return Pair{
		header: NewHeaderWithProviders(c, entry, clock, signer),
		entry:  entry,
	}
}

func (p Pair) Header() Header {
	return p.header
}

func (p Pair) Entry() Entry {
	return p.entry
}
