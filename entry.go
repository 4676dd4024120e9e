package chain

import (
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// Entry is a typed, content-addressed payload unit. The type tag is an
// open category chosen by the caller and the content is an opaque
// string; both may be empty. Entries are immutable values: two entries
// built independently from the same type and content are content-equal
// and hash identically.
type Entry struct {
	entryType types.EntryType
	content   string
}

// NewEntry builds an Entry from a type tag and content. Any strings are
// valid, no validation happens here.
func NewEntry(entryType types.EntryType, content string) Entry {
	return Entry{
		entryType: entryType,
		content:   content,
	}
}

func (e Entry) EntryType() types.EntryType {
	return e.entryType
}

func (e Entry) Content() string {
	return e.content
}

// Hash returns the content address of the entry, a stable digest over
// (entryType, content).
func (e Entry) Hash() types.Hash {
	return types.HashFields(e.entryType.Bytes(), []byte(e.content))
}
