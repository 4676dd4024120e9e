package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("post", "hello")

	assert.Equal(t, "post", e.EntryType().String())
	assert.Equal(t, "hello", e.Content())
}

func TestNewEntryEmptyStrings(t *testing.T) {
	// any string is a valid type or content, including empty ones
	e := NewEntry("", "")

	assert.Equal(t, "", e.EntryType().String())
	assert.Equal(t, "", e.Content())
	assert.False(t, e.Hash().IsZero())
}

func TestEntryHashStable(t *testing.T) {
	e := NewEntry("post", "hello")

	if e.Hash() != e.Hash() {
		t.Errorf("Expected repeated Hash calls to be equal")
	}

	// independently constructed entries with the same fields are
	// content-equal
	other := NewEntry("post", "hello")
	assert.Equal(t, e.Hash(), other.Hash())
}

func TestEntryHashDiffers(t *testing.T) {
	base := NewEntry("post", "hello")

	differentContent := NewEntry("post", "hello!")
	differentType := NewEntry("profile", "hello")

	assert.NotEqual(t, base.Hash(), differentContent.Hash())
	assert.NotEqual(t, base.Hash(), differentType.Hash())
}

func TestEntryHashFieldBoundaries(t *testing.T) {
	// moving bytes between type and content must change the hash
	a := NewEntry("ab", "c")
	b := NewEntry("a", "bc")

	if a.Hash() == b.Hash() {
		t.Errorf("Expected different hashes for shifted field boundaries")
	}
}
