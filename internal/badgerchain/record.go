package badgerchain

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"

	chain "github.com/i5heu/ouroboros-chain"
	"github.com/i5heu/ouroboros-chain/pkg/types"
)

// record is the persisted form of a chain.Pair. Field order and types
// mirror the header so restored records reproduce the exact identity
// hashes they were stored with.
type record struct {
	Index     uint64
	EntryType string
	Time      string
	Next      uint64
	Entry     uint64
	TypeNext  uint64
	Signature string
	Content   string
}

func recordFromPair(pair chain.Pair, index uint64) record {
	header := pair.Header()
	next, _ := header.Next()
	typeNext, _ := header.TypeNext()

	return record{
		Index:     index,
		EntryType: header.EntryType().String(),
		Time:      string(header.Time()),
		Next:      uint64(next),
		Entry:     uint64(header.Entry()),
		TypeNext:  uint64(typeNext),
		Signature: string(header.Signature()),
		Content:   pair.Entry().Content(),
	}
}

func (r record) pair() chain.Pair {
	header := chain.RestoreHeader(
		types.EntryType(r.EntryType),
		types.Timestamp(r.Time),
		types.Hash(r.Next),
		types.Hash(r.Entry),
		types.Hash(r.TypeNext),
		types.Signature(r.Signature),
	)
	entry := chain.NewEntry(types.EntryType(r.EntryType), r.Content)
	return chain.RestorePair(header, entry)
}

// encodeRecord gob-encodes and lzma-compresses a record for storage.
func encodeRecord(rec record) ([]byte, error) {
	var plain bytes.Buffer
	if err := gob.NewEncoder(&plain).Encode(rec); err != nil {
		return nil, fmt.Errorf("error encoding record: %w", err)
	}

	var compressed bytes.Buffer
	w, err := lzma.NewWriter(&compressed)
	if err != nil {
		return nil, fmt.Errorf("error creating lzma writer: %w", err)
	}
	if _, err := w.Write(plain.Bytes()); err != nil {
		return nil, fmt.Errorf("error compressing record: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error closing lzma writer: %w", err)
	}

	return compressed.Bytes(), nil
}

func decodeRecord(payload []byte) (record, error) {
	r, err := lzma.NewReader(bytes.NewReader(payload))
	if err != nil {
		return record{}, fmt.Errorf("error creating lzma reader: %w", err)
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return record{}, fmt.Errorf("error decompressing record: %w", err)
	}

	var rec record
	if err := gob.NewDecoder(bytes.NewReader(plain)).Decode(&rec); err != nil {
		return record{}, fmt.Errorf("error decoding record: %w", err)
	}
	return rec, nil
}
