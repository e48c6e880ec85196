package rules

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"

	"github.com/google/uuid"
)

// OrderedPair returns the two identities in storage order (byte-wise ascending,
// same as the uuid ordering in postgres).
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// PairLockKey maps an unordered pair to a stable advisory lock key.
func PairLockKey(a, b uuid.UUID) int64 {
	first, second := OrderedPair(a, b)
	h := fnv.New64a()
	_, _ = h.Write(first[:])
	_, _ = h.Write(second[:])
	return int64(binary.BigEndian.Uint64(h.Sum(nil)))
}
