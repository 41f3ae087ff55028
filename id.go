package datom

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID is a 128-bit entity identifier. The top 32 bits are the number of
// seconds since the Unix epoch at creation time, big-endian; the
// remaining 96 bits come from a v4 UUID. IDs created close together in
// time sort close together, which keeps related writes local in the
// EAVT/AEVT indexes without requiring a separate clock or counter.
type ID [16]byte

// NilID is the zero ID, used as a sentinel and as the identity of the
// empty/unset reference.
var NilID ID

// NewID generates a fresh, approximately time-ordered ID.
func NewID() ID {
	u := uuid.New()
	var id ID
	copy(id[:], u[:])
	binary.BigEndian.PutUint32(id[0:4], uint32(time.Now().Unix()))
	return id
}

// IDFromBytes reinterprets a 16-byte slice as an ID. The caller must
// ensure len(b) == 16.
func IDFromBytes(b []byte) ID {
	var id ID
	copy(id[:], b)
	return id
}

// Bytes returns the big-endian 16-byte encoding of the ID.
func (id ID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, id[:])
	return b
}

// String renders the ID as a UUID-formatted hex string, for debugging.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Compare orders two IDs lexicographically on their big-endian bytes,
// which is also their numeric order as a 128-bit unsigned integer.
func (id ID) Compare(other ID) int {
	for i := range id {
		if id[i] < other[i] {
			return -1
		}
		if id[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal reports whether two IDs have the same bytes.
func (id ID) Equal(other ID) bool {
	return id == other
}

// NextBytes returns the byte encoding of the value immediately
// following id in the 128-bit unsigned order, for use as an exclusive
// range bound. When id is the all-0xFF maximum, the result is extended
// by one trailing zero byte rather than wrapping, so it still sorts
// after every possible ID.
func (id ID) NextBytes() []byte {
	b := id.Bytes()
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xFF {
			b[i]++
			return b
		}
		b[i] = 0x00
		if i == 0 {
			// All 16 bytes were 0xFF: there is no larger 128-bit value,
			// so extend the key by one byte to produce a value that
			// still sorts after every possible ID.
			return append(id.Bytes(), 0x00)
		}
	}
	return b
}

// MustParseHexID is a small test/example helper that builds an ID from
// a 32-character hex string, panicking on malformed input.
func MustParseHexID(hex string) ID {
	if len(hex) != 32 {
		panic(fmt.Sprintf("id: want 32 hex chars, got %d", len(hex)))
	}
	var id ID
	for i := 0; i < 16; i++ {
		var b byte
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02x", &b); err != nil {
			panic(fmt.Sprintf("id: invalid hex %q: %v", hex, err))
		}
		id[i] = b
	}
	return id
}
