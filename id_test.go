package datom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsApproximatelyMonotonic(t *testing.T) {
	a := NewID()
	b := NewID()
	// Only the leading 4-byte seconds prefix is time-ordered; the rest
	// is random, so two IDs from the same second may compare either way.
	assert.LessOrEqual(t, string(a[:4]), string(b[:4]))
}

func TestIDBytesRoundTrip(t *testing.T) {
	id := NewID()
	got := IDFromBytes(id.Bytes())
	assert.True(t, id.Equal(got))
}

func TestIDNextBytesOrdersAfter(t *testing.T) {
	id := NewID()
	next := id.NextBytes()
	assert.Less(t, string(id.Bytes()), string(next))
}

func TestIDNextBytesOverflow(t *testing.T) {
	var max ID
	for i := range max {
		max[i] = 0xFF
	}
	next := max.NextBytes()
	assert.Greater(t, string(next), string(max.Bytes()))
}

func TestMustParseHexIDRoundTrip(t *testing.T) {
	id := NewID()
	hexStr := id.String()
	var compact string
	for _, r := range hexStr {
		if r != '-' {
			compact += string(r)
		}
	}
	got := MustParseHexID(compact)
	assert.True(t, id.Equal(got))
}
