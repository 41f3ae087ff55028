package datom

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Value is the closed union of scalar types a datom's V field can
// hold: strings, arbitrary-precision integers and decimals, entity
// references, and booleans.
type Value interface {
	isValue()
}

// VString is a basic UTF-8 string value.
type VString string

func (VString) isValue() {}

// VInteger is an arbitrary-precision signed integer value.
type VInteger struct {
	Int *big.Int
}

func (VInteger) isValue() {}

// Int wraps an int64 as a VInteger value.
func Int(n int64) VInteger {
	return VInteger{Int: big.NewInt(n)}
}

// BigInt wraps a *big.Int as a VInteger value.
func BigInt(n *big.Int) VInteger {
	return VInteger{Int: new(big.Int).Set(n)}
}

// VDecimal is an arbitrary-precision decimal value.
type VDecimal struct {
	Dec decimal.Decimal
}

func (VDecimal) isValue() {}

// Dec wraps a decimal.Decimal as a VDecimal value.
func Dec(d decimal.Decimal) VDecimal {
	return VDecimal{Dec: d}
}

// VID is a reference to another entity, held as a value.
type VID struct {
	ID ID
}

func (VID) isValue() {}

// Ref wraps an ID as a VID value.
func Ref(id ID) VID {
	return VID{ID: id}
}

// VBoolean is a basic boolean value.
type VBoolean bool

func (VBoolean) isValue() {}

// ValuesEqual reports whether two values carry the same type and
// contents. Value is a closed union rather than a comparable type
// (VInteger/VDecimal hold pointers/structs that don't compare with
// ==), so callers should use this instead of ==.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case VString:
		bv, ok := b.(VString)
		return ok && av == bv
	case VInteger:
		bv, ok := b.(VInteger)
		return ok && av.Int.Cmp(bv.Int) == 0
	case VDecimal:
		bv, ok := b.(VDecimal)
		return ok && av.Dec.Equal(bv.Dec)
	case VID:
		bv, ok := b.(VID)
		return ok && av.ID.Equal(bv.ID)
	case VBoolean:
		bv, ok := b.(VBoolean)
		return ok && av == bv
	default:
		return false
	}
}
