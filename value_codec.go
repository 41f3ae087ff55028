package datom

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ValueType is the one-byte tag prefixing a value's serialized form.
type ValueType byte

const (
	TypeString  ValueType = 0
	TypeInteger ValueType = 1
	TypeDecimal ValueType = 2
	TypeID      ValueType = 3
	TypeBoolean ValueType = 4
)

// valueType returns the wire tag for a Value.
func valueType(v Value) ValueType {
	switch v.(type) {
	case VString:
		return TypeString
	case VInteger:
		return TypeInteger
	case VDecimal:
		return TypeDecimal
	case VID:
		return TypeID
	case VBoolean:
		return TypeBoolean
	default:
		panic(fmt.Sprintf("value: unknown value type %T", v))
	}
}

// EncodeValue serializes a value to its tagged byte form: one tag byte
// followed by a type-specific body. This is the format embedded,
// length-prefixed, inside datom keys (see codec.go).
func EncodeValue(v Value) []byte {
	switch val := v.(type) {
	case VString:
		b := []byte(val)
		out := make([]byte, 1+len(b))
		out[0] = byte(TypeString)
		copy(out[1:], b)
		return out
	case VInteger:
		b := signedBytesBE(val.Int)
		out := make([]byte, 1+len(b))
		out[0] = byte(TypeInteger)
		copy(out[1:], b)
		return out
	case VDecimal:
		coeff := val.Dec.Coefficient()
		exp := int64(val.Dec.Exponent())
		expBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expBytes, uint64(exp))
		coeffBytes := signedBytesBE(coeff)
		out := make([]byte, 1+8+len(coeffBytes))
		out[0] = byte(TypeDecimal)
		copy(out[1:9], expBytes)
		copy(out[9:], coeffBytes)
		return out
	case VID:
		out := make([]byte, 1+16)
		out[0] = byte(TypeID)
		copy(out[1:], val.ID.Bytes())
		return out
	case VBoolean:
		b := byte(0)
		if val {
			b = 1
		}
		return []byte{byte(TypeBoolean), b}
	default:
		panic(fmt.Sprintf("value: cannot encode type %T", v))
	}
}

// DecodeValue parses a tagged value encoding produced by EncodeValue.
func DecodeValue(b []byte) (Value, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("value: empty encoding")
	}
	tag, body := ValueType(b[0]), b[1:]
	switch tag {
	case TypeString:
		return VString(body), nil
	case TypeInteger:
		return VInteger{Int: bigIntFromSignedBE(body)}, nil
	case TypeDecimal:
		if len(body) < 8 {
			return nil, fmt.Errorf("value: decimal encoding too short (%d bytes)", len(body))
		}
		exp := int64(binary.BigEndian.Uint64(body[:8]))
		coeff := bigIntFromSignedBE(body[8:])
		return VDecimal{Dec: decimal.NewFromBigInt(coeff, int32(exp))}, nil
	case TypeID:
		if len(body) != 16 {
			return nil, fmt.Errorf("value: id encoding must be 16 bytes, got %d", len(body))
		}
		return VID{ID: IDFromBytes(body)}, nil
	case TypeBoolean:
		if len(body) != 1 {
			return nil, fmt.Errorf("value: bool encoding must be 1 byte, got %d", len(body))
		}
		switch body[0] {
		case 0:
			return VBoolean(false), nil
		case 1:
			return VBoolean(true), nil
		default:
			return nil, fmt.Errorf("value: invalid bool byte %d", body[0])
		}
	default:
		return nil, fmt.Errorf("value: unknown type tag %d", tag)
	}
}

// signedBytesBE returns the minimal two's-complement big-endian
// encoding of n, matching big.Int's sign. Unlike math/big.Int.Bytes
// (which is unsigned magnitude only), this preserves sign so negative
// integers and decimal coefficients round-trip correctly.
func signedBytesBE(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0}
	}
	mag := n.Bytes()
	// Ensure a leading bit that matches the sign: prepend a 0x00 byte
	// if positive and the high bit of the leading magnitude byte is
	// set, so it isn't misread as negative.
	if n.Sign() > 0 {
		if mag[0]&0x80 != 0 {
			mag = append([]byte{0x00}, mag...)
		}
		return mag
	}
	// Negative: two's complement of the magnitude, sized to fit with a
	// leading 1 bit. len(mag) bytes suffice when the magnitude's high
	// bit is clear, or when the magnitude is exactly 0x80 00..00 (the
	// most negative value of that width); otherwise one more byte is
	// needed.
	size := len(mag)
	if mag[0]&0x80 != 0 {
		minOfWidth := new(big.Int).Lsh(big.NewInt(1), uint(size)*8-1)
		if new(big.Int).Neg(n).Cmp(minOfWidth) != 0 {
			size++
		}
	}
	twos := new(big.Int).Lsh(big.NewInt(1), uint(size)*8)
	twos.Add(twos, n)
	out := twos.Bytes()
	for len(out) < size {
		out = append([]byte{0x00}, out...)
	}
	return out
}

// bigIntFromSignedBE parses the two's-complement big-endian encoding
// produced by signedBytesBE.
func bigIntFromSignedBE(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	n := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8)
		n.Sub(n, full)
	}
	return n
}
