package datom

import (
	"encoding/binary"
	"fmt"
)

// EncodeKey builds the storage key for a datom under the given index.
// Every field is fixed-width except the value, which is embedded as an
// 8-byte big-endian length prefix followed by its tagged encoding, so
// it can sit in the middle of a key (AVET, VAET) and still be skipped
// over without ambiguity. The transaction id and operation tag always
// trail the key, since every index orders by E/A/V first and only
// needs T/Op to disambiguate repeated facts.
func EncodeKey(index Index, d Datom) []byte {
	v := encodeLengthPrefixedValue(d.V)
	tOp := make([]byte, 9)
	binary.BigEndian.PutUint64(tOp[0:8], d.T)
	tOp[8] = byte(d.Op)

	switch index {
	case EAVT:
		return concat([]byte{byte(EAVT)}, d.E.Bytes(), d.A.Bytes(), v, tOp)
	case AEVT:
		return concat([]byte{byte(AEVT)}, d.A.Bytes(), d.E.Bytes(), v, tOp)
	case AVET:
		return concat([]byte{byte(AVET)}, d.A.Bytes(), v, d.E.Bytes(), tOp)
	case VAET:
		return concat([]byte{byte(VAET)}, v, d.A.Bytes(), d.E.Bytes(), tOp)
	default:
		panic(fmt.Sprintf("codec: unknown index %v", index))
	}
}

// DecodeKey parses a key produced by EncodeKey back into a Datom.
func DecodeKey(index Index, key []byte) (Datom, error) {
	if len(key) < 1 || Index(key[0]) != index {
		return Datom{}, fmt.Errorf("codec: key does not match index %v", index)
	}
	rest := key[1:]

	switch index {
	case EAVT:
		e, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		a, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		v, rest, err := takeLengthPrefixedValue(rest)
		if err != nil {
			return Datom{}, err
		}
		t, op, err := takeTOp(rest)
		if err != nil {
			return Datom{}, err
		}
		return Datom{E: e, A: a, V: v, T: t, Op: op}, nil
	case AEVT:
		a, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		e, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		v, rest, err := takeLengthPrefixedValue(rest)
		if err != nil {
			return Datom{}, err
		}
		t, op, err := takeTOp(rest)
		if err != nil {
			return Datom{}, err
		}
		return Datom{E: e, A: a, V: v, T: t, Op: op}, nil
	case AVET:
		a, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		v, rest, err := takeLengthPrefixedValue(rest)
		if err != nil {
			return Datom{}, err
		}
		e, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		t, op, err := takeTOp(rest)
		if err != nil {
			return Datom{}, err
		}
		return Datom{E: e, A: a, V: v, T: t, Op: op}, nil
	case VAET:
		v, rest, err := takeLengthPrefixedValue(rest)
		if err != nil {
			return Datom{}, err
		}
		a, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		e, rest, err := takeID(rest)
		if err != nil {
			return Datom{}, err
		}
		t, op, err := takeTOp(rest)
		if err != nil {
			return Datom{}, err
		}
		return Datom{E: e, A: a, V: v, T: t, Op: op}, nil
	default:
		return Datom{}, fmt.Errorf("codec: unknown index %v", index)
	}
}

// EncodeTxRecordKey builds the key for a transaction record: the
// 0xFF prefix byte followed by the 8-byte big-endian transaction id.
// Transaction records live outside the four datom indexes entirely,
// so latest_t can find the newest one with a single reverse scan
// rather than a full index walk.
// Since a Storage backend stores keys only (see storage.Storage), the
// record's wall-clock timestamp rides along inside the key itself,
// trailing the id: 0xFF ‖ t(8 bytes BE) ‖ timestampMillis(8 bytes BE).
// Ordering only depends on the t field, since it comes first.
func EncodeTxRecordKey(t uint64, timestampMillis int64) []byte {
	key := make([]byte, 17)
	key[0] = txRecordPrefix
	binary.BigEndian.PutUint64(key[1:9], t)
	binary.BigEndian.PutUint64(key[9:17], uint64(timestampMillis))
	return key
}

// DecodeTxRecordKey extracts the transaction id and timestamp from a
// key produced by EncodeTxRecordKey.
func DecodeTxRecordKey(key []byte) (t uint64, timestampMillis int64, err error) {
	if len(key) != 17 || key[0] != txRecordPrefix {
		return 0, 0, fmt.Errorf("codec: not a tx record key")
	}
	t = binary.BigEndian.Uint64(key[1:9])
	timestampMillis = int64(binary.BigEndian.Uint64(key[9:17]))
	return t, timestampMillis, nil
}

// TxRecordRangeAll returns the [start, end) range covering every
// transaction record.
func TxRecordRangeAll() (start, end []byte) {
	start = []byte{txRecordPrefix}
	end = []byte{txRecordPrefix + 1}
	return
}

// IndexPrefixRange returns the [start, end) range covering every key
// under the given index.
func IndexPrefixRange(index Index) (start, end []byte) {
	start = []byte{byte(index)}
	end = []byte{byte(index) + 1}
	return
}

// EAVTEntityRange returns the [start, end) range covering every datom
// for a single entity in EAVT order.
func EAVTEntityRange(e ID) (start, end []byte) {
	start = concat([]byte{byte(EAVT)}, e.Bytes())
	end = concat([]byte{byte(EAVT)}, e.NextBytes())
	return
}

// EAVTEntityAttributeRange returns the [start, end) range covering
// every datom for a single entity/attribute pair in EAVT order.
func EAVTEntityAttributeRange(e, a ID) (start, end []byte) {
	start = concat([]byte{byte(EAVT)}, e.Bytes(), a.Bytes())
	end = concat([]byte{byte(EAVT)}, e.Bytes(), a.NextBytes())
	return
}

// AVETAttributeValueRange returns the [start, end) range covering
// every datom for a single attribute/value pair in AVET order.
func AVETAttributeValueRange(a ID, v Value) (start, end []byte) {
	vb := encodeLengthPrefixedValue(v)
	start = concat([]byte{byte(AVET)}, a.Bytes(), vb)
	end = concat([]byte{byte(AVET)}, a.Bytes(), nextBytes(vb))
	return
}

// VAETValueAttributeRange returns the [start, end) range covering
// every datom referencing a single value under a single attribute in
// VAET order.
func VAETValueAttributeRange(v Value, a ID) (start, end []byte) {
	vb := encodeLengthPrefixedValue(v)
	start = concat([]byte{byte(VAET)}, vb, a.Bytes())
	end = concat([]byte{byte(VAET)}, vb, a.NextBytes())
	return
}

func encodeLengthPrefixedValue(v Value) []byte {
	body := EncodeValue(v)
	out := make([]byte, 8+len(body))
	binary.BigEndian.PutUint64(out[:8], uint64(len(body)))
	copy(out[8:], body)
	return out
}

func takeLengthPrefixedValue(b []byte) (Value, []byte, error) {
	if len(b) < 8 {
		return nil, nil, fmt.Errorf("codec: truncated value length prefix")
	}
	n := binary.BigEndian.Uint64(b[:8])
	b = b[8:]
	if uint64(len(b)) < n {
		return nil, nil, fmt.Errorf("codec: truncated value body")
	}
	v, err := DecodeValue(b[:n])
	if err != nil {
		return nil, nil, err
	}
	return v, b[n:], nil
}

func takeID(b []byte) (ID, []byte, error) {
	if len(b) < 16 {
		return ID{}, nil, fmt.Errorf("codec: truncated id field")
	}
	return IDFromBytes(b[:16]), b[16:], nil
}

func takeTOp(b []byte) (uint64, Op, error) {
	if len(b) != 9 {
		return 0, 0, fmt.Errorf("codec: trailing t/op field must be 9 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b[:8]), Op(b[8]), nil
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// nextBytes increments the last incrementable byte of b, extending
// with a zero byte on all-0xFF overflow, the same scheme ID.NextBytes
// uses for 128-bit values.
func nextBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xFF {
			out[i]++
			return out
		}
		out[i] = 0x00
		if i == 0 {
			return append(append([]byte{}, b...), 0x00)
		}
	}
	return out
}
