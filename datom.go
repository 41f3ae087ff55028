package datom

import "fmt"

// Op tags whether a datom adds or retracts a fact.
type Op byte

const (
	OpAdd     Op = 0
	OpRetract Op = 1
)

// Index names one of the four sorted orderings a datom is stored
// under.
type Index byte

const (
	EAVT Index = iota
	AEVT
	AVET
	VAET
)

// txRecordPrefix is the key prefix byte for the transaction-record
// keyspace, kept outside the EAVT/AEVT/AVET/VAET prefix range (0-3) so
// it never collides with an index scan.
const txRecordPrefix byte = 0xFF

// Datom is the fundamental unit of data: a single fact about an
// entity's attribute at a point in time, tagged as an addition or a
// retraction.
type Datom struct {
	E  ID     // entity
	A  ID     // attribute
	V  Value  // value
	T  uint64 // transaction id
	Op Op     // addition or retraction
}

// String renders a Datom for debugging.
func (d Datom) String() string {
	op := "+"
	if d.Op == OpRetract {
		op = "-"
	}
	return fmt.Sprintf("[%s %s %s %v %d]", op, d.E, d.A, d.V, d.T)
}
