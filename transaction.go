package datom

// Transaction is an ordered list of facts to apply together. Facts
// resolve against the database snapshot they're transacted against,
// not against each other, so within one Transaction the order of Add
// vs. Retract against the same attribute is significant only insofar
// as storage order matters (both land in the same atomic batch).
type Transaction struct {
	facts []Fact
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Add appends an addition fact.
func (tx *Transaction) Add(e, a EID, v Value) *Transaction {
	tx.facts = append(tx.facts, FactAdd{E: e, A: a, V: v})
	return tx
}

// AddMany appends one addition fact per entry in values, all against
// the same entity.
func (tx *Transaction) AddMany(e EID, values map[EID]Value) *Transaction {
	for a, v := range values {
		tx.Add(e, a, v)
	}
	return tx
}

// RetractValue appends a fact retracting a specific value.
func (tx *Transaction) RetractValue(e, a EID, v Value) *Transaction {
	tx.facts = append(tx.facts, FactRetractValue{E: e, A: a, V: v})
	return tx
}

// Retract appends a fact retracting whatever cardinality-one value e
// currently holds for a.
func (tx *Transaction) Retract(e, a EID) *Transaction {
	tx.facts = append(tx.facts, FactRetract{E: e, A: a})
	return tx
}

// Append adds every fact from other onto the end of tx.
func (tx *Transaction) Append(other *Transaction) *Transaction {
	tx.facts = append(tx.facts, other.facts...)
	return tx
}

// Datoms resolves every fact in the transaction against db, stamping
// each resulting datom with transaction id t.
func (tx *Transaction) Datoms(t uint64, db *Database) ([]Datom, error) {
	out := make([]Datom, 0, len(tx.facts))
	for _, f := range tx.facts {
		d, err := f.datom(t, db)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
