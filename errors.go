package datom

import "fmt"

// StorageErrorKind classifies a failure from a Storage backend.
type StorageErrorKind int

const (
	// StorageConcurrency is returned by a backend's Insert when a
	// concurrent writer won the race to update the backing store; the
	// caller should retry against a fresh snapshot.
	StorageConcurrency StorageErrorKind = iota
	// StorageIO wraps an underlying I/O failure (disk, network).
	StorageIO
	// StorageMisc covers anything that doesn't fit the above.
	StorageMisc
)

// StorageError is returned by Storage implementations.
type StorageError struct {
	Kind StorageErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	switch e.Kind {
	case StorageConcurrency:
		return "storage: concurrent write conflict"
	case StorageIO:
		return fmt.Sprintf("storage: io error: %v", e.Err)
	default:
		return fmt.Sprintf("storage: %v", e.Err)
	}
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewConcurrencyError builds a StorageError signaling a lost
// compare-and-swap race.
func NewConcurrencyError() *StorageError {
	return &StorageError{Kind: StorageConcurrency}
}

// NewIOError wraps an I/O failure as a StorageError.
func NewIOError(err error) *StorageError {
	return &StorageError{Kind: StorageIO, Err: err}
}

// NewMiscStorageError wraps an arbitrary failure as a StorageError.
func NewMiscStorageError(err error) *StorageError {
	return &StorageError{Kind: StorageMisc, Err: err}
}

// ConnectionErrorKind classifies a failure resolving/reading through a
// Connection.
type ConnectionErrorKind int

const (
	// ConnectionInvalidData means a stored datom could not be decoded.
	ConnectionInvalidData ConnectionErrorKind = iota
	// ConnectionStorage wraps a StorageError from the backend.
	ConnectionStorage
)

// ConnectionError is returned by Connection/Database operations.
type ConnectionError struct {
	Kind ConnectionErrorKind
	Err  error
}

func (e *ConnectionError) Error() string {
	switch e.Kind {
	case ConnectionInvalidData:
		return fmt.Sprintf("connection: invalid stored data: %v", e.Err)
	default:
		return fmt.Sprintf("connection: %v", e.Err)
	}
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func NewInvalidDataError(err error) *ConnectionError {
	return &ConnectionError{Kind: ConnectionInvalidData, Err: err}
}

func NewConnectionStorageError(err error) *ConnectionError {
	return &ConnectionError{Kind: ConnectionStorage, Err: err}
}

// QueryError is returned when resolving an EID or reading an entity
// fails.
type QueryError struct {
	// UnresolvedEID, if non-nil, names the EID that failed to resolve.
	UnresolvedEID *EID
	// Connection wraps an underlying ConnectionError.
	Connection *ConnectionError
}

func (e *QueryError) Error() string {
	if e.UnresolvedEID != nil {
		return fmt.Sprintf("query: could not resolve %v", e.UnresolvedEID)
	}
	return fmt.Sprintf("query: %v", e.Connection)
}

func (e *QueryError) Unwrap() error {
	if e.Connection != nil {
		return e.Connection
	}
	return nil
}

func NewUnresolvedEIDError(eid EID) *QueryError {
	return &QueryError{UnresolvedEID: &eid}
}

func NewQueryConnectionError(err *ConnectionError) *QueryError {
	return &QueryError{Connection: err}
}

// TransactionErrorKind classifies a failure committing a transaction.
type TransactionErrorKind int

const (
	TxFailedToRetractNonexistentAttribute TransactionErrorKind = iota
	TxFailedToRetractRepeatedAttribute
	TxUnresolvedEID
	TxQuery
	TxConnection
)

// TransactionError is returned by Connection.Transact.
type TransactionError struct {
	Kind  TransactionErrorKind
	E, A  ID
	Query *QueryError
	Conn  *ConnectionError
}

func (e *TransactionError) Error() string {
	switch e.Kind {
	case TxFailedToRetractNonexistentAttribute:
		return fmt.Sprintf("transaction: entity %v has no value for attribute %v to retract", e.E, e.A)
	case TxFailedToRetractRepeatedAttribute:
		return fmt.Sprintf("transaction: attribute %v on entity %v has cardinality many; retract requires an explicit value", e.A, e.E)
	case TxUnresolvedEID:
		return fmt.Sprintf("transaction: %v", e.Query)
	case TxQuery:
		return fmt.Sprintf("transaction: %v", e.Query)
	default:
		return fmt.Sprintf("transaction: %v", e.Conn)
	}
}

func (e *TransactionError) Unwrap() error {
	if e.Query != nil {
		return e.Query
	}
	if e.Conn != nil {
		return e.Conn
	}
	return nil
}

func NewFailedToRetractNonexistentAttributeError(e, a ID) *TransactionError {
	return &TransactionError{Kind: TxFailedToRetractNonexistentAttribute, E: e, A: a}
}

func NewFailedToRetractRepeatedAttributeError(e, a ID) *TransactionError {
	return &TransactionError{Kind: TxFailedToRetractRepeatedAttribute, E: e, A: a}
}

func NewTxQueryError(q *QueryError) *TransactionError {
	return &TransactionError{Kind: TxQuery, Query: q}
}

func NewTxConnectionError(c *ConnectionError) *TransactionError {
	return &TransactionError{Kind: TxConnection, Conn: c}
}
