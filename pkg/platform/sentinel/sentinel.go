// Package sentinel holds infrastructure facts returned by stores.
//
// Stores return these (optionally wrapped with fmt.Errorf("...: %w")) and
// services translate them into coded domain errors. A sentinel says what the
// storage layer observed, never what the caller should do about it.
package sentinel

import "errors"

var (
	// ErrNotFound: the row or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyUsed: a uniqueness constraint rejected the write.
	ErrAlreadyUsed = errors.New("already used")
	// ErrInvalidState: the record exists but cannot take this transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable: the backing service could not be reached.
	ErrUnavailable = errors.New("unavailable")
	// ErrSerialization: the database aborted a transaction to keep it serializable.
	ErrSerialization = errors.New("serialization failure")
)
