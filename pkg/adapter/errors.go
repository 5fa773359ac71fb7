package adapter

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by operations that need a live connection.
var ErrNotConnected = errors.New("database connection not established")

// ConnectionError is returned when a connection cannot be established.
type ConnectionError struct {
	Type string
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("failed to connect to %s at %s: %v", e.Type, e.Host, e.Err)
	}
	return fmt.Sprintf("failed to connect to %s: %v", e.Type, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ExecutionError is returned when the database rejects a statement.
type ExecutionError struct {
	SQL string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to execute SQL: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// CommitError is returned when a transaction cannot be committed.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit: %v", e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
