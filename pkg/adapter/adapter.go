// Package adapter provides the database driver capability used by the query
// builder.
//
// This package contains the contract every database adapter implements and a
// database/sql based implementation of everything except connecting.
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves from init().
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/chainsql/pkg/core"
	"github.com/leapstack-labs/chainsql/pkg/dialect"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter defines the interface that all database adapters must implement.
//
// Statements run inside a transaction that is opened by the first Exec and
// ended by Commit or Rollback. An Adapter is not safe for concurrent use.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close rolls back any open transaction and closes the connection.
	Close() error

	// IsConnected reports whether Connect succeeded and Close has not been called.
	IsConnected() bool

	// Exec executes a statement that doesn't return rows (INSERT, UPDATE, DELETE).
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*sql.Rows, error)

	// Commit commits the open transaction. It is a no-op when none is open.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction. It is a no-op when none is open.
	Rollback(ctx context.Context) error

	// Dialect returns the SQL dialect used to rebind placeholders.
	Dialect() *dialect.Dialect
}
