package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/chainsql/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query, Commit and Rollback implementations.
type BaseSQLAdapter struct {
	DB         *sql.DB
	Cfg        Config
	Logger     *slog.Logger
	SQLDialect *dialect.Dialect

	tx *sql.Tx
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *BaseSQLAdapter) rebind(query string) string {
	if b.SQLDialect == nil {
		return query
	}
	return b.SQLDialect.Rebind(query)
}

// Close rolls back any open transaction and closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	b.logger().Debug("closing database connection")
	if b.tx != nil {
		_ = b.tx.Rollback()
		b.tx = nil
	}
	err := b.DB.Close()
	b.DB = nil
	return err
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// InTx returns true while a transaction opened by Exec is pending.
func (b *BaseSQLAdapter) InTx() bool {
	return b.tx != nil
}

// Exec executes a statement that doesn't return rows, opening a transaction
// first if none is pending.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if b.tx == nil {
		tx, err := b.DB.BeginTx(ctx, nil)
		if err != nil {
			return &ExecutionError{SQL: sqlStr, Err: fmt.Errorf("begin transaction: %w", err)}
		}
		b.tx = tx
	}

	if _, err := b.tx.ExecContext(ctx, b.rebind(sqlStr), args...); err != nil {
		return &ExecutionError{SQL: sqlStr, Err: err}
	}
	return nil
}

// Query executes a statement that returns rows. It runs inside the pending
// transaction when there is one so uncommitted writes are visible.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*sql.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	var (
		rows *sql.Rows
		err  error
	)
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	if b.tx != nil {
		rows, err = b.tx.QueryContext(ctx, b.rebind(sqlStr), args...)
	} else {
		rows, err = b.DB.QueryContext(ctx, b.rebind(sqlStr), args...)
	}
	if err != nil {
		return nil, &ExecutionError{SQL: sqlStr, Err: err}
	}
	return rows, nil
}

// Commit commits the pending transaction.
func (b *BaseSQLAdapter) Commit(_ context.Context) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if b.tx == nil {
		return nil
	}
	tx := b.tx
	b.tx = nil
	if err := tx.Commit(); err != nil {
		return &CommitError{Err: err}
	}
	return nil
}

// Rollback discards the pending transaction.
func (b *BaseSQLAdapter) Rollback(_ context.Context) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if b.tx == nil {
		return nil
	}
	tx := b.tx
	b.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return nil
}

// Dialect returns the adapter's dialect, falling back to the default one.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	if b.SQLDialect == nil {
		return dialect.Default()
	}
	return b.SQLDialect
}
