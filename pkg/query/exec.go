package query

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/chainsql/pkg/guard"
)

// Execute sends the accumulated statement and args to the session.
//
// It returns the error recorded by a rejected clause without contacting the
// database. String args are checked against the reserved words; other values
// pass unexamined. The accumulated statement is cleared whatever the outcome.
func (b *Builder) Execute(ctx context.Context, args ...any) error {
	defer b.Reset()
	st := b.statement("execute")
	return b.finish(st, b.exec(ctx, st, args))
}

// Do runs Execute and, if it succeeds, commits. When the statement fails on
// the database the pending transaction is rolled back instead, discarding
// anything earlier Execute calls left uncommitted. The accumulated statement
// is cleared whatever the outcome. It returns nil on success.
func (b *Builder) Do(ctx context.Context, args ...any) error {
	defer b.Reset()

	st := b.statement("do")
	if err := b.precheck(st, args); err != nil {
		return b.finish(st, err)
	}
	if err := b.session.Exec(ctx, st.sql, args...); err != nil {
		st.logger.Debug("statement failed", slog.String("error", err.Error()))
		if rbErr := b.session.Rollback(ctx); rbErr != nil {
			st.logger.Warn("rollback failed", slog.String("error", rbErr.Error()))
		} else {
			st.logger.Debug("transaction rolled back")
		}
		return b.finish(st, err)
	}
	if err := b.session.Commit(ctx); err != nil {
		st.logger.Debug("commit failed", slog.String("error", err.Error()))
		return b.finish(st, err)
	}
	st.logger.Debug("statement committed")
	return b.finish(st, nil)
}

// Fetch sends the accumulated statement to the session as a query and
// returns its rows, which the caller must close. Validation and clearing
// follow Execute.
func (b *Builder) Fetch(ctx context.Context, args ...any) (*sql.Rows, error) {
	defer b.Reset()

	st := b.statement("fetch")
	if err := b.precheck(st, args); err != nil {
		return nil, b.finish(st, err)
	}

	rows, err := b.session.Query(ctx, st.sql, args...)
	if err != nil {
		st.logger.Debug("query failed", slog.String("error", err.Error()))
		return nil, b.finish(st, err)
	}
	return rows, b.finish(st, nil)
}

// statement is one terminal call's view of the builder.
type statement struct {
	op     string
	sql    string
	start  time.Time
	logger *slog.Logger
}

func (b *Builder) statement(op string) statement {
	sqlText := b.text.String()
	return statement{
		op:    op,
		sql:   sqlText,
		start: time.Now(),
		logger: b.logger.With(
			slog.String("op", op),
			slog.String("statement_id", uuid.NewString()),
		),
	}
}

// precheck returns the recorded clause error, or the result of checking args.
func (b *Builder) precheck(st statement, args []any) error {
	if b.err != nil {
		return b.err
	}
	if b.session == nil {
		return ErrNoSession
	}
	if err := guard.Check(args); err != nil {
		st.logger.Debug("argument rejected", slog.String("error", err.Error()))
		return err
	}
	st.logger.Debug("running statement", slog.String("sql", st.sql), slog.Int("args", len(args)))
	return nil
}

func (b *Builder) exec(ctx context.Context, st statement, args []any) error {
	if err := b.precheck(st, args); err != nil {
		return err
	}
	if err := b.session.Exec(ctx, st.sql, args...); err != nil {
		st.logger.Debug("statement failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// finish tells the observer how the call ended and hands a failure to the
// error hook.
func (b *Builder) finish(st statement, err error) error {
	if b.observer != nil {
		b.observer.ObserveStatement(st.op, time.Since(st.start), err)
	}
	if err != nil && b.onError != nil {
		b.onError(err)
	}
	return err
}
