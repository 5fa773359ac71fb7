package query

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/chainsql/pkg/guard"
)

// Session is the database capability a Builder executes statements on.
// *adapter.BaseSQLAdapter and every registered adapter satisfy it.
type Session interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (*sql.Rows, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Observer is told how every terminal call ended. op is "execute", "do" or
// "fetch"; err is nil on success.
type Observer interface {
	ObserveStatement(op string, elapsed time.Duration, err error)
}

// Builder accumulates one SQL statement.
//
// Every clause method appends exactly one fragment followed by a single space
// and returns the Builder. Table, column and key names and predicates must be
// non-empty; aliases and join conditions are left out when empty.
//
// When a clause rejects its input the accumulated text is cleared and the
// error is recorded. Later clause calls do nothing until Reset or a terminal
// call (Execute, Do, Fetch).
type Builder struct {
	session  Session
	logger   *slog.Logger
	onError  func(error)
	observer Observer

	text strings.Builder
	err  error
}

// New creates a Builder that executes on s.
// If logger is nil, a discard logger is used.
func New(s Session, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{session: s, logger: logger}
}

// SetObserver registers o to see every terminal call. Passing nil removes it.
func (b *Builder) SetObserver(o Observer) {
	b.observer = o
}

// SetErrorHook registers fn to be called with every error a terminal call
// returns. Passing nil removes the hook.
func (b *Builder) SetErrorHook(fn func(error)) {
	b.onError = fn
}

// SQL returns the statement accumulated so far.
func (b *Builder) SQL() string {
	return b.text.String()
}

// Err returns the error recorded by a rejected clause, if any.
func (b *Builder) Err() error {
	return b.err
}

// Reset clears the accumulated statement and any recorded error.
func (b *Builder) Reset() {
	b.text.Reset()
	b.err = nil
}

// accept runs the reserved word check over values and records the first
// rejection. It reports whether the clause may append.
func (b *Builder) accept(values ...any) bool {
	if b.err != nil {
		return false
	}
	for _, v := range values {
		if err := guard.Check(v); err != nil {
			b.fail(err)
			return false
		}
	}
	return true
}

func (b *Builder) fail(err error) {
	b.text.Reset()
	b.err = err
	b.logger.Debug("clause rejected", slog.String("error", err.Error()))
}

// nonEmpty records err, tagged with clause, if any value is empty. It reports
// whether every value is set.
func (b *Builder) nonEmpty(clause string, err error, values ...string) bool {
	if b.err != nil {
		return false
	}
	for _, v := range values {
		if v == "" {
			b.fail(fmt.Errorf("%s: %w", clause, err))
			return false
		}
	}
	return true
}

func (b *Builder) write(fragment string) *Builder {
	b.text.WriteString(fragment)
	b.text.WriteByte(' ')
	return b
}

// Select appends SELECT f1 [AS 'alias'], f2 ...
func (b *Builder) Select(fields ...Field) *Builder {
	return b.selectFields("SELECT", fields)
}

// SelectDistinct appends SELECT DISTINCT f1 [AS 'alias'], f2 ...
func (b *Builder) SelectDistinct(fields ...Field) *Builder {
	return b.selectFields("SELECT DISTINCT", fields)
}

func (b *Builder) selectFields(keyword string, fields []Field) *Builder {
	if b.err != nil {
		return b
	}
	if len(fields) == 0 {
		b.fail(fmt.Errorf("%s: %w", strings.ToLower(keyword), ErrNoFields))
		return b
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if !b.accept(f.Name, f.Alias) || !b.nonEmpty(strings.ToLower(keyword), ErrEmptyIdentifier, f.Name) {
			return b
		}
		if f.Alias != "" {
			parts = append(parts, fmt.Sprintf("%s AS '%s'", f.Name, f.Alias))
		} else {
			parts = append(parts, f.Name)
		}
	}
	return b.write(keyword + " " + strings.Join(parts, ", "))
}

// SelectAll appends SELECT *.
func (b *Builder) SelectAll() *Builder {
	if b.err != nil {
		return b
	}
	return b.write("SELECT *")
}

// Update appends UPDATE table. The table name is not checked against the
// reserved words.
func (b *Builder) Update(table string) *Builder {
	if !b.nonEmpty("update", ErrEmptyIdentifier, table) {
		return b
	}
	return b.write("UPDATE " + table)
}

// Set appends SET f1=?, f2=? with one placeholder per field.
func (b *Builder) Set(fields ...string) *Builder {
	if b.err != nil {
		return b
	}
	if len(fields) == 0 {
		b.fail(fmt.Errorf("set: %w", ErrNoFields))
		return b
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if !b.accept(f) || !b.nonEmpty("set", ErrEmptyIdentifier, f) {
			return b
		}
		parts = append(parts, f+"=?")
	}
	return b.write("SET " + strings.Join(parts, ", "))
}

// Delete appends DELETE FROM table. The table name is not checked against the
// reserved words.
func (b *Builder) Delete(table string) *Builder {
	if !b.nonEmpty("delete", ErrEmptyIdentifier, table) {
		return b
	}
	return b.write("DELETE FROM " + table)
}

// From appends FROM table [alias].
func (b *Builder) From(table, alias string) *Builder {
	if !b.accept(table, alias) || !b.nonEmpty("from", ErrEmptyIdentifier, table) {
		return b
	}
	if alias == "" {
		return b.write("FROM " + table)
	}
	return b.write("FROM " + table + " " + alias)
}

// Where appends WHERE condition.
//
// The condition is checked as a whole, so only a condition that is itself a
// reserved word is rejected. Pass values through ? placeholders.
func (b *Builder) Where(condition string) *Builder {
	if !b.accept(condition) || !b.nonEmpty("where", ErrEmptyPredicate, condition) {
		return b
	}
	return b.write("WHERE " + condition)
}

// InnerJoin appends INNER JOIN table [alias] [ON on] [USING using].
func (b *Builder) InnerJoin(table, alias, on, using string) *Builder {
	return b.join("INNER JOIN", table, alias, on, using)
}

// LeftJoin appends LEFT JOIN table [alias] [ON on] [USING using].
func (b *Builder) LeftJoin(table, alias, on, using string) *Builder {
	return b.join("LEFT JOIN", table, alias, on, using)
}

func (b *Builder) join(keyword, table, alias, on, using string) *Builder {
	if !b.accept(table, alias, on, using) || !b.nonEmpty(strings.ToLower(keyword), ErrEmptyIdentifier, table) {
		return b
	}

	parts := []string{keyword, table}
	if alias != "" {
		parts = append(parts, alias)
	}
	if on != "" {
		parts = append(parts, "ON "+on)
	}
	if using != "" {
		parts = append(parts, "USING "+using)
	}
	return b.write(strings.Join(parts, " "))
}

// InsertInto appends INSERT INTO table (k1, k2) VALUES (?, ?) with one
// placeholder per key.
func (b *Builder) InsertInto(table string, keys ...string) *Builder {
	if !b.accept(table, keys) || !b.nonEmpty("insert into", ErrEmptyIdentifier, table) {
		return b
	}
	if len(keys) == 0 {
		b.fail(fmt.Errorf("insert into %s: %w", table, ErrNoFields))
		return b
	}
	if !b.nonEmpty("insert into "+table, ErrEmptyIdentifier, keys...) {
		return b
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	return b.write(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(keys, ", "), placeholders))
}

// OrderBy appends ORDER BY predicate [DESC] [LIMIT limit]. LIMIT is only
// emitted when limit is positive.
func (b *Builder) OrderBy(predicate string, desc bool, limit int) *Builder {
	if !b.accept(predicate) || !b.nonEmpty("order by", ErrEmptyPredicate, predicate) {
		return b
	}

	fragment := "ORDER BY " + predicate
	if desc {
		fragment += " DESC"
	}
	if limit > 0 {
		fragment += " LIMIT " + strconv.Itoa(limit)
	}
	return b.write(fragment)
}

// GroupBy appends GROUP BY predicate.
func (b *Builder) GroupBy(predicate string) *Builder {
	if !b.accept(predicate) || !b.nonEmpty("group by", ErrEmptyPredicate, predicate) {
		return b
	}
	return b.write("GROUP BY " + predicate)
}

// Except appends EXCEPT.
func (b *Builder) Except() *Builder {
	if b.err != nil {
		return b
	}
	return b.write("EXCEPT")
}

// OpenSubQuery appends an opening parenthesis. Balancing it with
// CloseSubQuery is up to the caller.
func (b *Builder) OpenSubQuery() *Builder {
	if b.err != nil {
		return b
	}
	return b.write("(")
}

// CloseSubQuery appends a closing parenthesis followed by alias, if any.
func (b *Builder) CloseSubQuery(alias string) *Builder {
	if !b.accept(alias) {
		return b
	}
	if alias == "" {
		return b.write(")")
	}
	return b.write(") " + alias)
}

// AddCustomQuery appends text verbatim.
//
// The text is not checked in any way. Never pass it untrusted input. An empty
// text appends nothing.
func (b *Builder) AddCustomQuery(text string) *Builder {
	if b.err != nil || text == "" {
		return b
	}
	return b.write(text)
}
