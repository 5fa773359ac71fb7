// Package query assembles SQL statements through a chain of clause methods.
//
// A Builder accumulates clause fragments into one statement string, in the
// order the caller adds them, and hands the result to a Session for
// execution. It does not check that clauses form valid SQL; it only checks
// caller-supplied fragments against the reserved words in package guard
// before appending them.
//
// Basic usage:
//
//	b := query.New(session, logger)
//	err := b.Select(query.Col("id"), query.As("name", "n")).
//		From("users", "u").
//		Where("u.id = ?").
//		Execute(ctx, 42)
//
// Values always travel as positional ? placeholders supplied at execution
// time. Identifiers and conditions are concatenated into the statement, so
// the reserved word check is a last line of defence, not a sanitizer.
//
// Update, Delete and AddCustomQuery append their argument unchecked. Only
// pass them trusted input.
//
// A Builder is not safe for concurrent use. Use one per statement under
// construction.
package query
