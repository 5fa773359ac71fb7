package query

import "errors"

var (
	// ErrNoFields is recorded when Select, Set or InsertInto gets no fields.
	ErrNoFields = errors.New("no fields given")

	// ErrEmptyIdentifier is recorded when a table, column or key name is empty.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrEmptyPredicate is recorded when Where, GroupBy or OrderBy gets an
	// empty expression.
	ErrEmptyPredicate = errors.New("empty predicate")

	// ErrNoSession is returned by terminal calls on a Builder without a Session.
	ErrNoSession = errors.New("builder has no session")
)
