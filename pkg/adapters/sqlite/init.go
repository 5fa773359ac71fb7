// Package sqlite provides an embedded SQLite database adapter for chainsql.
//
// This file registers the adapter under both "sqlite" and "sqlite3".
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/chainsql/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) }, "sqlite3")
}
