// Package mariadb provides a MariaDB (and MySQL) database adapter for chainsql.
//
// This file registers the adapter under both "mariadb" and "mysql".
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/chainsql/pkg/adapters/mariadb"
package mariadb

import (
	"log/slog"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
)

func init() {
	adapter.Register("mariadb", func(logger *slog.Logger) adapter.Adapter { return New(logger) }, "mysql")
}
