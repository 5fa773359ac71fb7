package dialect

import "github.com/leapstack-labs/chainsql/pkg/core"

// MariaDB is the default dialect. It also serves MySQL.
var MariaDB = NewDialect("mariadb").
	Identifiers("`", "`", "``").
	DefaultPort(3306).
	Build()

// Postgres is the PostgreSQL dialect.
var Postgres = NewDialect("postgres").
	DefaultPort(5432).
	PlaceholderStyle(core.PlaceholderDollar).
	Build()

// SQLite is the embedded SQLite dialect.
var SQLite = NewDialect("sqlite").Build()

func init() {
	Register(MariaDB, "mysql")
	Register(Postgres, "postgresql")
	Register(SQLite, "sqlite3")
	SetDefault(MariaDB)
}
