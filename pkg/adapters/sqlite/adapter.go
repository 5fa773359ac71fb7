// Package sqlite provides an embedded SQLite database adapter for chainsql.
//
// It uses the pure-Go modernc.org/sqlite driver, so no cgo toolchain is
// needed. It is mainly useful for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/dialect"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const memoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, SQLDialect: dialect.SQLite},
	}
}

// Connect opens the database file named by cfg.Path, or cfg.Database when
// Path is empty. With neither set an in-memory database is used.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := databasePath(cfg)
	dsn := buildDSN(path, cfg.Options)

	a.Logger.Debug("opening sqlite database", slog.String("path", path))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return &adapter.ConnectionError{Type: "sqlite", Err: err}
	}

	// Every connection to ":memory:" gets its own database.
	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.ConnectionError{Type: "sqlite", Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func databasePath(cfg adapter.Config) string {
	switch {
	case cfg.Path != "":
		return cfg.Path
	case cfg.Database != "":
		return cfg.Database
	default:
		return memoryPath
	}
}

// buildDSN appends options to the path as _pragma parameters,
// e.g. busy_timeout=5000 becomes _pragma=busy_timeout(5000).
func buildDSN(path string, options map[string]string) string {
	if len(options) == 0 {
		return path
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, "_pragma="+url.QueryEscape(fmt.Sprintf("%s(%s)", k, options[k])))
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}
