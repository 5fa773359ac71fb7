// Package postgres provides a PostgreSQL database adapter for chainsql.
package postgres

import (
	"context"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/dialect"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, SQLDialect: dialect.Postgres},
	}
}

// Connect parses the settings with pgx, opens a pool and pings it.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	host := net.JoinHostPort(hostOrDefault(cfg.Host), strconv.Itoa(portOrDefault(cfg.Port)))
	a.Logger.Debug("connecting to postgres", slog.String("host", host), slog.String("database", cfg.Database))

	connCfg, err := pgx.ParseConfig(buildPostgresDSN(cfg))
	if err != nil {
		return &adapter.ConnectionError{Type: "postgres", Host: host, Err: err}
	}

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.ConnectionError{Type: "postgres", Host: host, Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func hostOrDefault(host string) string {
	if host == "" {
		return "localhost"
	}
	return host
}

func portOrDefault(port int) int {
	if port == 0 {
		return dialect.Postgres.DefaultPort
	}
	return port
}

// buildPostgresDSN constructs a libpq keyword/value connection string.
// Options other than sslmode follow in key order.
func buildPostgresDSN(cfg adapter.Config) string {
	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	parts := []string{
		"host=" + quoteValue(hostOrDefault(cfg.Host)),
		"port=" + strconv.Itoa(portOrDefault(cfg.Port)),
	}
	if cfg.Database != "" {
		parts = append(parts, "dbname="+quoteValue(cfg.Database))
	}
	parts = append(parts, "sslmode="+quoteValue(sslmode))
	if cfg.Username != "" {
		parts = append(parts, "user="+quoteValue(cfg.Username))
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteValue(cfg.Password))
	}

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		if k != "sslmode" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+quoteValue(cfg.Options[k]))
	}

	return strings.Join(parts, " ")
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteValue single-quotes v when libpq would otherwise misread it.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + valueEscaper.Replace(v) + "'"
}
