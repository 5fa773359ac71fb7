// Package mariadb provides a MariaDB (and MySQL) database adapter for chainsql.
package mariadb

import (
	"context"
	"database/sql"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/dialect"
)

const defaultHost = "127.0.0.1"

// Adapter implements the adapter.Adapter interface for MariaDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MariaDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, SQLDialect: dialect.MariaDB},
	}
}

// Connect establishes a connection to MariaDB and verifies it with a ping.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	mc := buildConfig(cfg)

	a.Logger.Debug("connecting to mariadb",
		slog.String("host", mc.Addr),
		slog.String("database", mc.DBName),
		slog.String("user", mc.User))

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return &adapter.ConnectionError{Type: "mariadb", Host: mc.Addr, Err: err}
	}
	db := sql.OpenDB(connector)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.ConnectionError{Type: "mariadb", Host: mc.Addr, Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildConfig maps an adapter config onto the driver's config.
// Options are passed through as DSN parameters; "timeout" is parsed as the
// dial timeout.
func buildConfig(cfg adapter.Config) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.DBName = cfg.Database
	mc.ParseTime = true

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	port := cfg.Port
	if port == 0 {
		port = dialect.MariaDB.DefaultPort
	}
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))

	for k, v := range cfg.Options {
		if k == "timeout" {
			if d, err := time.ParseDuration(v); err == nil {
				mc.Timeout = d
				continue
			}
		}
		if mc.Params == nil {
			mc.Params = make(map[string]string)
		}
		mc.Params[k] = v
	}
	return mc
}
