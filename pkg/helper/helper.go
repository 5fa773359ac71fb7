// Package helper ties configuration, a database adapter and a query builder
// into one handle.
//
// A Helper embeds a *query.Builder, so clause and terminal methods are called
// on it directly. Adapters register themselves from init(), so the program
// must import the one named by database.type:
//
//	import _ "github.com/leapstack-labs/chainsql/pkg/adapters/mariadb"
//
//	h, err := helper.Open("", logger) // ./config.yaml
//	if err != nil {
//		return err
//	}
//	if err := h.Connect(ctx); err != nil {
//		return err
//	}
//	defer h.Disconnect()
//
//	err = h.InsertInto("users", "name", "email").Do(ctx, name, email)
//
// A Helper is not safe for concurrent use.
package helper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/leapstack-labs/chainsql/internal/config"
	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/core"
	"github.com/leapstack-labs/chainsql/pkg/query"
)

// Connect breaker settings.
const (
	breakerFailures = 3
	breakerTimeout  = 30 * time.Second
)

// Metrics receives statement and connection outcomes.
type Metrics interface {
	query.Observer
	ObserveConnect(err error)
}

// Helper is a configured database handle with an embedded query builder.
type Helper struct {
	*query.Builder

	cfg     core.Config
	logger  *slog.Logger
	db      adapter.Adapter
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics Metrics
	onError func(error)
}

// Open loads configuration from path (config.yaml in the working directory
// when empty) and returns a Helper for it. It does not connect.
func Open(path string, logger *slog.Logger) (*Helper, error) {
	cfg, err := config.Load(path, nil)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// New returns a Helper for cfg, resolving the adapter from the registry by
// cfg.Database.Type. It does not connect.
func New(cfg *core.Config, logger *slog.Logger) (*Helper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	c := *cfg
	config.ApplyDefaults(&c)
	if err := config.Validate(&c); err != nil {
		return nil, err
	}

	db, err := adapter.NewAdapter(c.Database.AdapterConfig(), logger)
	if err != nil {
		return nil, err
	}
	return NewWithAdapter(&c, db, logger), nil
}

// NewWithAdapter returns a Helper that uses db instead of a registry adapter.
func NewWithAdapter(cfg *core.Config, db adapter.Adapter, logger *slog.Logger) *Helper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := &Helper{
		logger: logger,
		db:     db,
	}
	if cfg != nil {
		h.cfg = *cfg
	}
	h.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "connect",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	h.Builder = query.New(session{h}, logger)
	h.Builder.SetErrorHook(h.report)
	return h
}

// Connect opens the database connection. Calling it while connected does
// nothing.
//
// Failures are logged, handed to the error callback and returned as
// *adapter.ConnectionError. After three consecutive failures the breaker
// opens and Connect fails fast for 30 seconds.
func (h *Helper) Connect(ctx context.Context) error {
	if h.db.IsConnected() {
		return nil
	}

	_, err := h.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, h.db.Connect(ctx, h.cfg.Database.AdapterConfig())
	})
	if h.metrics != nil {
		h.metrics.ObserveConnect(err)
	}
	if err == nil {
		h.logger.Debug("connected", slog.String("type", h.cfg.Database.Type))
		return nil
	}

	var connErr *adapter.ConnectionError
	if !errors.As(err, &connErr) {
		err = &adapter.ConnectionError{Type: h.cfg.Database.Type, Host: h.address(), Err: err}
	}
	h.logger.Error("error connecting to database", slog.String("error", err.Error()))
	h.report(err)
	return err
}

func (h *Helper) address() string {
	if h.cfg.Database.Host == "" {
		return ""
	}
	return net.JoinHostPort(h.cfg.Database.Host, strconv.Itoa(h.cfg.Database.Port))
}

// Target describes where the helper connects: host:port when a host is
// configured, otherwise the database file path. It is empty when the adapter
// falls back to its own default.
func (h *Helper) Target() string {
	if addr := h.address(); addr != "" {
		return addr
	}
	return h.cfg.Database.Path
}

// Disconnect closes the connection, discarding any uncommitted statements.
func (h *Helper) Disconnect() error {
	return h.db.Close()
}

// IsConnected reports whether the helper has a live connection.
func (h *Helper) IsConnected() bool {
	return h.db.IsConnected()
}

// Commit commits the statements executed since the last commit.
func (h *Helper) Commit(ctx context.Context) error {
	if !h.db.IsConnected() {
		return adapter.ErrNotConnected
	}
	return h.db.Commit(ctx)
}

// Rollback discards the statements run since the last commit.
func (h *Helper) Rollback(ctx context.Context) error {
	if !h.db.IsConnected() {
		return adapter.ErrNotConnected
	}
	return h.db.Rollback(ctx)
}

// Adapter returns the underlying adapter for direct access.
func (h *Helper) Adapter() adapter.Adapter {
	return h.db
}

// HMACKey returns validation.hmac from the configuration, unmodified.
func (h *Helper) HMACKey() string {
	return h.cfg.Validation.HMAC
}

// Config returns a copy of the helper's configuration.
func (h *Helper) Config() core.Config {
	return h.cfg
}

// BreakerState returns the state of the connect circuit breaker.
func (h *Helper) BreakerState() string {
	return h.breaker.State().String()
}

// SetMetrics routes connection attempts and every terminal builder call to m.
// Passing nil turns metrics off.
func (h *Helper) SetMetrics(m Metrics) {
	h.metrics = m
	h.Builder.SetObserver(m)
}

// BindErrorCallback registers fn to receive every error from Connect and the
// builder's terminal calls. Each call runs on its own goroutine and is never
// waited for. Passing nil removes the callback.
func (h *Helper) BindErrorCallback(fn func(error)) {
	h.onError = fn
}

func (h *Helper) report(err error) {
	if fn := h.onError; fn != nil && err != nil {
		go fn(err)
	}
}

// session routes the builder's statements to the adapter once connected.
type session struct {
	h *Helper
}

func (s session) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if !s.h.db.IsConnected() {
		return adapter.ErrNotConnected
	}
	return s.h.db.Exec(ctx, sqlStr, args...)
}

func (s session) Query(ctx context.Context, sqlStr string, args ...any) (*sql.Rows, error) {
	if !s.h.db.IsConnected() {
		return nil, adapter.ErrNotConnected
	}
	return s.h.db.Query(ctx, sqlStr, args...)
}

func (s session) Commit(ctx context.Context) error {
	return s.h.Commit(ctx)
}

// Rollback has nothing to discard without a connection.
func (s session) Rollback(ctx context.Context) error {
	if !s.h.db.IsConnected() {
		return nil
	}
	return s.h.db.Rollback(ctx)
}
