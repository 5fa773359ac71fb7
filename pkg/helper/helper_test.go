package helper

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/chainsql/internal/testutil"
	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/core"
	"github.com/leapstack-labs/chainsql/pkg/dialect"
	"github.com/leapstack-labs/chainsql/pkg/guard"
	"github.com/leapstack-labs/chainsql/pkg/query"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/chainsql/pkg/adapters/mariadb"
	_ "github.com/leapstack-labs/chainsql/pkg/adapters/sqlite"
)

// flakyAdapter fails Connect until failures reaches zero.
type flakyAdapter struct {
	adapter.BaseSQLAdapter
	failures int
	calls    int
}

func (f *flakyAdapter) Connect(_ context.Context, _ adapter.Config) error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("connection refused")
	}
	return nil
}

// mockAdapter connects to a sqlmock database.
type mockAdapter struct {
	adapter.BaseSQLAdapter
	mockDB *sql.DB
}

func (m *mockAdapter) Connect(_ context.Context, _ adapter.Config) error {
	m.DB = m.mockDB
	return nil
}

func newMockHelper(t *testing.T) (*Helper, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &core.Config{Database: core.DatabaseConfig{Type: "mariadb"}}
	h := NewWithAdapter(cfg, &mockAdapter{mockDB: db}, testutil.NewTestLogger(t))
	require.NoError(t, h.Connect(context.Background()))
	return h, mock
}

func writeSQLiteConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  type: sqlite\n  path: " + filepath.Join(dir, "app.db") +
		"\nvalidation:\n  hmac: k3y\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()

	h, err := Open(writeSQLiteConfig(t), testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "k3y", h.HMACKey())
	assert.Equal(t, "sqlite", h.Config().Database.Type)
	assert.False(t, h.IsConnected())

	require.NoError(t, h.Connect(ctx))
	require.True(t, h.IsConnected())
	t.Cleanup(func() { _ = h.Disconnect() })

	require.NoError(t, h.AddCustomQuery("CREATE TABLE users (id INTEGER, name TEXT)").Do(ctx))
	require.NoError(t, h.InsertInto("users", "id", "name").Do(ctx, 1, "alice"))
	require.NoError(t, h.InsertInto("users", "id", "name").Execute(ctx, 2, "bob"))
	require.NoError(t, h.Commit(ctx))

	rows, err := h.Select(query.Col("name")).From("users", "").OrderBy("id", true, 0).Fetch(ctx)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"bob", "alice"}, names)
	assert.Empty(t, h.SQL())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil, nil)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New(&core.Config{Database: core.DatabaseConfig{Type: "oracle"}}, nil)
		var unknown *adapter.UnknownAdapterError
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("defaults applied", func(t *testing.T) {
		h, err := New(&core.Config{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "mariadb", h.Config().Database.Type)
		assert.Equal(t, 3306, h.Config().Database.Port)
		assert.Same(t, dialect.MariaDB, h.Adapter().Dialect())
	})
}

func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	h, err := New(&core.Config{Database: core.DatabaseConfig{Type: "sqlite"}}, nil)
	require.NoError(t, err)

	err = h.SelectAll().From("t", "").Execute(ctx)
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
	assert.Empty(t, h.SQL())

	err = h.InsertInto("t", "a").Do(ctx, 1)
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = h.SelectAll().From("t", "").Fetch(ctx)
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	assert.ErrorIs(t, h.Commit(ctx), adapter.ErrNotConnected)
	assert.NoError(t, h.Disconnect())
}

func TestDo_WithSQLMock(t *testing.T) {
	h, mock := newMockHelper(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET email=? WHERE id = ? ").
		WithArgs("a@example.com", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := h.Update("users").Set("email").Where("id = ?").Do(context.Background(), "a@example.com", 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_FailureRollsBack(t *testing.T) {
	h, mock := newMockHelper(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users (name) VALUES (?) ").
		WithArgs("ada").
		WillReturnError(errors.New("current transaction is aborted"))
	mock.ExpectRollback()

	err := h.InsertInto("users", "name").Do(ctx, "ada")
	var execErr *adapter.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.False(t, h.Adapter().(*mockAdapter).InTx())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users (name) VALUES (?) ").
		WithArgs("ada").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, h.InsertInto("users", "name").Do(ctx, "ada"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollback(t *testing.T) {
	h, mock := newMockHelper(t)
	ctx := context.Background()

	assert.NoError(t, h.Rollback(ctx), "nothing pending")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM t ").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	require.NoError(t, h.Delete("t").Execute(ctx))
	require.NoError(t, h.Rollback(ctx))

	mock.ExpectClose()
	require.NoError(t, h.Disconnect())
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.ErrorIs(t, h.Rollback(ctx), adapter.ErrNotConnected)
}

func TestConnect_FailureIsConnectionError(t *testing.T) {
	cfg := &core.Config{Database: core.DatabaseConfig{Type: "mariadb", Host: "db", Port: 3306}}
	fake := &flakyAdapter{failures: 1}
	h := NewWithAdapter(cfg, fake, nil)

	err := h.Connect(context.Background())
	var connErr *adapter.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "mariadb", connErr.Type)
	assert.Equal(t, "db:3306", connErr.Host)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConnect_BreakerOpensAfterThreeFailures(t *testing.T) {
	ctx := context.Background()
	fake := &flakyAdapter{failures: 10}
	logs := testutil.NewCapture()
	h := NewWithAdapter(&core.Config{Database: core.DatabaseConfig{Type: "mariadb"}}, fake, logs.Logger)

	for i := 0; i < 3; i++ {
		require.Error(t, h.Connect(ctx))
	}
	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, "open", h.BreakerState())

	err := h.Connect(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	var connErr *adapter.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Equal(t, 3, fake.calls, "open breaker does not reach the adapter")

	out := logs.String()
	assert.Contains(t, out, `"message":"circuit breaker state changed"`)
	assert.Contains(t, out, `"to":"open"`)
	assert.Contains(t, out, `"message":"error connecting to database"`)
}

func TestConnect_AlreadyConnected(t *testing.T) {
	h, _ := newMockHelper(t)
	assert.NoError(t, h.Connect(context.Background()))
	assert.True(t, h.IsConnected())
}

func TestBindErrorCallback(t *testing.T) {
	h, mock := newMockHelper(t)

	got := make(chan error, 4)
	h.BindErrorCallback(func(err error) { got <- err })

	// Rejected clause.
	err := h.SelectAll().From("t", "").Where("DROP").Execute(context.Background())
	require.ErrorIs(t, err, guard.ErrPotentialInjection)

	select {
	case cbErr := <-got:
		assert.ErrorIs(t, cbErr, guard.ErrPotentialInjection)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}

	// Driver error.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM t ").WillReturnError(assert.AnError)
	require.Error(t, h.Delete("t").Execute(context.Background()))

	select {
	case cbErr := <-got:
		var execErr *adapter.ExecutionError
		assert.ErrorAs(t, cbErr, &execErr)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
}

func TestBindErrorCallback_Connect(t *testing.T) {
	h := NewWithAdapter(&core.Config{}, &flakyAdapter{failures: 1}, nil)

	got := make(chan error, 1)
	h.BindErrorCallback(func(err error) { got <- err })
	require.Error(t, h.Connect(context.Background()))

	select {
	case cbErr := <-got:
		var connErr *adapter.ConnectionError
		assert.ErrorAs(t, cbErr, &connErr)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		db   core.DatabaseConfig
		want string
	}{
		{"host and port", core.DatabaseConfig{Type: "mariadb", Host: "db.local", Port: 3306}, "db.local:3306"},
		{"ipv6 host", core.DatabaseConfig{Type: "postgres", Host: "::1", Port: 5432}, "[::1]:5432"},
		{"sqlite path", core.DatabaseConfig{Type: "sqlite", Path: "/tmp/app.db"}, "/tmp/app.db"},
		{"nothing set", core.DatabaseConfig{Type: "mariadb"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWithAdapter(&core.Config{Database: tt.db}, &flakyAdapter{}, nil)
			assert.Equal(t, tt.want, h.Target())
		})
	}
}

type countingMetrics struct {
	connects   []error
	statements []string
}

func (m *countingMetrics) ObserveConnect(err error) { m.connects = append(m.connects, err) }

func (m *countingMetrics) ObserveStatement(op string, _ time.Duration, _ error) {
	m.statements = append(m.statements, op)
}

func TestSetMetrics(t *testing.T) {
	ctx := context.Background()
	h := NewWithAdapter(&core.Config{Database: core.DatabaseConfig{Type: "mariadb"}}, &flakyAdapter{failures: 1}, nil)
	m := &countingMetrics{}
	h.SetMetrics(m)

	require.Error(t, h.Connect(ctx))
	require.NoError(t, h.Connect(ctx))

	require.Len(t, m.connects, 2)
	assert.Error(t, m.connects[0])
	assert.NoError(t, m.connects[1])

	// flakyAdapter never sets a *sql.DB, so the statement fails with
	// ErrNotConnected; it is still observed.
	_ = h.Delete("t").Execute(ctx)
	assert.Equal(t, []string{"execute"}, m.statements)

	h.SetMetrics(nil)
	_ = h.Delete("t").Execute(ctx)
	assert.Len(t, m.statements, 1)
}
