package dialect

import (
	"testing"

	"github.com/leapstack-labs/chainsql/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPlaceholder(t *testing.T) {
	assert.Equal(t, "?", MariaDB.FormatPlaceholder(1))
	assert.Equal(t, "?", SQLite.FormatPlaceholder(3))
	assert.Equal(t, "$1", Postgres.FormatPlaceholder(1))
	assert.Equal(t, "$12", Postgres.FormatPlaceholder(12))
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name  string
		d     *Dialect
		input string
		want  string
	}{
		{
			name:  "question style unchanged",
			d:     MariaDB,
			input: "INSERT INTO t (a, b) VALUES (?, ?) ",
			want:  "INSERT INTO t (a, b) VALUES (?, ?) ",
		},
		{
			name:  "dollar style numbered in order",
			d:     Postgres,
			input: "INSERT INTO t (a, b, c) VALUES (?, ?, ?) ",
			want:  "INSERT INTO t (a, b, c) VALUES ($1, $2, $3) ",
		},
		{
			name:  "quoted alias keeps question mark",
			d:     Postgres,
			input: "SELECT a AS 'why?' FROM t WHERE a = ? ",
			want:  "SELECT a AS 'why?' FROM t WHERE a = $1 ",
		},
		{
			name:  "double quoted identifier",
			d:     Postgres,
			input: `SELECT "odd?col" FROM t WHERE x = ? AND y = ?`,
			want:  `SELECT "odd?col" FROM t WHERE x = $1 AND y = $2`,
		},
		{
			name:  "no placeholders",
			d:     Postgres,
			input: "SELECT * FROM t ",
			want:  "SELECT * FROM t ",
		},
		{
			name:  "line comment",
			d:     Postgres,
			input: "SELECT a -- why?\nFROM t WHERE a = ?",
			want:  "SELECT a -- why?\nFROM t WHERE a = $1",
		},
		{
			name:  "line comment at end",
			d:     Postgres,
			input: "DELETE FROM t WHERE a = ? -- or b = ?",
			want:  "DELETE FROM t WHERE a = $1 -- or b = ?",
		},
		{
			name:  "block comment",
			d:     Postgres,
			input: "SELECT /* a? b? */ a FROM t WHERE a = ? AND b = ?",
			want:  "SELECT /* a? b? */ a FROM t WHERE a = $1 AND b = $2",
		},
		{
			name:  "unterminated block comment",
			d:     Postgres,
			input: "SELECT a FROM t WHERE a = ? /* b = ?",
			want:  "SELECT a FROM t WHERE a = $1 /* b = ?",
		},
		{
			name:  "unterminated quote",
			d:     Postgres,
			input: "SELECT ? AS 'x?",
			want:  "SELECT $1 AS 'x?",
		},
		{
			name:  "single dash and slash are operators",
			d:     Postgres,
			input: "SELECT a - ? / ? FROM t",
			want:  "SELECT a - $1 / $2 FROM t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Rebind(tt.input))
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`order`", MariaDB.QuoteIdentifier("order"))
	assert.Equal(t, "`a``b`", MariaDB.QuoteIdentifier("a`b"))
	assert.Equal(t, `"user"`, Postgres.QuoteIdentifier("user"))
	assert.Equal(t, `"a""b"`, SQLite.QuoteIdentifier(`a"b`))
}

func TestRegistry(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mariadb", "mariadb"},
		{"MariaDB", "mariadb"},
		{"mysql", "mariadb"},
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Get(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Name)
		})
	}

	_, ok := Get("oracle")
	assert.False(t, ok)

	assert.Equal(t, []string{"mariadb", "postgres", "sqlite"}, List())
	assert.Same(t, MariaDB, Default())
}

func TestBuilder(t *testing.T) {
	d := NewDialect("custom").
		Identifiers("[", "]", "]]").
		DefaultPort(1433).
		PlaceholderStyle(core.PlaceholderDollar).
		Build()

	assert.Equal(t, "custom", d.Name)
	assert.Equal(t, 1433, d.DefaultPort)
	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))
	assert.Equal(t, "$2", d.FormatPlaceholder(2))
}
