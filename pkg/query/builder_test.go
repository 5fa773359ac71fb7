package query

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/chainsql/pkg/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauses(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *Builder) *Builder
		expected string
	}{
		{
			name: "select with and without alias",
			build: func(b *Builder) *Builder {
				return b.Select(Col("a"), As("b", "x")).From("t", "")
			},
			expected: "SELECT a, b AS 'x' FROM t ",
		},
		{
			name: "select distinct",
			build: func(b *Builder) *Builder {
				return b.SelectDistinct(Cols("city", "country")...).From("users", "u")
			},
			expected: "SELECT DISTINCT city, country FROM users u ",
		},
		{
			name:     "select all",
			build:    func(b *Builder) *Builder { return b.SelectAll().From("t", "") },
			expected: "SELECT * FROM t ",
		},
		{
			name: "update set where",
			build: func(b *Builder) *Builder {
				return b.Update("users").Set("name", "email").Where("id = ?")
			},
			expected: "UPDATE users SET name=?, email=? WHERE id = ? ",
		},
		{
			name:     "delete where",
			build:    func(b *Builder) *Builder { return b.Delete("sessions").Where("expires < ?") },
			expected: "DELETE FROM sessions WHERE expires < ? ",
		},
		{
			name:     "insert into",
			build:    func(b *Builder) *Builder { return b.InsertInto("t", "a", "b", "c") },
			expected: "INSERT INTO t (a, b, c) VALUES (?, ?, ?) ",
		},
		{
			name:     "insert single key",
			build:    func(b *Builder) *Builder { return b.InsertInto("t", "a") },
			expected: "INSERT INTO t (a) VALUES (?) ",
		},
		{
			name:     "order by desc with limit",
			build:    func(b *Builder) *Builder { return b.OrderBy("name", true, 10) },
			expected: "ORDER BY name DESC LIMIT 10 ",
		},
		{
			name:     "order by zero limit omitted",
			build:    func(b *Builder) *Builder { return b.OrderBy("name", false, 0) },
			expected: "ORDER BY name ",
		},
		{
			name:     "order by negative limit omitted",
			build:    func(b *Builder) *Builder { return b.OrderBy("name", true, -3) },
			expected: "ORDER BY name DESC ",
		},
		{
			name: "inner join with on",
			build: func(b *Builder) *Builder {
				return b.SelectAll().From("users", "u").InnerJoin("orders", "o", "o.user_id = u.id", "")
			},
			expected: "SELECT * FROM users u INNER JOIN orders o ON o.user_id = u.id ",
		},
		{
			name: "left join with using and no alias",
			build: func(b *Builder) *Builder {
				return b.LeftJoin("profiles", "", "", "(user_id)")
			},
			expected: "LEFT JOIN profiles USING (user_id) ",
		},
		{
			name: "group by",
			build: func(b *Builder) *Builder {
				return b.Select(Col("country"), As("COUNT(*)", "n")).From("users", "").GroupBy("country")
			},
			expected: "SELECT country, COUNT(*) AS 'n' FROM users GROUP BY country ",
		},
		{
			name: "except",
			build: func(b *Builder) *Builder {
				return b.Select(Col("id")).From("a", "").Except().Select(Col("id")).From("b", "")
			},
			expected: "SELECT id FROM a EXCEPT SELECT id FROM b ",
		},
		{
			name: "subquery with alias",
			build: func(b *Builder) *Builder {
				return b.SelectAll().AddCustomQuery("FROM").
					OpenSubQuery().Select(Col("id")).From("t", "").CloseSubQuery("s")
			},
			expected: "SELECT * FROM ( SELECT id FROM t ) s ",
		},
		{
			name: "subquery without alias",
			build: func(b *Builder) *Builder {
				return b.Select(Col("id")).From("t", "").Where("id IN").
					OpenSubQuery().Select(Col("user_id")).From("bans", "").CloseSubQuery("")
			},
			expected: "SELECT id FROM t WHERE id IN ( SELECT user_id FROM bans ) ",
		},
		{
			name: "custom query",
			build: func(b *Builder) *Builder {
				return b.SelectAll().From("t", "").AddCustomQuery("FOR UPDATE")
			},
			expected: "SELECT * FROM t FOR UPDATE ",
		},
		{
			name:     "empty custom query appends nothing",
			build:    func(b *Builder) *Builder { return b.SelectAll().AddCustomQuery("") },
			expected: "SELECT * ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil, nil)
			got := tt.build(b)

			assert.Same(t, b, got, "clause methods return the same builder")
			require.NoError(t, b.Err())
			assert.Equal(t, tt.expected, b.SQL())
		})
	}
}

func TestClauses_Deterministic(t *testing.T) {
	build := func() string {
		b := New(nil, nil)
		return b.Select(Col("a"), As("b", "x")).From("t", "").SQL()
	}
	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
}

func TestClauses_NoDoubledSeparators(t *testing.T) {
	b := New(nil, nil)
	b.Select(Col("a"), Col("b")).
		From("t", "").
		LeftJoin("u", "", "u.id = t.id", "").
		Where("a = ?").
		GroupBy("a").
		OrderBy("a", false, 0).
		CloseSubQuery("")

	sql := b.SQL()
	assert.NotContains(t, sql, "  ")
	assert.NotContains(t, sql, ", ,")
	assert.NotContains(t, sql, ",  ")
	assert.True(t, strings.HasSuffix(sql, " "))
	assert.False(t, strings.HasSuffix(sql, "  "))
}

func TestRejectedClause(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		token string
	}{
		{"where keyword", func(b *Builder) *Builder { return b.SelectAll().From("t", "").Where("DROP") }, "DROP"},
		{"from table", func(b *Builder) *Builder { return b.SelectAll().From("TABLE", "") }, "TABLE"},
		{"from alias", func(b *Builder) *Builder { return b.SelectAll().From("t", "AS") }, "AS"},
		{"select field", func(b *Builder) *Builder { return b.Select(Col("id"), Col("UNION")) }, "UNION"},
		{"select alias", func(b *Builder) *Builder { return b.Select(As("id", "DATE")) }, "DATE"},
		{"set field", func(b *Builder) *Builder { return b.Update("t").Set("a", "SELECT") }, "SELECT"},
		{"insert table", func(b *Builder) *Builder { return b.InsertInto("INTO", "a") }, "INTO"},
		{"insert key", func(b *Builder) *Builder { return b.InsertInto("t", "a", "TIMESTAMP") }, "TIMESTAMP"},
		{"join on", func(b *Builder) *Builder { return b.InnerJoin("o", "", "OR", "") }, "OR"},
		{"join alias", func(b *Builder) *Builder { return b.LeftJoin("o", "PACKAGE", "", "") }, "PACKAGE"},
		{"join using", func(b *Builder) *Builder { return b.LeftJoin("o", "", "", "USING") }, "USING"},
		{"order by", func(b *Builder) *Builder { return b.OrderBy("DESC", false, 0) }, "DESC"},
		{"group by", func(b *Builder) *Builder { return b.GroupBy("HAVING") }, "HAVING"},
		{"subquery alias", func(b *Builder) *Builder { return b.OpenSubQuery().CloseSubQuery("LIMIT") }, "LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil, nil)
			tt.build(b)

			assert.Empty(t, b.SQL(), "rejected clause clears the statement")

			var ie *guard.InjectionError
			require.ErrorAs(t, b.Err(), &ie)
			assert.Equal(t, tt.token, ie.Token)
			assert.ErrorIs(t, b.Err(), guard.ErrPotentialInjection)
		})
	}
}

func TestRejectedClause_LaterClausesAreNoOps(t *testing.T) {
	b := New(nil, nil)
	b.Where("DROP").SelectAll().From("t", "").Update("x").Delete("y").
		AddCustomQuery("1").OpenSubQuery().Except().InsertInto("t", "a")

	assert.Empty(t, b.SQL())
	assert.EqualError(t, b.Err(), "DROP is a reserved keyword!")

	b.Reset()
	assert.NoError(t, b.Err())
	b.SelectAll()
	assert.Equal(t, "SELECT * ", b.SQL())
}

func TestNoFields(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
	}{
		{"select", func(b *Builder) *Builder { return b.Select() }},
		{"select distinct", func(b *Builder) *Builder { return b.SelectDistinct() }},
		{"set", func(b *Builder) *Builder { return b.Update("t").Set() }},
		{"insert", func(b *Builder) *Builder { return b.InsertInto("t") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil, nil)
			tt.build(b)
			assert.ErrorIs(t, b.Err(), ErrNoFields)
			assert.Empty(t, b.SQL())
		})
	}
}

func TestEmptyIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		want  error
	}{
		{"select field", func(b *Builder) *Builder { return b.Select(Col("a"), Col("")).From("t", "") }, ErrEmptyIdentifier},
		{"only field", func(b *Builder) *Builder { return b.Select(Col("")) }, ErrEmptyIdentifier},
		{"aliased empty field", func(b *Builder) *Builder { return b.SelectDistinct(As("", "n")) }, ErrEmptyIdentifier},
		{"set field", func(b *Builder) *Builder { return b.Update("t").Set("a", "") }, ErrEmptyIdentifier},
		{"update table", func(b *Builder) *Builder { return b.Update("") }, ErrEmptyIdentifier},
		{"delete table", func(b *Builder) *Builder { return b.Delete("") }, ErrEmptyIdentifier},
		{"from table", func(b *Builder) *Builder { return b.SelectAll().From("", "") }, ErrEmptyIdentifier},
		{"from table with alias", func(b *Builder) *Builder { return b.SelectAll().From("", "u") }, ErrEmptyIdentifier},
		{"join table", func(b *Builder) *Builder { return b.InnerJoin("", "o", "o.id = u.id", "") }, ErrEmptyIdentifier},
		{"insert table", func(b *Builder) *Builder { return b.InsertInto("", "a") }, ErrEmptyIdentifier},
		{"insert key", func(b *Builder) *Builder { return b.InsertInto("t", "a", "") }, ErrEmptyIdentifier},
		{"where", func(b *Builder) *Builder { return b.SelectAll().From("t", "").Where("") }, ErrEmptyPredicate},
		{"group by", func(b *Builder) *Builder { return b.GroupBy("") }, ErrEmptyPredicate},
		{"order by", func(b *Builder) *Builder { return b.OrderBy("", true, 5) }, ErrEmptyPredicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(nil, nil)
			tt.build(b)
			assert.ErrorIs(t, b.Err(), tt.want)
			assert.Empty(t, b.SQL(), "rejected clause clears the statement")
		})
	}
}

func TestEmptyIdentifier_ReservedWordWins(t *testing.T) {
	b := New(nil, nil)
	b.Select(Col(""), Col("DROP"))
	assert.ErrorIs(t, b.Err(), ErrEmptyIdentifier, "fields are checked in order")

	b.Reset()
	b.InsertInto("t", "", "DROP")
	assert.ErrorIs(t, b.Err(), guard.ErrPotentialInjection, "keys are checked for reserved words first")
}

func TestReset(t *testing.T) {
	b := New(nil, nil)
	b.SelectAll().From("t", "")
	require.NotEmpty(t, b.SQL())

	b.Reset()
	assert.Empty(t, b.SQL())
}

func TestTrustedClausesAreUnchecked(t *testing.T) {
	b := New(nil, nil)
	b.Update("DROP").AddCustomQuery("UNION")
	require.NoError(t, b.Err())
	assert.Equal(t, "UPDATE DROP UNION ", b.SQL())

	b.Reset()
	b.Delete("TABLE")
	require.NoError(t, b.Err())
	assert.Equal(t, "DELETE FROM TABLE ", b.SQL())
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, Field{Name: "id"}, Col("id"))
	assert.Equal(t, Field{Name: "id", Alias: "key"}, As("id", "key"))
	assert.Equal(t, []Field{{Name: "a"}, {Name: "b"}}, Cols("a", "b"))
	assert.Empty(t, Cols())
}
