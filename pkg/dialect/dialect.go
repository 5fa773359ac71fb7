// Package dialect describes how each supported database spells parameters and
// quotes identifiers.
//
// The query builder always emits ? placeholders. Adapters pass the finished
// statement through Dialect.Rebind before handing it to the driver so that
// PostgreSQL receives $1, $2, ... instead.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/core"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	DefaultPort int                   // 0 for file-based databases
	Placeholder core.PlaceholderStyle // How to format query parameters

	quote    string
	quoteEnd string
	escape   string
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.quoteEnd, d.escape)
	return d.quote + escaped + d.quoteEnd
}

// Rebind rewrites the ? placeholders in query into the dialect's style.
//
// Question marks inside single-quoted literals, double-quoted or backquoted
// identifiers, -- line comments and /* */ block comments are left alone. For
// PlaceholderQuestion dialects query is returned unchanged.
func (d *Dialect) Rebind(query string) string {
	if d.Placeholder == core.PlaceholderQuestion || !strings.Contains(query, "?") {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := strings.IndexByte(query[i+1:], c)
			i = skipTo(&sb, query, i, end, 1)
		case c == '-' && strings.HasPrefix(query[i:], "--"):
			end := strings.IndexByte(query[i+2:], '\n')
			i = skipTo(&sb, query, i, end, 2)
		case c == '/' && strings.HasPrefix(query[i:], "/*"):
			end := strings.Index(query[i+2:], "*/")
			if end >= 0 {
				end++
			}
			i = skipTo(&sb, query, i, end, 2)
		case c == '?':
			n++
			sb.WriteString(d.FormatPlaceholder(n))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// skipTo copies query[start:] verbatim up to and including the byte at
// offset end past the opener of width open, or to the end of query when the
// closer was not found. It returns the index of the last byte copied.
func skipTo(sb *strings.Builder, query string, start, end, open int) int {
	stop := len(query) - 1
	if end >= 0 {
		stop = start + open + end
	}
	sb.WriteString(query[start : stop+1])
	return stop
}

// ---------- Builder ----------

// Builder assembles an immutable Dialect.
type Builder struct {
	d *Dialect
}

// NewDialect starts a dialect definition with ANSI double-quote identifiers
// and ? placeholders.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{
		Name:        name,
		Placeholder: core.PlaceholderQuestion,
		quote:       `"`,
		quoteEnd:    `"`,
		escape:      `""`,
	}}
}

// Identifiers sets the identifier quote characters and the escape sequence
// for a quote end inside a name.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.d.quote = quote
	b.d.quoteEnd = quoteEnd
	b.d.escape = escape
	return b
}

// DefaultPort sets the TCP port used when the configuration leaves it unset.
func (b *Builder) DefaultPort(port int) *Builder {
	b.d.DefaultPort = port
	return b
}

// PlaceholderStyle sets the parameter placeholder style.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.d.Placeholder = style
	return b
}

// Build returns the configured Dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}
