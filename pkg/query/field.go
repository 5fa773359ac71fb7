package query

// Field is a selected column with an optional alias.
type Field struct {
	Name  string
	Alias string
}

// Col returns a Field without an alias.
func Col(name string) Field {
	return Field{Name: name}
}

// As returns a Field rendered as name AS 'alias'.
func As(name, alias string) Field {
	return Field{Name: name, Alias: alias}
}

// Cols returns one unaliased Field per name.
func Cols(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Col(n)
	}
	return fields
}
