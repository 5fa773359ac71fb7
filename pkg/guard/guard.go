// Package guard rejects caller-supplied SQL fragments that are exactly a
// reserved word.
//
// The check is a denylist over three fixed, case-sensitive sets (MariaDB
// keywords, MariaDB exceptions and Oracle-mode keywords). It only catches a
// fragment that equals a reserved word: "DROP" is rejected, "1=1 OR DROP" is
// not. It is a heuristic alarm layered on top of positional placeholders, not
// a sanitizer, and a rejection is not proof of an attack.
package guard

import (
	"reflect"
	"sort"
)

// Set identifies which reserved token set a word belongs to.
type Set int

const (
	// SetKeywords is the set of MariaDB reserved keywords.
	SetKeywords Set = iota
	// SetExceptions is the set of context-dependent reserved words.
	SetExceptions
	// SetModeTokens is the set of words reserved under Oracle compatibility mode.
	SetModeTokens
)

// String returns the wording used in rejection messages.
func (s Set) String() string {
	switch s {
	case SetKeywords:
		return "keyword"
	case SetExceptions:
		return "exception"
	case SetModeTokens:
		return "special keyword"
	default:
		return "unknown"
	}
}

// Lookup reports which set tok belongs to. Sets are tested in the order
// keywords, exceptions, mode tokens and the first hit wins.
func Lookup(tok string) (Set, bool) {
	if _, ok := keywords[tok]; ok {
		return SetKeywords, true
	}
	if _, ok := exceptions[tok]; ok {
		return SetExceptions, true
	}
	if _, ok := modeTokens[tok]; ok {
		return SetModeTokens, true
	}
	return 0, false
}

// IsReserved returns true if tok exactly matches a reserved token.
func IsReserved(tok string) bool {
	_, ok := Lookup(tok)
	return ok
}

// Check walks v and returns an *InjectionError for the first string that is a
// reserved token.
//
// v may be a string or a slice/array of strings nested to any depth. Values of
// any other kind (nil, numbers, structs, maps) are not examined.
func Check(v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return checkToken(t)
	case []string:
		for _, s := range t {
			if err := checkToken(s); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range t {
			if err := Check(item); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := Check(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
	case reflect.String:
		// Named string types.
		return checkToken(rv.String())
	}
	return nil
}

func checkToken(tok string) error {
	if tok == "" {
		return nil
	}
	if set, ok := Lookup(tok); ok {
		return &InjectionError{Token: tok, Set: set}
	}
	return nil
}

// Keywords returns the reserved keywords, sorted.
func Keywords() []string { return sortedKeys(keywords) }

// Exceptions returns the context-dependent reserved words, sorted.
func Exceptions() []string { return sortedKeys(exceptions) }

// ModeTokens returns the Oracle-mode reserved words, sorted.
func ModeTokens() []string { return sortedKeys(modeTokens) }

// Words returns the sorted contents of the given set.
func Words(s Set) []string {
	switch s {
	case SetKeywords:
		return Keywords()
	case SetExceptions:
		return Exceptions()
	case SetModeTokens:
		return ModeTokens()
	default:
		return nil
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
