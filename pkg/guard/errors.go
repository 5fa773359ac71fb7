package guard

import (
	"errors"
	"fmt"
)

// ErrPotentialInjection is matched by every *InjectionError.
var ErrPotentialInjection = errors.New("potential SQL injection attempt")

// InjectionError reports a fragment that exactly matched a reserved token.
// It indicates a possible injection attempt, not a confirmed one.
type InjectionError struct {
	Token string
	Set   Set
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s is a reserved %s!", e.Token, e.Set)
}

// Is reports whether target is ErrPotentialInjection.
func (e *InjectionError) Is(target error) bool {
	return target == ErrPotentialInjection
}
