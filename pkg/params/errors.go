package params

import (
	"errors"
	"fmt"
)

// ErrNameUnavailable is returned when a parameter's name was not retained
var ErrNameUnavailable = errors.New("parameter name unavailable")

// NameUnavailableError reports a nameless parameter together with its declared type
type NameUnavailableError struct {
	Type string
}

func (e *NameUnavailableError) Error() string {
	if e.Type == "" {
		return ErrNameUnavailable.Error()
	}
	return fmt.Sprintf("%s: could not get name of parameter of type %s", ErrNameUnavailable, e.Type)
}

// Is reports whether target is ErrNameUnavailable
func (e *NameUnavailableError) Is(target error) bool {
	return target == ErrNameUnavailable
}
