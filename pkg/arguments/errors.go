package arguments

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a kind of generation error
type ErrorCode string

const (
	// ErrMissingName indicates a parameter whose name was not retained.
	ErrMissingName ErrorCode = "GEN100"
	// ErrAbstractInput indicates an interface or abstract parameter type.
	ErrAbstractInput ErrorCode = "GEN101"
	// ErrUnsupportedShape indicates a type with no SDL input representation.
	ErrUnsupportedShape ErrorCode = "GEN102"
)

// GenerationError reports why a function's arguments could not be generated
type GenerationError struct {
	Code       ErrorCode `json:"code"`
	Function   string    `json:"function"`
	Position   int       `json:"position"`
	Parameter  string    `json:"parameter,omitempty"`
	Type       string    `json:"type,omitempty"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`

	cause error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s parameter %d: %s", e.Code, e.Function, e.Position, e.Message)
}

// Unwrap returns the underlying resolver error, if any
func (e *GenerationError) Unwrap() error {
	return e.cause
}

// ErrorList collects generation errors across functions
type ErrorList []*GenerationError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	var b strings.Builder
	for i, err := range el {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Err returns nil for an empty list
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
