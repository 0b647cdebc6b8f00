// Package arguments turns resolved parameter metadata into schema argument
// definitions and renders them as SDL argument lists.
package arguments

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// Definition is one schema-visible argument
type Definition struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Type         string `json:"type" yaml:"type"`
	RuntimeClass string `json:"runtime_class" yaml:"runtime_class"`
	Repeated     bool   `json:"repeated" yaml:"repeated"`
	Position     int    `json:"position" yaml:"position"`
}

// Builder assembles argument definitions using a parameter resolver
type Builder struct {
	resolver *params.Resolver
	logger   *zap.Logger
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a builder
func NewBuilder(resolver *params.Resolver, opts ...BuilderOption) *Builder {
	b := &Builder{resolver: resolver, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the argument definitions for one function's parameters.
// The injected context parameter is omitted. The first parameter that cannot
// become an argument aborts the function with a *GenerationError.
func (b *Builder) Build(function string, ps []params.ParameterInfo) ([]Definition, error) {
	defs := make([]Definition, 0, len(ps))
	for position, p := range ps {
		if b.resolver.IsInjectedContextType(p) {
			b.logger.Debug("skipping context parameter",
				zap.String("function", function),
				zap.Int("position", position))
			continue
		}

		def, err := b.definition(function, position, p)
		if err != nil {
			b.logger.Debug("argument generation failed",
				zap.String("function", function),
				zap.Int("position", position),
				zap.Error(err))
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (b *Builder) definition(function string, position int, p params.ParameterInfo) (Definition, error) {
	class := b.resolver.RuntimeClass(p)

	name, err := b.resolver.Name(p)
	if err != nil {
		genErr := &GenerationError{
			Code:       ErrMissingName,
			Function:   function,
			Position:   position,
			Type:       class.Identity(),
			Message:    "could not get name of parameter",
			Suggestion: "name the parameter; blank and unnamed parameters cannot become arguments",
			cause:      err,
		}
		if !errors.Is(err, params.ErrNameUnavailable) {
			genErr.Message = err.Error()
		}
		return Definition{}, genErr
	}

	if b.resolver.IsUnsupportedAbstractType(p) {
		return Definition{}, &GenerationError{
			Code:       ErrAbstractInput,
			Function:   function,
			Position:   position,
			Parameter:  name,
			Type:       class.Identity(),
			Message:    fmt.Sprintf("%s %s cannot be used as an input type", class.Classification, class.Identity()),
			Suggestion: "use a concrete struct type",
		}
	}

	typ, err := b.typeRef(p)
	if err != nil {
		return Definition{}, &GenerationError{
			Code:       ErrUnsupportedShape,
			Function:   function,
			Position:   position,
			Parameter:  name,
			Type:       class.Identity(),
			Message:    err.Error(),
			Suggestion: "use a slice for lists and a struct for keyed values",
		}
	}

	def := Definition{
		Name:         name,
		Type:         typ,
		RuntimeClass: class.Identity(),
		Repeated:     b.resolver.IsRepeatedValue(p),
		Position:     position,
	}
	if desc, ok := b.resolver.Description(p); ok {
		def.Description = desc
	}
	return def, nil
}
