package params

// Resolver answers metadata queries about parameters.
// It holds only immutable configuration and is safe for concurrent use.
type Resolver struct {
	contextType *Class
}

// Option configures a Resolver
type Option func(*Resolver)

// WithContextType registers the execution-context type injected by the engine.
// Parameters of this type are hidden from generated schemas.
func WithContextType(c Class) Option {
	return func(r *Resolver) {
		ctx := c
		r.contextType = &ctx
	}
}

// NewResolver creates a resolver
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContextType returns the registered context type, if any
func (r *Resolver) ContextType() (Class, bool) {
	if r.contextType == nil {
		return Class{}, false
	}
	return *r.contextType, true
}

// Name returns the declared parameter name.
// A parameter without a retained name yields ErrNameUnavailable; callers must
// not substitute a placeholder.
func (r *Resolver) Name(p ParameterInfo) (string, error) {
	name, ok := p.Name()
	if !ok || name == "" {
		typ := ""
		if t := p.Type(); t != nil {
			typ = t.Class.Identity()
		}
		return "", &NameUnavailableError{Type: typ}
	}
	return name, nil
}

// Description returns the text of the first description annotation
func (r *Resolver) Description(p ParameterInfo) (string, bool) {
	for _, a := range p.Annotations() {
		if a.Kind != DescriptionKind {
			continue
		}
		text, ok := a.Payload[DescriptionField]
		return text, ok
	}
	return "", false
}

// IsUnsupportedAbstractType reports whether the parameter's class is an
// interface or abstract type, neither of which can be an input value.
func (r *Resolver) IsUnsupportedAbstractType(p ParameterInfo) bool {
	switch r.RuntimeClass(p).Classification {
	case Interface, Abstract:
		return true
	default:
		return false
	}
}

// IsInjectedContextType reports whether the parameter's class is exactly the
// registered context type. Matching is by identity only.
func (r *Resolver) IsInjectedContextType(p ParameterInfo) bool {
	if r.contextType == nil {
		return false
	}
	return r.RuntimeClass(p).Identity() == r.contextType.Identity()
}

// RuntimeClass returns the erased class behind the declared type; for a
// parameterized container this is the container, not its element.
// It panics if p has no type descriptor.
func (r *Resolver) RuntimeClass(p ParameterInfo) Class {
	t := p.Type()
	if t == nil {
		panic("params: parameter has no type descriptor")
	}
	return t.Class
}

// IsRepeatedValue reports whether the parameter is a list-like container.
// Fixed-size arrays are never repeated, whatever their element type.
func (r *Resolver) IsRepeatedValue(p ParameterInfo) bool {
	t := p.Type()
	if t == nil || t.Kind == KindArray {
		return false
	}
	return t.Class.Sequence
}
