package reflectparam

import "github.com/conduit-lang/paramgen/pkg/params"

// Parameter is a reflect-built parameter handle. It is immutable once built.
type Parameter struct {
	name        string
	position    int
	typ         params.TypeDescriptor
	annotations []params.Annotation
}

var _ params.ParameterInfo = (*Parameter)(nil)

// Name returns the caller-supplied name, if any
func (p *Parameter) Name() (string, bool) {
	return p.name, p.name != ""
}

// Annotations returns a copy of the parameter's annotations
func (p *Parameter) Annotations() []params.Annotation {
	out := make([]params.Annotation, len(p.annotations))
	copy(out, p.annotations)
	return out
}

// Type returns a copy of the declared type
func (p *Parameter) Type() *params.TypeDescriptor {
	t := p.typ.Clone()
	return &t
}

// Position returns the 0-based index in the signature
func (p *Parameter) Position() int {
	return p.position
}

// ParamOption configures how handles are built for one signature
type ParamOption func(*paramConfig)

type paramConfig struct {
	names        []string
	descriptions map[string]string
}

// Names supplies parameter names in declaration order.
// An empty string leaves that parameter unnamed.
func Names(names ...string) ParamOption {
	return func(c *paramConfig) {
		c.names = names
	}
}

// Descriptions attaches description annotations by parameter name
func Descriptions(m map[string]string) ParamOption {
	return func(c *paramConfig) {
		c.descriptions = m
	}
}
