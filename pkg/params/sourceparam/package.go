package sourceparam

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// descriptionDirective introduces a parameter description in a doc comment
const descriptionDirective = "@description"

// Package is a parsed Go package
type Package struct {
	Name  string
	Path  string
	Funcs []*Func
}

// Func looks up a function by qualified name ("Name" or "Recv.Name")
func (p *Package) Func(name string) (*Func, bool) {
	for _, fn := range p.Funcs {
		if fn.QualifiedName() == name {
			return fn, true
		}
	}
	return nil, false
}

// Func is a declared function or method
type Func struct {
	Name     string
	Receiver string
	Position token.Position
	Params   []*Parameter
}

// QualifiedName returns "Recv.Name" for methods and "Name" for functions
func (f *Func) QualifiedName() string {
	if f.Receiver == "" {
		return f.Name
	}
	return f.Receiver + "." + f.Name
}

// Exported reports whether the function, and its receiver type if any, are exported
func (f *Func) Exported() bool {
	if !ast.IsExported(f.Name) {
		return false
	}
	return f.Receiver == "" || ast.IsExported(f.Receiver)
}

// ParameterInfos returns the parameters as resolver handles
func (f *Func) ParameterInfos() []params.ParameterInfo {
	out := make([]params.ParameterInfo, len(f.Params))
	for i, p := range f.Params {
		out[i] = p
	}
	return out
}

// Parameter is a source-built parameter handle
type Parameter struct {
	name        string
	position    int
	typ         params.TypeDescriptor
	annotations []params.Annotation
}

var _ params.ParameterInfo = (*Parameter)(nil)

// Name returns the declared name; blank and unnamed parameters have none
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

// parseDescriptions collects "@description <param> <text>" lines
func parseDescriptions(doc *ast.CommentGroup) map[string]string {
	out := make(map[string]string)
	if doc == nil {
		return out
	}
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, descriptionDirective)
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 2 {
			continue
		}
		name := fields[0]
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), name))
		if _, seen := out[name]; !seen {
			out[name] = text
		}
	}
	return out
}
