package arguments

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// scalars maps builtin Go type names to SDL scalars
var scalars = map[string]string{
	"int":     "Int",
	"int8":    "Int",
	"int16":   "Int",
	"int32":   "Int",
	"int64":   "Int",
	"uint":    "Int",
	"uint8":   "Int",
	"uint16":  "Int",
	"uint32":  "Int",
	"uint64":  "Int",
	"byte":    "Int",
	"rune":    "Int",
	"float32": "Float",
	"float64": "Float",
	"string":  "String",
	"bool":    "Boolean",
}

// inputSuffix is appended to named types used in input positions
const inputSuffix = "Input"

// elemParam exposes a container's element type to the resolver
type elemParam struct {
	typ params.TypeDescriptor
}

func (e elemParam) Name() (string, bool)             { return "", false }
func (e elemParam) Annotations() []params.Annotation { return nil }
func (e elemParam) Type() *params.TypeDescriptor     { return &e.typ }

// typeRef returns the SDL type reference for p, e.g. "[String!]!"
func (b *Builder) typeRef(p params.ParameterInfo) (string, error) {
	t := p.Type()
	ref, err := b.baseRef(p)
	if err != nil {
		return "", err
	}
	if t.Nullable {
		return ref, nil
	}
	return ref + "!", nil
}

func (b *Builder) baseRef(p params.ParameterInfo) (string, error) {
	t := p.Type()
	class := b.resolver.RuntimeClass(p)

	if b.resolver.IsRepeatedValue(p) {
		elem, ok := t.Elem()
		if !ok {
			return "", fmt.Errorf("list %s has no element type", class.Identity())
		}
		inner := elemParam{typ: elem}
		if b.resolver.IsUnsupportedAbstractType(inner) {
			return "", fmt.Errorf("list element %s is %s and cannot be an input type",
				elem.Class.Identity(), elem.Class.Classification)
		}
		ref, err := b.typeRef(inner)
		if err != nil {
			return "", err
		}
		return "[" + ref + "]", nil
	}

	switch t.Kind {
	case params.KindArray:
		return "", fmt.Errorf("fixed-size array %s is not a list input", class.Identity())
	case params.KindParameterized:
		return "", fmt.Errorf("parameterized type %s has no input representation", class.Identity())
	}

	if class.PkgPath == "" || t.Underlying != "" {
		builtin := class.Name
		if t.Underlying != "" {
			builtin = t.Underlying
		}
		scalar, ok := scalars[builtin]
		if !ok {
			return "", fmt.Errorf("type %s has no input representation", class.Identity())
		}
		return scalar, nil
	}
	return class.Name + inputSuffix, nil
}

// Render renders definitions as an SDL argument list: (a: Int!, b: String)
func Render(defs []Definition) string {
	if len(defs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		parts = append(parts, d.SDL())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// SDL renders a single argument, prefixed by its description when present
func (d Definition) SDL() string {
	arg := d.Name + ": " + d.Type
	if d.Description == "" {
		return arg
	}
	return blockString(d.Description) + " " + arg
}

// blockString quotes text as an SDL block string. A trailing quote or
// backslash would merge with the closing delimiter, so it is followed by a
// newline, which block string parsing strips again.
func blockString(text string) string {
	body := strings.ReplaceAll(text, `"""`, `\"""`)
	if strings.HasSuffix(body, `"`) || strings.HasSuffix(body, `\`) {
		body += "\n"
	}
	return `"""` + body + `"""`
}
