// Package reflectparam builds parameter handles from Go reflection data.
//
// Go reflection keeps parameter types but never parameter names, so names must
// be supplied by the caller. Parameters left without a name resolve to
// params.ErrNameUnavailable.
package reflectparam

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// Builtin container classes
var (
	sliceClass = params.Class{Name: "slice", Sequence: true}
	arrayClass = params.Class{Name: "array"}
	mapClass   = params.Class{Name: "map"}
)

// Inspector describes reflect types and builds parameter handles from funcs.
// It caches type descriptors and is safe for concurrent use.
type Inspector struct {
	abstract map[string]bool

	// descriptors caches reflect.Type -> params.TypeDescriptor
	descriptors sync.Map
}

// Option configures an Inspector
type Option func(*Inspector)

// WithAbstractTypes marks struct types, by identity, as abstract
func WithAbstractTypes(ids ...string) Option {
	return func(i *Inspector) {
		for _, id := range ids {
			i.abstract[id] = true
		}
	}
}

// NewInspector creates an inspector
func NewInspector(opts ...Option) *Inspector {
	i := &Inspector{abstract: make(map[string]bool)}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Describe returns the type descriptor for t. Each call returns its own copy.
func (i *Inspector) Describe(t reflect.Type) params.TypeDescriptor {
	if cached, ok := i.descriptors.Load(t); ok {
		return cached.(params.TypeDescriptor).Clone()
	}
	desc := i.describe(t, make(map[reflect.Type]bool))
	i.descriptors.Store(t, desc)
	return desc.Clone()
}

// describe walks element types; visiting stops recursive types such as
// "type Tree []*Tree" from expanding forever.
func (i *Inspector) describe(t reflect.Type, visiting map[reflect.Type]bool) params.TypeDescriptor {
	elem := func(e reflect.Type) params.TypeDescriptor {
		if visiting[e] {
			return i.shallow(e)
		}
		visiting[t] = true
		defer delete(visiting, t)
		return i.describe(e, visiting)
	}

	switch t.Kind() {
	case reflect.Pointer:
		desc := elem(t.Elem())
		desc.Nullable = true
		return desc

	case reflect.Interface:
		name := t.Name()
		if name == "" {
			name = t.String()
		}
		return params.TypeDescriptor{
			Kind:  kindOf(t),
			Class: params.Class{PkgPath: t.PkgPath(), Name: erasedName(name), Classification: params.Interface},
		}

	case reflect.Slice:
		item := elem(t.Elem())
		if t.Name() == "" {
			return params.TypeDescriptor{
				Kind:  params.KindParameterized,
				Class: sliceClass,
				Args:  []params.TypeDescriptor{item},
			}
		}
		return params.TypeDescriptor{
			Kind:  kindOf(t),
			Class: params.Class{PkgPath: t.PkgPath(), Name: erasedName(t.Name()), Sequence: true},
			Args:  []params.TypeDescriptor{item},
		}

	case reflect.Array:
		class := arrayClass
		if t.Name() != "" {
			class = params.Class{PkgPath: t.PkgPath(), Name: erasedName(t.Name())}
		}
		return params.TypeDescriptor{
			Kind:  params.KindArray,
			Class: class,
			Args:  []params.TypeDescriptor{elem(t.Elem())},
		}

	case reflect.Map:
		class := mapClass
		if t.Name() != "" {
			class = params.Class{PkgPath: t.PkgPath(), Name: erasedName(t.Name())}
		}
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: class,
			Args:  []params.TypeDescriptor{elem(t.Key()), elem(t.Elem())},
		}
	}

	return i.shallow(t)
}

// shallow describes t without its element types
func (i *Inspector) shallow(t reflect.Type) params.TypeDescriptor {
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	class := params.Class{PkgPath: t.PkgPath(), Name: erasedName(name)}
	switch t.Kind() {
	case reflect.Struct:
		if i.abstract[class.Identity()] {
			class.Classification = params.Abstract
		}
	case reflect.Interface:
		class.Classification = params.Interface
	case reflect.Slice:
		class.Sequence = true
	}
	desc := params.TypeDescriptor{Kind: kindOf(t), Class: class}
	if class.PkgPath != "" && basic(t.Kind()) {
		desc.Underlying = t.Kind().String()
	}
	return desc
}

// basic reports whether k is a builtin scalar kind
func basic(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// kindOf reports instantiated generic types as parameterized
func kindOf(t reflect.Type) params.TypeKind {
	if strings.Contains(t.Name(), "[") {
		return params.KindParameterized
	}
	return params.KindSimple
}

// erasedName strips type arguments: "List[int]" -> "List"
func erasedName(name string) string {
	if idx := strings.Index(name, "["); idx > 0 {
		return name[:idx]
	}
	return name
}

// Func builds one handle per input of fn, which must be a func value
func (i *Inspector) Func(fn any, opts ...ParamOption) ([]*Parameter, error) {
	if fn == nil {
		return nil, fmt.Errorf("reflectparam: nil func")
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("reflectparam: expected func, got %s", t)
	}
	return i.signature(t, opts), nil
}

// Method builds handles for the named method of recv, excluding the receiver
func (i *Inspector) Method(recv any, name string, opts ...ParamOption) ([]*Parameter, error) {
	if recv == nil {
		return nil, fmt.Errorf("reflectparam: nil receiver")
	}
	m := reflect.ValueOf(recv).MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("reflectparam: %T has no method %s", recv, name)
	}
	return i.signature(m.Type(), opts), nil
}

func (i *Inspector) signature(t reflect.Type, opts []ParamOption) []*Parameter {
	cfg := paramConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make([]*Parameter, 0, t.NumIn())
	for idx := 0; idx < t.NumIn(); idx++ {
		p := &Parameter{
			position: idx,
			typ:      i.Describe(t.In(idx)),
		}
		if idx < len(cfg.names) && cfg.names[idx] != "" {
			p.name = cfg.names[idx]
			if text, ok := cfg.descriptions[p.name]; ok {
				p.annotations = append(p.annotations, params.Description(text))
			}
		}
		out = append(out, p)
	}
	return out
}
