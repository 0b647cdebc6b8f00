package sourceparam

import (
	"go/ast"
	"go/types"

	"github.com/conduit-lang/paramgen/pkg/params"
)

var (
	sliceClass = params.Class{Name: "slice", Sequence: true}
	arrayClass = params.Class{Name: "array"}
	mapClass   = params.Class{Name: "map"}
)

// describer maps go/types types onto parameter type descriptors, falling back
// to the syntax tree where type checking could not resolve a type.
type describer struct {
	pkgPath  string
	abstract map[string]bool
	imports  map[string]string
	info     *types.Info
}

// describeField describes the declared type expression of a parameter
func (d *describer) describeField(expr ast.Expr) params.TypeDescriptor {
	if e, ok := expr.(*ast.Ellipsis); ok {
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: sliceClass,
			Args:  []params.TypeDescriptor{d.describeField(e.Elt)},
		}
	}
	return d.describeType(d.info.TypeOf(expr), expr, make(map[types.Type]bool))
}

func (d *describer) describeType(t types.Type, expr ast.Expr, visiting map[types.Type]bool) params.TypeDescriptor {
	if t == nil || !valid(t) {
		return d.describeExpr(expr)
	}
	t = types.Unalias(t)
	if visiting[t] {
		return params.TypeDescriptor{Kind: params.KindSimple, Class: d.classOf(t)}
	}
	visiting[t] = true
	defer delete(visiting, t)

	switch tt := t.(type) {
	case *types.Pointer:
		var elemExpr ast.Expr
		if star, ok := expr.(*ast.StarExpr); ok {
			elemExpr = star.X
		}
		desc := d.describeType(tt.Elem(), elemExpr, visiting)
		desc.Nullable = true
		return desc

	case *types.Named:
		desc := params.TypeDescriptor{Kind: params.KindSimple, Class: d.classOf(tt)}
		generic := tt.TypeArgs() != nil && tt.TypeArgs().Len() > 0
		if generic {
			desc.Kind = params.KindParameterized
		}
		// Containers carry their element types whether or not they are generic,
		// so Keyed[K, V] over []V has element V rather than K.
		switch u := tt.Underlying().(type) {
		case *types.Slice:
			desc.Args = []params.TypeDescriptor{d.describeType(u.Elem(), nil, visiting)}
		case *types.Array:
			desc.Kind = params.KindArray
			desc.Args = []params.TypeDescriptor{d.describeType(u.Elem(), nil, visiting)}
		case *types.Map:
			desc.Kind = params.KindParameterized
			desc.Args = []params.TypeDescriptor{
				d.describeType(u.Key(), nil, visiting),
				d.describeType(u.Elem(), nil, visiting),
			}
		case *types.Basic:
			desc.Underlying = u.Name()
		default:
			if generic {
				args := tt.TypeArgs()
				for i := 0; i < args.Len(); i++ {
					desc.Args = append(desc.Args, d.describeType(args.At(i), nil, visiting))
				}
			}
		}
		return desc

	case *types.Slice:
		var elemExpr ast.Expr
		if arr, ok := expr.(*ast.ArrayType); ok {
			elemExpr = arr.Elt
		}
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: sliceClass,
			Args:  []params.TypeDescriptor{d.describeType(tt.Elem(), elemExpr, visiting)},
		}

	case *types.Array:
		var elemExpr ast.Expr
		if arr, ok := expr.(*ast.ArrayType); ok {
			elemExpr = arr.Elt
		}
		return params.TypeDescriptor{
			Kind:  params.KindArray,
			Class: arrayClass,
			Args:  []params.TypeDescriptor{d.describeType(tt.Elem(), elemExpr, visiting)},
		}

	case *types.Map:
		var keyExpr, valueExpr ast.Expr
		if m, ok := expr.(*ast.MapType); ok {
			keyExpr, valueExpr = m.Key, m.Value
		}
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: mapClass,
			Args: []params.TypeDescriptor{
				d.describeType(tt.Key(), keyExpr, visiting),
				d.describeType(tt.Elem(), valueExpr, visiting),
			},
		}
	}

	return params.TypeDescriptor{Kind: params.KindSimple, Class: d.classOf(t)}
}

// classOf returns the erased class of a resolved, non-container type
func (d *describer) classOf(t types.Type) params.Class {
	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		class := params.Class{Name: obj.Name()}
		if obj.Pkg() != nil {
			class.PkgPath = obj.Pkg().Path()
		}
		switch tt.Underlying().(type) {
		case *types.Interface:
			class.Classification = params.Interface
		case *types.Slice:
			class.Sequence = true
		case *types.Struct:
			if d.abstract[class.Identity()] {
				class.Classification = params.Abstract
			}
		}
		return class
	case *types.Interface:
		name := tt.String()
		if tt.NumMethods() == 0 && tt.NumEmbeddeds() == 0 {
			name = "any"
		}
		return params.Class{Name: name, Classification: params.Interface}
	case *types.TypeParam:
		return params.Class{Name: tt.Obj().Name(), Classification: params.Interface}
	case *types.Basic:
		return params.Class{Name: tt.Name()}
	default:
		return params.Class{Name: t.String()}
	}
}

// describeExpr derives a descriptor from syntax alone
func (d *describer) describeExpr(expr ast.Expr) params.TypeDescriptor {
	switch e := expr.(type) {
	case nil:
		return params.TypeDescriptor{Kind: params.KindSimple, Class: params.Class{Name: "invalid type"}}

	case *ast.ParenExpr:
		return d.describeExpr(e.X)

	case *ast.StarExpr:
		desc := d.describeExpr(e.X)
		desc.Nullable = true
		return desc

	case *ast.Ellipsis:
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: sliceClass,
			Args:  []params.TypeDescriptor{d.describeExpr(e.Elt)},
		}

	case *ast.ArrayType:
		if e.Len == nil {
			return params.TypeDescriptor{
				Kind:  params.KindParameterized,
				Class: sliceClass,
				Args:  []params.TypeDescriptor{d.describeExpr(e.Elt)},
			}
		}
		return params.TypeDescriptor{
			Kind:  params.KindArray,
			Class: arrayClass,
			Args:  []params.TypeDescriptor{d.describeExpr(e.Elt)},
		}

	case *ast.MapType:
		return params.TypeDescriptor{
			Kind:  params.KindParameterized,
			Class: mapClass,
			Args:  []params.TypeDescriptor{d.describeExpr(e.Key), d.describeExpr(e.Value)},
		}

	case *ast.InterfaceType:
		return params.TypeDescriptor{
			Kind:  params.KindSimple,
			Class: params.Class{Name: "any", Classification: params.Interface},
		}

	case *ast.IndexExpr:
		desc := d.describeExpr(e.X)
		desc.Kind = params.KindParameterized
		desc.Args = []params.TypeDescriptor{d.describeExpr(e.Index)}
		return desc

	case *ast.IndexListExpr:
		desc := d.describeExpr(e.X)
		desc.Kind = params.KindParameterized
		desc.Args = nil
		for _, idx := range e.Indices {
			desc.Args = append(desc.Args, d.describeExpr(idx))
		}
		return desc

	case *ast.Ident:
		if obj := types.Universe.Lookup(e.Name); obj != nil {
			if _, ok := obj.Type().(*types.Basic); ok {
				return params.TypeDescriptor{Kind: params.KindSimple, Class: params.Class{Name: e.Name}}
			}
		}
		return params.TypeDescriptor{Kind: params.KindSimple, Class: d.declared(d.pkgPath, e.Name)}

	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok {
			if path, ok := d.imports[pkg.Name]; ok {
				return params.TypeDescriptor{Kind: params.KindSimple, Class: d.declared(path, e.Sel.Name)}
			}
		}
	}

	return params.TypeDescriptor{Kind: params.KindSimple, Class: params.Class{Name: types.ExprString(expr)}}
}

// declared builds the class of a named type whose definition could not be
// inspected; only configuration can mark it abstract.
func (d *describer) declared(pkgPath, name string) params.Class {
	class := params.Class{PkgPath: pkgPath, Name: name}
	if d.abstract[class.Identity()] {
		class.Classification = params.Abstract
	}
	return class
}

// valid reports whether t and every type it is built from resolved
func valid(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return tt.Kind() != types.Invalid
	case *types.Pointer:
		return valid(tt.Elem())
	case *types.Slice:
		return valid(tt.Elem())
	case *types.Array:
		return valid(tt.Elem())
	case *types.Map:
		return valid(tt.Key()) && valid(tt.Elem())
	default:
		return true
	}
}
