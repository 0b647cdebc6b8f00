package params

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genClass() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "example.com/app", "example.com/engine"),
		gen.Identifier(),
		gen.OneConstOf(Concrete, Interface, Abstract),
		gen.Bool(),
	).Map(func(vals []interface{}) Class {
		return Class{
			PkgPath:        vals[0].(string),
			Name:           vals[1].(string),
			Classification: vals[2].(Classification),
			Sequence:       vals[3].(bool),
		}
	})
}

func genTypeDescriptor() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(KindSimple, KindParameterized, KindArray),
		genClass(),
		gen.Bool(),
	).Map(func(vals []interface{}) *TypeDescriptor {
		return &TypeDescriptor{
			Kind:     vals[0].(TypeKind),
			Class:    vals[1].(Class),
			Nullable: vals[2].(bool),
		}
	})
}

func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	r := NewResolver(WithContextType(execContext))

	properties.Property("named parameters resolve to their exact name", prop.ForAll(
		func(name string, typ *TypeDescriptor) bool {
			got, err := r.Name(named(name, typ))
			return err == nil && got == name
		},
		gen.AnyString().SuchThat(func(s string) bool { return s != "" }),
		genTypeDescriptor(),
	))

	properties.Property("nameless parameters never yield a placeholder", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			got, err := r.Name(&stubParam{typ: typ})
			return got == "" && errors.Is(err, ErrNameUnavailable)
		},
		genTypeDescriptor(),
	))

	properties.Property("description is the exact annotation text", prop.ForAll(
		func(text string, typ *TypeDescriptor) bool {
			p := named("p", typ, Description(text))
			first, ok1 := r.Description(p)
			second, ok2 := r.Description(p)
			return ok1 && ok2 && first == text && second == text
		},
		gen.AnyString(),
		genTypeDescriptor(),
	))

	properties.Property("no description annotation means absent", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			_, ok := r.Description(named("p", typ))
			return !ok
		},
		genTypeDescriptor(),
	))

	properties.Property("abstract iff interface or abstract class", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			want := typ.Class.Classification != Concrete
			return r.IsUnsupportedAbstractType(named("p", typ)) == want
		},
		genTypeDescriptor(),
	))

	properties.Property("context match is identity only", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			want := typ.Class.Identity() == execContext.Identity()
			return r.IsInjectedContextType(named("p", typ)) == want
		},
		genTypeDescriptor(),
	))

	properties.Property("arrays are never repeated", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			typ.Kind = KindArray
			return !r.IsRepeatedValue(named("p", typ))
		},
		genTypeDescriptor(),
	))

	properties.Property("repeated iff sequence and not array", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			want := typ.Kind != KindArray && typ.Class.Sequence
			return r.IsRepeatedValue(named("p", typ)) == want
		},
		genTypeDescriptor(),
	))

	properties.Property("runtime class is the declared class", prop.ForAll(
		func(typ *TypeDescriptor) bool {
			return r.RuntimeClass(named("p", typ)) == typ.Class
		},
		genTypeDescriptor(),
	))

	properties.TestingRun(t)
}
