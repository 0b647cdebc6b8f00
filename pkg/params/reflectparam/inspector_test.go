package reflectparam

import (
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/paramgen/pkg/params"
)

const pkgPath = "github.com/conduit-lang/paramgen/pkg/params/reflectparam"

type MyClass struct {
	Foo string
}

type MyInterface interface {
	Value() string
}

type MyAbstractClass struct {
	Value string
}

type ExecutionContext struct {
	FieldName string
}

type List[T any] []T

type IDs []string

type Tree []*Tree

type Status string

type Keyed[K comparable, V any] []V

type Container struct{}

func (Container) InterfaceInput(myInterface MyInterface) MyInterface { return myInterface }

func (Container) AbstractInput(myAbstractClass MyAbstractClass) MyAbstractClass {
	return myAbstractClass
}

func (Container) ListInput(myList []int) []int { return myList }

func (Container) ArrayInput(myArray [3]int) [3]int { return myArray }

func (Container) Environment(env *ExecutionContext) string { return env.FieldName }

func newResolver() *params.Resolver {
	return params.NewResolver(params.WithContextType(params.Class{PkgPath: pkgPath, Name: "ExecutionContext"}))
}

func TestInspector_Describe(t *testing.T) {
	in := NewInspector(WithAbstractTypes(pkgPath + ".MyAbstractClass"))

	tests := []struct {
		name     string
		typ      reflect.Type
		kind     params.TypeKind
		class    params.Class
		nullable bool
		args     int
	}{
		{"string", reflect.TypeOf(""), params.KindSimple, params.Class{Name: "string"}, false, 0},
		{"struct", reflect.TypeOf(MyClass{}), params.KindSimple, params.Class{PkgPath: pkgPath, Name: "MyClass"}, false, 0},
		{"pointer", reflect.TypeOf(&MyClass{}), params.KindSimple, params.Class{PkgPath: pkgPath, Name: "MyClass"}, true, 0},
		{"interface", reflect.TypeOf((*MyInterface)(nil)).Elem(), params.KindSimple,
			params.Class{PkgPath: pkgPath, Name: "MyInterface", Classification: params.Interface}, false, 0},
		{"stdlib interface", reflect.TypeOf((*io.Reader)(nil)).Elem(), params.KindSimple,
			params.Class{PkgPath: "io", Name: "Reader", Classification: params.Interface}, false, 0},
		{"abstract", reflect.TypeOf(MyAbstractClass{}), params.KindSimple,
			params.Class{PkgPath: pkgPath, Name: "MyAbstractClass", Classification: params.Abstract}, false, 0},
		{"slice", reflect.TypeOf([]int{}), params.KindParameterized, sliceClass, false, 1},
		{"array", reflect.TypeOf([3]int{}), params.KindArray, arrayClass, false, 1},
		{"map", reflect.TypeOf(map[string]int{}), params.KindParameterized, mapClass, false, 2},
		{"named slice", reflect.TypeOf(IDs{}), params.KindSimple,
			params.Class{PkgPath: pkgPath, Name: "IDs", Sequence: true}, false, 1},
		{"generic list", reflect.TypeOf(List[int]{}), params.KindParameterized,
			params.Class{PkgPath: pkgPath, Name: "List", Sequence: true}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := in.Describe(tt.typ)
			assert.Equal(t, tt.kind, desc.Kind)
			assert.Equal(t, tt.class, desc.Class)
			assert.Equal(t, tt.nullable, desc.Nullable)
			assert.Len(t, desc.Args, tt.args)
		})
	}
}

func TestInspector_Describe_EmptyInterface(t *testing.T) {
	desc := NewInspector().Describe(reflect.TypeOf((*any)(nil)).Elem())
	assert.Equal(t, params.Interface, desc.Class.Classification)
	assert.Equal(t, "interface {}", desc.Class.Name)
}

func TestInspector_Describe_RecursiveType(t *testing.T) {
	desc := NewInspector().Describe(reflect.TypeOf(Tree{}))
	assert.Equal(t, params.Class{PkgPath: pkgPath, Name: "Tree", Sequence: true}, desc.Class)

	require.Len(t, desc.Args, 1)
	elem := desc.Args[0]
	assert.True(t, elem.Nullable)
	assert.Equal(t, "Tree", elem.Class.Name)
	assert.Empty(t, elem.Args)
}

func TestInspector_Describe_Cached(t *testing.T) {
	in := NewInspector()
	typ := reflect.TypeOf([]MyClass{})

	first := in.Describe(typ)
	_, ok := in.descriptors.Load(typ)
	assert.True(t, ok)
	assert.Equal(t, first, in.Describe(typ))
}

func TestInspector_Describe_Concurrent(t *testing.T) {
	in := NewInspector()
	types := []reflect.Type{
		reflect.TypeOf([]int{}),
		reflect.TypeOf(map[string][]MyClass{}),
		reflect.TypeOf(&ExecutionContext{}),
		reflect.TypeOf(List[string]{}),
	}

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, typ := range types {
				in.Describe(typ)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, params.KindParameterized, in.Describe(types[1]).Kind)
}

func TestInspector_Func(t *testing.T) {
	in := NewInspector()
	r := newResolver()

	fn := func(string, []int, *ExecutionContext) {}
	ps, err := in.Func(fn,
		Names("query", "ids", "env"),
		Descriptions(map[string]string{"query": "search text"}),
	)
	require.NoError(t, err)
	require.Len(t, ps, 3)

	name, err := r.Name(ps[0])
	require.NoError(t, err)
	assert.Equal(t, "query", name)
	desc, ok := r.Description(ps[0])
	assert.True(t, ok)
	assert.Equal(t, "search text", desc)

	assert.True(t, r.IsRepeatedValue(ps[1]))
	_, ok = r.Description(ps[1])
	assert.False(t, ok)

	assert.True(t, r.IsInjectedContextType(ps[2]))
	assert.False(t, r.IsUnsupportedAbstractType(ps[2]))
	assert.Equal(t, 2, ps[2].Position())
}

func TestInspector_Func_WithoutNames(t *testing.T) {
	ps, err := NewInspector().Func(func(a, b int) int { return a + b })
	require.NoError(t, err)
	require.Len(t, ps, 2)

	_, err = newResolver().Name(ps[0])
	assert.ErrorIs(t, err, params.ErrNameUnavailable)
}

func TestInspector_Func_PartialNames(t *testing.T) {
	ps, err := NewInspector().Func(func(string, int, bool) {}, Names("first", ""))
	require.NoError(t, err)

	r := newResolver()
	_, err = r.Name(ps[0])
	assert.NoError(t, err)
	_, err = r.Name(ps[1])
	assert.ErrorIs(t, err, params.ErrNameUnavailable)
	_, err = r.Name(ps[2])
	assert.ErrorIs(t, err, params.ErrNameUnavailable)
}

func TestInspector_Func_Variadic(t *testing.T) {
	ps, err := NewInspector().Func(func(tags ...string) {}, Names("tags"))
	require.NoError(t, err)
	assert.True(t, newResolver().IsRepeatedValue(ps[0]))
}

func TestInspector_Func_NotAFunc(t *testing.T) {
	_, err := NewInspector().Func(42)
	assert.Error(t, err)

	_, err = NewInspector().Func(nil)
	assert.Error(t, err)
}

func TestInspector_Method(t *testing.T) {
	in := NewInspector(WithAbstractTypes(pkgPath + ".MyAbstractClass"))
	r := newResolver()

	tests := []struct {
		method   string
		name     string
		abstract bool
		context  bool
		repeated bool
		class    string
	}{
		{"InterfaceInput", "myInterface", true, false, false, pkgPath + ".MyInterface"},
		{"AbstractInput", "myAbstractClass", true, false, false, pkgPath + ".MyAbstractClass"},
		{"ListInput", "myList", false, false, true, "slice"},
		{"ArrayInput", "myArray", false, false, false, "array"},
		{"Environment", "env", false, true, false, pkgPath + ".ExecutionContext"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			ps, err := in.Method(Container{}, tt.method, Names(tt.name))
			require.NoError(t, err)
			require.Len(t, ps, 1, "receiver must not be reported")

			p := ps[0]
			assert.Equal(t, tt.abstract, r.IsUnsupportedAbstractType(p))
			assert.Equal(t, tt.context, r.IsInjectedContextType(p))
			assert.Equal(t, tt.repeated, r.IsRepeatedValue(p))
			assert.Equal(t, tt.class, r.RuntimeClass(p).Identity())
		})
	}
}

func TestInspector_Method_Unknown(t *testing.T) {
	_, err := NewInspector().Method(Container{}, "Missing")
	assert.Error(t, err)

	_, err = NewInspector().Method(nil, "Missing")
	assert.Error(t, err)
}

func TestParameter_IsReadOnly(t *testing.T) {
	ps, err := NewInspector().Func(func(string) {}, Names("q"), Descriptions(map[string]string{"q": "query"}))
	require.NoError(t, err)
	p := ps[0]

	p.Annotations()[0] = params.Annotation{Kind: "other"}
	p.Type().Class.Name = "mutated"

	desc, ok := newResolver().Description(p)
	assert.True(t, ok)
	assert.Equal(t, "query", desc)
	assert.Equal(t, "string", p.Type().Class.Name)
}

func TestInspector_Describe_NamedScalar(t *testing.T) {
	in := NewInspector()

	desc := in.Describe(reflect.TypeOf(Status("")))
	assert.Equal(t, params.Class{PkgPath: pkgPath, Name: "Status"}, desc.Class)
	assert.Equal(t, "string", desc.Underlying)

	assert.Empty(t, in.Describe(reflect.TypeOf("")).Underlying, "builtins have no underlying name")
	assert.Empty(t, in.Describe(reflect.TypeOf(MyClass{})).Underlying)
}

func TestInspector_Describe_GenericListElement(t *testing.T) {
	desc := NewInspector().Describe(reflect.TypeOf(Keyed[string, MyClass]{}))

	assert.Equal(t, params.KindParameterized, desc.Kind)
	assert.Equal(t, "Keyed", desc.Class.Name)
	require.Len(t, desc.Args, 1)
	assert.Equal(t, params.Class{PkgPath: pkgPath, Name: "MyClass"}, desc.Args[0].Class)
}

func TestInspector_Describe_CopiesAreIndependent(t *testing.T) {
	in := NewInspector()
	typ := reflect.TypeOf([][]int{})

	first := in.Describe(typ)
	first.Args[0].Class.Name = "mutated"
	first.Args[0].Args[0].Class.Name = "mutated"

	second := in.Describe(typ)
	assert.Equal(t, "slice", second.Args[0].Class.Name)
	assert.Equal(t, "int", second.Args[0].Args[0].Class.Name)
}

func TestParameter_TypeArgsAreNotShared(t *testing.T) {
	in := NewInspector()
	ps, err := in.Func(func([]MyClass, []MyClass) {}, Names("a", "b"))
	require.NoError(t, err)

	ps[0].Type().Args[0].Class.Name = "mutated"

	assert.Equal(t, "MyClass", ps[0].Type().Args[0].Class.Name)
	assert.Equal(t, "MyClass", ps[1].Type().Args[0].Class.Name)
	assert.Equal(t, "MyClass", in.Describe(reflect.TypeOf([]MyClass{})).Args[0].Class.Name)
}
