// Package params resolves schema-facing metadata for function parameters.
//
// A parameter is seen only through the ParameterInfo interface, so the same
// resolver works over reflect-built handles, handles parsed from Go source, or
// any other introspection layer that can describe a parameter.
package params

import "strings"

// DescriptionKind is the annotation kind carrying a human-readable description.
const DescriptionKind = "description"

// DescriptionField is the payload field holding the description text.
const DescriptionField = "value"

// Classification says whether a class can be instantiated directly
type Classification int

const (
	// Concrete types can be built from wire values.
	Concrete Classification = iota
	// Interface types can only be implemented.
	Interface
	// Abstract types can only be extended.
	Abstract
)

func (c Classification) String() string {
	switch c {
	case Concrete:
		return "concrete"
	case Interface:
		return "interface"
	case Abstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// TypeKind is the shape of a declared type
type TypeKind int

const (
	// KindSimple is a plain, non-generic type.
	KindSimple TypeKind = iota
	// KindParameterized is a generic type with type arguments (slices, maps, L[T]).
	KindParameterized
	// KindArray is a fixed-size array.
	KindArray
)

func (k TypeKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindParameterized:
		return "parameterized"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Class is the erased, class-like descriptor behind a declared type
type Class struct {
	// PkgPath is the import path of the declaring package; empty for builtins.
	PkgPath        string
	Name           string
	Classification Classification
	// Sequence marks list-like containers.
	Sequence bool
}

// Identity returns the fully qualified name used for identity comparisons
func (c Class) Identity() string {
	if c.PkgPath == "" {
		return c.Name
	}
	return c.PkgPath + "." + c.Name
}

func (c Class) String() string {
	return c.Identity()
}

// ParseClass parses "import/path.Name" into a class identity.
// A string without a dot is treated as a builtin name.
func ParseClass(id string) Class {
	slash := strings.LastIndex(id, "/")
	dot := strings.LastIndex(id, ".")
	if dot <= slash {
		return Class{Name: id}
	}
	return Class{PkgPath: id[:dot], Name: id[dot+1:]}
}

// TypeDescriptor describes the declared type of a parameter
type TypeDescriptor struct {
	Kind  TypeKind
	Class Class
	// Args holds the element type of a container, the key and value types of
	// a map, or the type arguments of any other generic type.
	Args     []TypeDescriptor
	Nullable bool
	// Underlying names the builtin type behind a named non-struct type, e.g.
	// "string" for "type Status string". Empty otherwise.
	Underlying string
}

// Clone returns a deep copy of t
func (t TypeDescriptor) Clone() TypeDescriptor {
	if t.Args != nil {
		args := make([]TypeDescriptor, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.Clone()
		}
		t.Args = args
	}
	return t
}

// Elem returns the first type argument, if any
func (t *TypeDescriptor) Elem() (TypeDescriptor, bool) {
	if t == nil || len(t.Args) == 0 {
		return TypeDescriptor{}, false
	}
	return t.Args[0], true
}

// Annotation is one entry of a parameter's declarative metadata
type Annotation struct {
	Kind    string
	Payload map[string]string
}

// Description builds a description annotation
func Description(text string) Annotation {
	return Annotation{
		Kind:    DescriptionKind,
		Payload: map[string]string{DescriptionField: text},
	}
}

// ParameterInfo is a read-only view of one declared function parameter.
// Implementations are owned by the introspection layer that created them.
type ParameterInfo interface {
	// Name returns the declared name and whether one was retained.
	Name() (string, bool)

	// Annotations returns the metadata annotations in declaration order.
	Annotations() []Annotation

	// Type returns the declared type. It is never nil for a valid handle.
	Type() *TypeDescriptor
}
