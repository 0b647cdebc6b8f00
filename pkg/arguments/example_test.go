package arguments_test

import (
	"fmt"

	"github.com/conduit-lang/paramgen/pkg/arguments"
	"github.com/conduit-lang/paramgen/pkg/params"
	"github.com/conduit-lang/paramgen/pkg/params/reflectparam"
)

type Env struct{}

type PostFilter struct {
	Author string
}

func Search(env *Env, term string, limit *int, filter PostFilter, tags ...string) {}

func Example() {
	resolver := params.NewResolver(params.WithContextType(params.Class{
		PkgPath: "github.com/conduit-lang/paramgen/pkg/arguments_test",
		Name:    "Env",
	}))

	ps, err := reflectparam.NewInspector().Func(Search,
		reflectparam.Names("env", "term", "limit", "filter", "tags"),
		reflectparam.Descriptions(map[string]string{"term": "text to search for"}),
	)
	if err != nil {
		panic(err)
	}
	infos := make([]params.ParameterInfo, len(ps))
	for i, p := range ps {
		infos[i] = p
	}

	defs, err := arguments.NewBuilder(resolver).Build("Search", infos)
	if err != nil {
		panic(err)
	}
	fmt.Println("Search" + arguments.Render(defs))
	// Output:
	// Search("""text to search for""" term: String!, limit: Int, filter: PostFilterInput!, tags: [String!]!)
}
