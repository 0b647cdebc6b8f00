// Package sourceparam builds parameter handles by parsing and type-checking Go
// source. Unlike reflection, source keeps parameter names, and descriptions can
// be written next to the function:
//
//	// Search finds posts.
//	//
//	// @description term text to search for
//	// @description limit maximum number of results
//	func Search(term string, limit *int) []Post
package sourceparam

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/modfile"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// Loader parses Go packages into functions with parameter handles.
// A Loader is not safe for concurrent use; the packages it returns are immutable.
type Loader struct {
	fset         *token.FileSet
	abstract     map[string]bool
	descriptions map[string]string
	pkgPath      string
	logger       *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithAbstractTypes marks struct types, by identity, as abstract
func WithAbstractTypes(ids ...string) Option {
	return func(l *Loader) {
		for _, id := range ids {
			l.abstract[id] = true
		}
	}
}

// WithDescriptions supplies descriptions keyed by "Func.param" or
// "Recv.Method.param". They take precedence over doc-comment descriptions.
func WithDescriptions(m map[string]string) Option {
	return func(l *Loader) {
		for k, v := range m {
			l.descriptions[k] = v
		}
	}
}

// WithPackagePath sets the import path used for types declared in the package
func WithPackagePath(path string) Option {
	return func(l *Loader) {
		l.pkgPath = path
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fset:         token.NewFileSet(),
		abstract:     make(map[string]bool),
		descriptions: make(map[string]string),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDir parses every non-test Go file in dir.
// When no package path was configured it is derived from the enclosing go.mod.
func (l *Loader) LoadDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	sources := make(map[string][]byte)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources[path] = data
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	if l.pkgPath == "" {
		if path, ok := importPathFor(dir); ok {
			l.pkgPath = path
		}
	}
	l.logger.Debug("loading package",
		zap.String("dir", dir),
		zap.String("package_path", l.pkgPath),
		zap.Int("files", len(sources)))

	return l.LoadFiles(sources)
}

// LoadFiles parses and type-checks in-memory sources keyed by file name
func (l *Loader) LoadFiles(sources map[string][]byte) (*Package, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parser.ParseFile(l.fset, name, sources[name], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if len(files) > 0 && f.Name.Name != files[0].Name.Name {
			return nil, fmt.Errorf("%s: package %s, expected %s", name, f.Name.Name, files[0].Name.Name)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files to load")
	}

	pkgPath := l.pkgPath
	if pkgPath == "" {
		pkgPath = files[0].Name.Name
	}

	info := &types.Info{
		Defs:  make(map[*ast.Ident]types.Object),
		Types: make(map[ast.Expr]types.TypeAndValue),
	}
	conf := types.Config{
		Importer: importer.ForCompiler(l.fset, "source", nil),
		Error: func(err error) {
			// Unresolved imports fall back to AST-derived identities
			l.logger.Debug("type check", zap.Error(err))
		},
	}
	// Errors were reported through conf.Error; partial results are still usable
	_, _ = conf.Check(pkgPath, l.fset, files, info)

	pkg := &Package{Name: files[0].Name.Name, Path: pkgPath}
	for _, f := range files {
		d := &describer{
			pkgPath:  pkgPath,
			abstract: l.abstract,
			imports:  fileImports(f),
			info:     info,
		}
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			pkg.Funcs = append(pkg.Funcs, l.buildFunc(fd, d))
		}
	}
	l.logger.Debug("loaded package",
		zap.String("package", pkg.Name),
		zap.Int("funcs", len(pkg.Funcs)))
	return pkg, nil
}

func (l *Loader) buildFunc(fd *ast.FuncDecl, d *describer) *Func {
	fn := &Func{
		Name:     fd.Name.Name,
		Receiver: receiverName(fd),
		Position: l.fset.Position(fd.Pos()),
	}
	docDescriptions := parseDescriptions(fd.Doc)

	position := 0
	if fd.Type.Params == nil {
		return fn
	}
	for _, field := range fd.Type.Params.List {
		names := field.Names
		if len(names) == 0 {
			// Unnamed parameter: one handle, no name
			names = []*ast.Ident{nil}
		}
		for _, ident := range names {
			p := &Parameter{
				position: position,
				typ:      d.describeField(field.Type),
			}
			if ident != nil && ident.Name != "_" {
				p.name = ident.Name
				key := fn.QualifiedName() + "." + ident.Name
				if text, ok := l.descriptions[key]; ok {
					p.annotations = append(p.annotations, params.Description(text))
				} else if text, ok := docDescriptions[ident.Name]; ok {
					p.annotations = append(p.annotations, params.Description(text))
				}
			}
			fn.Params = append(fn.Params, p)
			position++
		}
	}
	return fn
}

// receiverName returns the bare receiver type name of a method
func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return types.ExprString(expr)
		}
	}
}

// fileImports maps the local name of each import to its path
func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, spec := range f.Imports {
		path := strings.Trim(spec.Path.Value, `"`)
		name := path[strings.LastIndex(path, "/")+1:]
		if spec.Name != nil {
			name = spec.Name.Name
		}
		imports[name] = path
	}
	return imports
}

// importPathFor derives dir's import path from the nearest go.mod
func importPathFor(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", false
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil {
				return "", false
			}
			if rel == "." {
				return modPath, true
			}
			return modPath + "/" + filepath.ToSlash(rel), true
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", false
		}
		root = parent
	}
}
