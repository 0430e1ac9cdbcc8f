package analyze

import (
	"go/types"
	"path"
	"strconv"
	"strings"

	"arbitrary-generator/internal/shape"
)

// TypePath builds a readable path string for a field, e.g. "Stamp.Tags".
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders type expressions as they are written inside one
// package, and records which imports each expression needs. Packages that
// share a name get distinct aliases, stable for the stringer's lifetime.
type TypeStringer struct {
	pkg    *types.Package
	names  map[string]string // import path -> name used in expressions
	owners map[string]string // name -> import path
}

// NewTypeStringer creates a TypeStringer for code living in pkg. Reserved
// imports keep their names; other packages are renamed around them.
func NewTypeStringer(pkg *types.Package, reserved ...shape.Import) *TypeStringer {
	s := &TypeStringer{
		pkg:    pkg,
		names:  make(map[string]string),
		owners: make(map[string]string),
	}

	for _, imp := range reserved {
		name := imp.Name
		if name == "" {
			name = path.Base(imp.Path)
		}

		s.names[imp.Path] = name
		s.owners[name] = imp.Path
	}

	return s
}

// Ref returns the opaque reference used by shapes for t.
func (s *TypeStringer) Ref(t types.Type) shape.TypeRef {
	var imports []shape.Import

	expr := types.TypeString(t, func(p *types.Package) string {
		if s.pkg != nil && p.Path() == s.pkg.Path() {
			return ""
		}

		name := s.name(p)

		imp := shape.Import{Path: p.Path()}
		if name != path.Base(p.Path()) {
			imp.Name = name
		}

		imports = append(imports, imp)

		return name
	})

	return shape.TypeRef{
		Expr:    expr,
		Imports: shape.SortImports(imports),
	}
}

// name returns the identifier p is referenced by, allocating one on first use.
func (s *TypeStringer) name(p *types.Package) string {
	if name, ok := s.names[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 2; s.taken(name); i++ {
		name = p.Name() + strconv.Itoa(i)
	}

	s.names[p.Path()] = name
	s.owners[name] = p.Path()

	return name
}

// taken reports whether name already refers to something in the output file.
func (s *TypeStringer) taken(name string) bool {
	if _, ok := s.owners[name]; ok {
		return true
	}

	return s.pkg != nil && s.pkg.Scope().Lookup(name) != nil
}
