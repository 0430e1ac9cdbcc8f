package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"

	"arbitrary-generator/internal/diagnostic"
	"arbitrary-generator/internal/shape"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	// ErrTypeNotFound is returned when a requested type is not declared in
	// any loaded package.
	ErrTypeNotFound = errors.New("type not found")
	// ErrUnsupportedType is returned for types that have no shape.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Options tune how a shape is extracted.
type Options struct {
	// Positional lists struct type names built with unkeyed literals.
	Positional map[string]bool
	// Variants fixes the variant order of an interface. When empty, all
	// implementing structs of the package are used in declaration order.
	Variants []string
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the working directory for package patterns. Empty means the
	// process working directory.
	Dir string
	// Reserved imports are added to every generated file regardless of the
	// shapes; field types never reuse their names.
	Reserved []shape.Import

	graph     *TypeGraph
	stringers map[string]*TypeStringer // by package path
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		stringers: make(map[string]*TypeStringer),
	}
}

// stringer returns the TypeStringer shared by every shape of pkg, so that
// all routines of one output file agree on import names.
func (a *Analyzer) stringer(pkg *types.Package) *TypeStringer {
	if s, ok := a.stringers[pkg.Path()]; ok {
		return s
	}

	s := NewTypeStringer(pkg, a.Reserved...)
	a.stringers[pkg.Path()] = s

	return s
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./shapes", "arbitrary-generator/examples/shapes").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// processPackage records the named types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
		Pkg:  pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	var infos []*TypeInfo

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		info := a.analyzeTypeName(pkg.PkgPath, typeName)

		position := pkg.Fset.Position(typeName.Pos())
		info.File = position.Filename
		info.Offset = position.Offset

		infos = append(infos, info)
	}

	// Scope names are sorted alphabetically; variant order follows the source.
	slices.SortStableFunc(infos, declaredBefore)

	for _, info := range infos {
		a.graph.Types[info.ID] = info
		pkgInfo.Types = append(pkgInfo.Types, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeTypeName classifies a named type.
func (a *Analyzer) analyzeTypeName(pkgPath string, obj *types.TypeName) *TypeInfo {
	info := &TypeInfo{
		ID:   TypeID{PkgPath: pkgPath, Name: obj.Name()},
		Kind: TypeKindOther,
		Obj:  obj,
		Pos:  obj.Pos(),
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return info
	}

	info.Generic = named.TypeParams().Len() > 0

	switch named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
	case *types.Interface:
		info.Kind = TypeKindInterface
	}

	return info
}

// Shape extracts the shape of the type id. Warnings are added to diags;
// failures are returned.
func (a *Analyzer) Shape(id TypeID, opts Options, diags *diagnostic.Diagnostics) (shape.TypeShape, error) {
	s := shape.TypeShape{PkgPath: id.PkgPath, Name: id.Name}

	info := a.graph.GetType(id)
	if info == nil {
		return s, fmt.Errorf("%s: %w", id, ErrTypeNotFound)
	}

	if info.Generic {
		return s, fmt.Errorf("%s is generic: %w", id, ErrUnsupportedType)
	}

	stringer := a.stringer(info.Obj.Pkg())

	switch info.Kind {
	case TypeKindStruct:
		s.Alternatives = []shape.Alternative{
			a.structAlternative(info, stringer, opts.Positional[id.Name], diags),
		}

		return s, nil

	case TypeKindInterface:
		variants, err := a.variants(info, opts.Variants, diags)
		if err != nil {
			return s, err
		}

		for _, v := range variants {
			alt := a.structAlternative(v.info, stringer, opts.Positional[v.info.ID.Name], diags)
			alt.AddressOf = v.addressOf
			s.Alternatives = append(s.Alternatives, alt)
		}

		return s, nil

	default:
		return s, fmt.Errorf("%s is neither a struct nor an interface: %w", id, ErrUnsupportedType)
	}
}

// structAlternative builds the alternative for a named struct type.
func (a *Analyzer) structAlternative(
	info *TypeInfo,
	stringer *TypeStringer,
	positional bool,
	diags *diagnostic.Diagnostics,
) shape.Alternative {
	st, _ := info.Named().Underlying().(*types.Struct)
	path := NewTypePath(info.ID.Name)

	var (
		fields []shape.Field
		blank  bool
	)

	for i := range st.NumFields() {
		field := st.Field(i)

		// Blank fields cannot be named in a keyed literal.
		if field.Name() == "_" {
			blank = true
			continue
		}

		fields = append(fields, shape.Field{
			Name: field.Name(),
			Type: stringer.Ref(field.Type()),
		})
	}

	if len(fields) == 0 {
		return shape.Unit(info.ID.Name)
	}

	if positional && blank {
		diags.AddWarning(diagnostic.CodePositionalBlankField,
			"struct has blank fields; falling back to keyed fields",
			info.ID.String(), path.Field("_").String())

		positional = false
	}

	if positional {
		refs := make([]shape.TypeRef, 0, len(fields))
		for _, f := range fields {
			refs = append(refs, f.Type)
		}

		return shape.Positional(info.ID.Name, refs...)
	}

	return shape.Named(info.ID.Name, fields...)
}

type variant struct {
	info      *TypeInfo
	addressOf bool
}

// variants returns the struct types implementing the interface info.
func (a *Analyzer) variants(info *TypeInfo, order []string, diags *diagnostic.Diagnostics) ([]variant, error) {
	iface, _ := info.Named().Underlying().(*types.Interface)
	if iface.NumMethods() == 0 {
		return nil, fmt.Errorf("%s has no methods: %w", info.ID, ErrUnsupportedType)
	}

	if !sealed(iface) {
		diags.AddInfo(diagnostic.CodeOpenInterface,
			"interface is not sealed; only implementations in its own package are used",
			info.ID.String(), "")
	}

	pkgInfo := a.graph.Packages[info.ID.PkgPath]

	if len(order) > 0 {
		out := make([]variant, 0, len(order))

		for _, name := range order {
			id := TypeID{PkgPath: info.ID.PkgPath, Name: name}

			candidate := a.graph.GetType(id)
			if candidate == nil {
				return nil, fmt.Errorf("variant %s of %s: %w", name, info.ID, ErrTypeNotFound)
			}

			v, ok := implements(candidate, iface)
			if !ok {
				return nil, fmt.Errorf("variant %s does not implement %s: %w", name, info.ID, ErrUnsupportedType)
			}

			out = append(out, v)
		}

		return out, nil
	}

	var out []variant

	for _, id := range pkgInfo.Types {
		candidate := a.graph.GetType(id)

		if v, ok := implements(candidate, iface); ok {
			out = append(out, v)
			continue
		}

		if candidate != nil && candidate.Kind == TypeKindOther && !candidate.Generic {
			if _, ok := satisfies(candidate.Named(), iface); ok {
				diags.AddWarning(diagnostic.CodeNonStructVariant,
					fmt.Sprintf("%s implements the interface but is not a struct; it is never generated", id.Name),
					info.ID.String(), "")
			}
		}
	}

	return out, nil
}

// implements reports whether candidate is a non-generic struct whose value
// or pointer type satisfies iface.
func implements(candidate *TypeInfo, iface *types.Interface) (variant, bool) {
	if candidate == nil || candidate.Kind != TypeKindStruct || candidate.Generic {
		return variant{}, false
	}

	addressOf, ok := satisfies(candidate.Named(), iface)
	if !ok {
		return variant{}, false
	}

	return variant{info: candidate, addressOf: addressOf}, true
}

// satisfies reports whether named or, failing that, *named implements iface.
func satisfies(named *types.Named, iface *types.Interface) (addressOf, ok bool) {
	if named == nil {
		return false, false
	}

	if types.Implements(named, iface) {
		return false, true
	}

	if types.Implements(types.NewPointer(named), iface) {
		return true, true
	}

	return false, false
}

// sealed returns true if iface has an unexported method, so no other
// package can implement it.
func sealed(iface *types.Interface) bool {
	for m := range iface.Methods() {
		if !m.Exported() {
			return true
		}
	}

	return false
}
