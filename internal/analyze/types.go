package analyze

import (
	"cmp"
	"go/token"
	"go/types"

	"arbitrary-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "arbitrary-generator/examples/shapes"
	Name    string // e.g., "Shape"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a named type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindStruct             // struct type
	TypeKindInterface          // interface type, a candidate sum type
	TypeKindOther              // any other named type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type declared in a loaded package.
type TypeInfo struct {
	ID      TypeID
	Kind    TypeKind
	Obj     *types.TypeName // The declaring object
	Pos     token.Pos       // Declaration position
	File    string          // Declaring file
	Offset  int             // Byte offset in File
	Generic bool            // True if the type has type parameters
}

// declaredBefore orders types by file name, then by offset in the file.
// Raw token.Pos values depend on the order files were parsed in.
func declaredBefore(a, b *TypeInfo) int {
	if c := cmp.Compare(a.File, b.File); c != 0 {
		return c
	}

	return cmp.Compare(a.Offset, b.Offset)
}

// Named returns the go/types named type.
func (t *TypeInfo) Named() *types.Named {
	named, _ := t.Obj.Type().(*types.Named)
	return named
}

// TypeGraph holds all named types of the loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string         // Import path
	Name  string         // Package name
	Dir   string         // Directory holding the package sources
	Types []TypeID       // Named types in declaration order
	Pkg   *types.Package // Type-checked package
}
