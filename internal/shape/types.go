package shape

import (
	"cmp"
	"slices"
	"strconv"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind describes how the fields of an alternative are addressed.
type Kind int

const (
	KindUnit       Kind = iota // no fields
	KindPositional             // fields assigned by position
	KindNamed                  // fields assigned by name
)

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// TypeShape is the structural descriptor of a Go type.
type TypeShape struct {
	PkgPath      string        `yaml:"pkg_path"`     // e.g., "arbitrary-generator/examples/shapes"
	Name         string        `yaml:"name"`         // e.g., "Shape"
	Alternatives []Alternative `yaml:"alternatives"` // Declaration order
}

// Alternative is one labeled construction case.
type Alternative struct {
	Label     string  `yaml:"label"`                // Go type name used in the composite literal
	AddressOf bool    `yaml:"address_of,omitempty"` // Build &Label{...} instead of Label{...}
	Kind      Kind    `yaml:"kind"`
	Fields    []Field `yaml:"fields,omitempty"`
}

// Field is one member of an alternative.
type Field struct {
	Name string  `yaml:"name,omitempty"` // Only set for KindNamed
	Type TypeRef `yaml:"type"`
}

// TypeRef is an opaque reference to the type of a field.
type TypeRef struct {
	// Expr is the type expression as written in the output package
	// (e.g., "int", "time.Time", "[]Point").
	Expr string `yaml:"expr"`
	// Imports lists the imports Expr depends on.
	Imports []Import `yaml:"imports,omitempty"`
}

// Import is one import of a generated file.
type Import struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"` // Set when Expr uses an alias instead of the package name
}

// Spec returns the import as written in an import block.
func (i Import) Spec() string {
	if i.Name == "" {
		return strconv.Quote(i.Path)
	}

	return i.Name + " " + strconv.Quote(i.Path)
}

// SortImports sorts imports by path and drops duplicates.
func SortImports(imports []Import) []Import {
	slices.SortFunc(imports, func(a, b Import) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Name, b.Name))
	})

	return slices.Compact(imports)
}

// String returns the type expression.
func (r TypeRef) String() string {
	return r.Expr
}

// Imports returns the sorted, deduplicated imports referenced by every
// field of every alternative.
func (s TypeShape) Imports() []Import {
	var out []Import
	for _, alt := range s.Alternatives {
		for _, f := range alt.Fields {
			out = append(out, f.Type.Imports...)
		}
	}

	return SortImports(out)
}

// Unit returns a fieldless alternative.
func Unit(label string) Alternative {
	return Alternative{Label: label, Kind: KindUnit}
}

// Positional returns an alternative whose fields are assigned by position.
func Positional(label string, types ...TypeRef) Alternative {
	alt := Alternative{Label: label, Kind: KindPositional}
	for _, t := range types {
		alt.Fields = append(alt.Fields, Field{Type: t})
	}

	return alt
}

// Named returns an alternative whose fields are assigned by name.
func Named(label string, fields ...Field) Alternative {
	return Alternative{Label: label, Kind: KindNamed, Fields: fields}
}

// Ref is a shorthand for a TypeRef without imports.
func Ref(expr string) TypeRef {
	return TypeRef{Expr: expr}
}
