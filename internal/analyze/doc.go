// Package analyze provides package loading and shape extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to find the named types of a package and reflect them into
// shape.TypeShape descriptors.
//
// Supported types:
//   - structs: one alternative (unit, named or positional)
//   - interfaces with methods: one alternative per struct type of the same
//     package implementing it, in declaration order
package analyze
