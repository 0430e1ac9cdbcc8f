// Package shape describes the structure of a type as seen by the derive
// step: a list of labeled alternatives, each an ordered list of fields.
//
// Key types:
//   - TypeShape: the type being derived and its alternatives
//   - Alternative: one construction case (a struct, or one variant of a sealed interface)
//   - Field: one member of an alternative, referencing another type by expression
package shape
