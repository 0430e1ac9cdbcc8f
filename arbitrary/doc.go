// Package arbitrary is the runtime that generated construction routines call
// into.
//
// A Gen is the randomness handle: it draws indexes with Intn and builds values
// of any type with Of. Routines produced by arbitrary-generator register
// themselves from an init function, so Of[T] finds them for fields of type T:
//
//	g := arbitrary.NewSeeded(42)
//	s := arbitrary.Of[shapes.Shape](g)
//
// Types without a registered routine are filled by github.com/google/gofuzz,
// which calls back into registered routines for nested types. The size hint
// bounds the length of strings, slices and maps.
package arbitrary
