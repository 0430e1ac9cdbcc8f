// Package derive turns a shape.TypeShape into the random-construction
// routine for that type.
//
// The routine has one of three forms, chosen by the number of alternatives:
//   - none: generation fails with ErrNoAlternatives
//   - one: the body builds that alternative directly; a fieldless
//     alternative leaves the handle parameter unused
//   - several: the body draws an index in [0, N) and switches on it, one
//     arm per alternative in declaration order, with a fatal default arm
//
// Every field is filled by a recursive arbitrary.Of[T](g) call on the same
// handle, so draw order follows field declaration order.
package derive
