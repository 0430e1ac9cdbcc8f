// Package gen renders construction routines into Go source files and drives
// a full generation run for one package.
//
// Generation approach uses text/template + golang.org/x/tools/imports for
// gofmt-clean output.
//
// A generated file holds:
//   - an init function registering every routine with arbitrary.Register
//   - one Arbitrary<Type> function per selected type
//   - optionally, testing/quick.Generator methods for struct types
package gen
