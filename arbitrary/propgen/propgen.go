// Package propgen exposes arbitrary routines as gopter generators.
package propgen

import (
	"reflect"

	"github.com/leanovate/gopter"

	"arbitrary-generator/arbitrary"
)

// Of returns a gopter generator for T. Values are built with arbitrary.Of on
// a handle drawing from the generator parameters' Rng, so a gopter seed
// reproduces the same values. Shrinking is not supported.
func Of[T any](opts ...arbitrary.Option) gopter.Gen {
	resultType := reflect.TypeFor[T]()

	return func(params *gopter.GenParameters) *gopter.GenResult {
		g := arbitrary.New(params.Rng, append([]arbitrary.Option{arbitrary.WithSize(params.MaxSize)}, opts...)...)

		result := gopter.NewGenResult(arbitrary.Of[T](g), gopter.NoShrinker)
		result.ResultType = resultType

		return result
	}
}
