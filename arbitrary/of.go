package arbitrary

import (
	"errors"
	"fmt"
	"maps"
	"reflect"

	fuzz "github.com/google/gofuzz"
)

// nilChance is the probability that a pointer, slice or map is left nil.
const nilChance = .25

var continueType = reflect.TypeFor[fuzz.Continue]()

// ErrNoGenerator is the panic value (wrapped) when Of cannot build a type.
var ErrNoGenerator = errors.New("arbitrary: no generator")

// RangeError is the panic value of the fallback arm of a generated routine.
// It means the handle returned an index outside the range it was asked for.
type RangeError struct {
	Index int
	N     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("arbitrary: drawn index %d outside [0, %d)", e.Index, e.N)
}

// OutOfRange returns the error a generated routine panics with when the
// drawn index i is not in [0, n).
func OutOfRange(i, n int) error {
	return &RangeError{Index: i, N: n}
}

// Of builds a random value of type T.
//
// Lookup order: overrides on g, routines added with Register, then gofuzz,
// which fills pointers, slices, arrays, structs, maps and scalars and hands
// every nested type with a routine back to it. Strings are at most g.Size()
// runes long. It panics with ErrNoGenerator when nothing applies, e.g. for an
// interface type nobody registered.
func Of[T any](g *Gen) T {
	t := reflect.TypeFor[T]()

	if fn, ok := g.generator(t); ok {
		v, _ := fn(g).(T)
		return v
	}

	var v T

	switch t.Kind() {
	case reflect.String:
		reflect.ValueOf(&v).Elem().SetString(g.string())
	case reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		panic(fmt.Errorf("%w for %s", ErrNoGenerator, t))
	default:
		g.fuzz(&v, t)
	}

	return v
}

// fuzz fills the value ptr points to.
func (g *Gen) fuzz(ptr any, t reflect.Type) {
	defer func() {
		// gofuzz panics with a string for kinds it cannot fill.
		if r := recover(); r != nil {
			if msg, ok := r.(string); ok {
				panic(fmt.Errorf("%w for %s: %s", ErrNoGenerator, t, msg))
			}

			panic(r)
		}
	}()

	g.fuzzer().Fuzz(ptr)
}

// fuzzer returns a gofuzz Fuzzer drawing from g. Past the depth limit,
// pointers, slices and maps come back nil.
func (g *Gen) fuzzer() *fuzz.Fuzzer {
	f := fuzz.New().RandSource(g.rand).Funcs(g.funcs()...)

	remaining := g.maxDepth - g.depth
	if remaining <= 0 {
		return f.NilChance(1).NumElements(0, 0)
	}

	return f.NilChance(nilChance).NumElements(0, g.size).MaxDepth(remaining + 1)
}

// funcs returns the gofuzz custom functions for every registered and
// overridden type, plus the sized string function.
func (g *Gen) funcs() []any {
	entries, version := snapshot()
	if g.cache != nil && g.cacheVersion == version {
		return g.cache
	}

	maps.Copy(entries, g.overrides)

	fns := []any{func(s *string, _ fuzz.Continue) { *s = g.string() }}
	for t, fn := range entries {
		fns = append(fns, g.fuzzFunc(t, fn))
	}

	g.cache, g.cacheVersion = fns, version

	return fns
}

// fuzzFunc adapts fn to the func(*T, fuzz.Continue) form gofuzz calls.
func (g *Gen) fuzzFunc(t reflect.Type, fn func(*Gen) any) any {
	ft := reflect.FuncOf([]reflect.Type{reflect.PointerTo(t), continueType}, nil, false)

	return reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		g.depth++
		defer func() { g.depth-- }()

		if v := fn(g); v != nil {
			args[0].Elem().Set(reflect.ValueOf(v))
		}

		return nil
	}).Interface()
}

// string draws a string of at most g.size runes.
func (g *Gen) string() string {
	if g.size == 0 {
		return ""
	}

	runes := make([]rune, g.rand.Intn(g.size+1))
	for i := range runes {
		runes[i] = g.rune()
	}

	return string(runes)
}

// rune draws mostly printable ASCII, sometimes from the rest of the BMP.
func (g *Gen) rune() rune {
	if g.rand.Intn(4) > 0 {
		return rune(' ' + g.rand.Intn('~'-' '+1))
	}

	return rune(0xa0 + g.rand.Intn(0xd7ff-0xa0+1))
}
