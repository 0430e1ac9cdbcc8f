package arbitrary

import (
	"math/rand"
	"reflect"
)

const (
	// DefaultSize bounds the length of generated strings, slices and maps.
	DefaultSize = 16
	// DefaultMaxDepth bounds how deep generated values nest.
	DefaultMaxDepth = 6
)

// Gen is a randomness handle. It is not safe for concurrent use.
type Gen struct {
	rand      *rand.Rand
	size      int
	maxDepth  int
	depth     int
	overrides map[reflect.Type]func(*Gen) any

	cache        []any // gofuzz custom functions
	cacheVersion int   // registry version cache was built against
}

// Option configures a Gen.
type Option func(*Gen)

// WithSize sets the size hint: the upper bound for the length of strings
// (in runes), slices and maps.
func WithSize(size int) Option {
	return func(g *Gen) {
		if size >= 0 {
			g.size = size
		}
	}
}

// WithMaxDepth sets how deep values nest. Below the limit values stay zero;
// routines that reach it through nested Of calls get nil pointers, slices
// and maps.
func WithMaxDepth(depth int) Option {
	return func(g *Gen) {
		if depth >= 0 {
			g.maxDepth = depth
		}
	}
}

// WithGenerator overrides the routine used for T on this handle only. It
// takes precedence over routines added with Register.
func WithGenerator[T any](fn func(*Gen) T) Option {
	return func(g *Gen) {
		g.overrides[reflect.TypeFor[T]()] = func(g *Gen) any { return fn(g) }
		g.cache = nil
	}
}

// New creates a Gen drawing from r.
func New(r *rand.Rand, opts ...Option) *Gen {
	g := &Gen{
		rand:      r,
		size:      DefaultSize,
		maxDepth:  DefaultMaxDepth,
		overrides: make(map[reflect.Type]func(*Gen) any),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewSeeded creates a Gen with a deterministic source.
func NewSeeded(seed int64, opts ...Option) *Gen {
	return New(rand.New(rand.NewSource(seed)), opts...)
}

// Intn draws an int uniformly from [0, n). It panics if n <= 0.
func (g *Gen) Intn(n int) int {
	return g.rand.Intn(n)
}

// Size returns the size hint.
func (g *Gen) Size() int {
	return g.size
}

// generator returns the routine for t, checking overrides first.
func (g *Gen) generator(t reflect.Type) (func(*Gen) any, bool) {
	if fn, ok := g.overrides[t]; ok {
		return fn, true
	}

	return lookup(t)
}
