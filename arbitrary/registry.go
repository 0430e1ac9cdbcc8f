package arbitrary

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sync"
	"time"
)

// ErrDuplicateRegistration is the panic value (wrapped) when a type is
// registered twice.
var ErrDuplicateRegistration = errors.New("arbitrary: generator already registered")

var (
	mu       sync.RWMutex
	registry = make(map[reflect.Type]func(*Gen) any)
	version  int // bumped by every Register
)

func init() {
	Register(func(g *Gen) time.Time {
		return time.Unix(g.rand.Int63n(1<<33), g.rand.Int63n(int64(time.Second))).UTC()
	})
}

// Register adds the routine for T. Generated code calls it from init.
// It panics if T already has a routine.
func Register[T any](fn func(*Gen) T) {
	t := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if _, ok := registry[t]; ok {
		panic(fmt.Errorf("%w for %s", ErrDuplicateRegistration, t))
	}

	registry[t] = func(g *Gen) any { return fn(g) }
	version++
}

// Registered returns true if T has a routine added with Register.
func Registered[T any]() bool {
	_, ok := lookup(reflect.TypeFor[T]())
	return ok
}

func lookup(t reflect.Type) (func(*Gen) any, bool) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := registry[t]

	return fn, ok
}

// snapshot returns a copy of the registry and its version.
func snapshot() (map[reflect.Type]func(*Gen) any, int) {
	mu.RLock()
	defer mu.RUnlock()

	return maps.Clone(registry), version
}
