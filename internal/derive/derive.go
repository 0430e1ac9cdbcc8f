package derive

import (
	"errors"
	"fmt"

	"arbitrary-generator/internal/common"
	"arbitrary-generator/internal/shape"
)

// ErrNoAlternatives is returned for a shape that has no alternatives,
// i.e. a sum type with no values.
var ErrNoAlternatives = errors.New("cannot derive Arbitrary for a sum type with no variants")

// Generate builds the random-construction routine for s.
//
// It fails only when s has no alternatives. Generate keeps no state: equal
// shapes produce equal routines.
func Generate(s shape.TypeShape) (*Routine, error) {
	r := &Routine{
		Name:   FuncName(s.Name),
		Result: s.Name,
		Handle: HandleName,
	}

	switch {
	case common.IsEmpty(s.Alternatives):
		return nil, fmt.Errorf("%s: %w", s.Name, ErrNoAlternatives)

	case common.IsSingle(s.Alternatives):
		// A fieldless value must not consume entropy.
		if s.Alternatives[0].Kind == shape.KindUnit {
			r.Handle = UnusedHandle
		}
	}

	for _, alt := range s.Alternatives {
		r.Arms = append(r.Arms, construct(alt))
	}

	r.Imports = shape.SortImports(append([]shape.Import{{Path: RuntimeImport}}, s.Imports()...))

	return r, nil
}

// construct maps an alternative to its construction.
func construct(alt shape.Alternative) Construction {
	c := Construction{
		Label:     alt.Label,
		AddressOf: alt.AddressOf,
		Kind:      alt.Kind,
	}

	if alt.Kind == shape.KindUnit {
		return c
	}

	for _, f := range alt.Fields {
		call := FieldCall{Type: f.Type.Expr}
		if alt.Kind == shape.KindNamed {
			call.Name = f.Name
		}

		c.Fields = append(c.Fields, call)
	}

	return c
}
