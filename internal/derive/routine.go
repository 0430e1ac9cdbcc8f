package derive

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"arbitrary-generator/internal/common"
	"arbitrary-generator/internal/shape"
)

const (
	// RuntimeImport is the package generated routines call into.
	RuntimeImport = "arbitrary-generator/arbitrary"
	// RuntimePkg is the name RuntimeImport is referenced by.
	RuntimePkg = "arbitrary"

	// HandleName is the parameter name of the randomness handle.
	HandleName = "g"
	// UnusedHandle is used in place of HandleName when the routine never draws.
	UnusedHandle = "_"
)

// Routine is the random-construction routine for one type.
type Routine struct {
	Name    string         // Function name, e.g. "ArbitraryShape"
	Result  string         // Returned type, e.g. "Shape"
	Handle  string         // HandleName or UnusedHandle
	Arms    []Construction // Arms[k] is built when index k is drawn
	Imports []shape.Import // Imports needed by the routine, sorted by path
}

// Dispatch returns true if the routine draws an index to choose an arm.
func (r *Routine) Dispatch() bool {
	return common.IsMultiple(r.Arms)
}

// UsesHandle returns true if the routine references the randomness handle.
func (r *Routine) UsesHandle() bool {
	return r.Handle != UnusedHandle
}

// Construction builds a single alternative.
type Construction struct {
	Label     string
	AddressOf bool
	Kind      shape.Kind
	Fields    []FieldCall // Declaration order; this is the draw order
}

// FieldCall is a recursive construction call for one field.
type FieldCall struct {
	Name string // Empty unless Kind is KindNamed
	Type string // Type expression passed to arbitrary.Of
}

// Call returns the Go expression constructing the field from handle.
func (f FieldCall) Call(handle string) string {
	return fmt.Sprintf("%s.Of[%s](%s)", RuntimePkg, f.Type, handle)
}

// Expr returns the Go expression constructing the alternative.
func (c Construction) Expr(handle string) string {
	var sb strings.Builder

	if c.AddressOf {
		sb.WriteString("&")
	}

	sb.WriteString(c.Label)

	switch c.Kind {
	case shape.KindUnit:
		sb.WriteString("{}")

	case shape.KindPositional:
		calls := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			calls = append(calls, f.Call(handle))
		}

		sb.WriteString("{")
		sb.WriteString(strings.Join(calls, ", "))
		sb.WriteString("}")

	case shape.KindNamed:
		if len(c.Fields) == 0 {
			sb.WriteString("{}")
			break
		}

		sb.WriteString("{\n")

		for _, f := range c.Fields {
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(f.Call(handle))
			sb.WriteString(",\n")
		}

		sb.WriteString("}")
	}

	return sb.String()
}

// FuncName returns the routine name for a type name. Unexported types get an
// unexported routine.
func FuncName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return "Arbitrary"
	}

	rest := string(unicode.ToUpper(r)) + typeName[size:]
	if unicode.IsUpper(r) {
		return "Arbitrary" + rest
	}

	return "arbitrary" + rest
}
