package derive

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

var routineTemplate = template.Must(template.New("routine").Parse(`// {{.Name}} builds a random {{.Result}}.
func {{.Name}}({{.Handle}} *arbitrary.Gen) {{.Result}} {
{{- if .Dispatch}}
	switch i := {{.Handle}}.Intn({{len .Arms}}); i {
{{- range $i, $arm := .Arms}}
	case {{$i}}:
		return {{$arm.Expr $.Handle}}
{{- end}}
	default:
		panic(arbitrary.OutOfRange(i, {{len .Arms}}))
	}
{{- else}}
	return {{(index .Arms 0).Expr .Handle}}
{{- end}}
}
`))

// Source renders the routine as a gofmt-formatted Go function declaration.
func (r *Routine) Source() ([]byte, error) {
	if len(r.Arms) == 0 {
		return nil, fmt.Errorf("%s: %w", r.Result, ErrNoAlternatives)
	}

	var buf bytes.Buffer
	if err := routineTemplate.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting routine %s: %w", r.Name, err)
	}

	return formatted, nil
}
